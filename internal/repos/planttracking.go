package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type PlantTrackingRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, records []*types.PlantTrackingRecord) ([]*types.PlantTrackingRecord, error)

  // READ
  GetByIDs(ctx context.Context, tx *gorm.DB, recordIDs []uuid.UUID) ([]*types.PlantTrackingRecord, error)
  GetOpenByTruckID(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) (*types.PlantTrackingRecord, error)
  GetOpen(ctx context.Context, tx *gorm.DB) ([]*types.PlantTrackingRecord, error)
  GetClosedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.PlantTrackingRecord, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, records []*types.PlantTrackingRecord) ([]*types.PlantTrackingRecord, error)
}

type plantTrackingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPlantTrackingRepo(db *gorm.DB, baseLog *logger.Logger) PlantTrackingRepo {
  repoLog := baseLog.With("repo", "PlantTrackingRepo")
  return &plantTrackingRepo{db: db, log: repoLog}
}

func (ptr *plantTrackingRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.PlantTrackingRecord) ([]*types.PlantTrackingRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = ptr.db
  }
  if len(records) == 0 {
    ptr.log.Debug("Records array is empty, returning empty slice")
    return []*types.PlantTrackingRecord{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
    ptr.log.Error("Failed to create plant tracking records", "error", err)
    return nil, err
  }
  ptr.log.Info("Successfully created plant tracking records", "count", len(records))
  return records, nil
}

func (ptr *plantTrackingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, recordIDs []uuid.UUID) ([]*types.PlantTrackingRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = ptr.db
  }
  var results []*types.PlantTrackingRecord
  if len(recordIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", recordIDs).
    Find(&results).Error; err != nil {
    ptr.log.Error("Failed to fetch plant tracking records by IDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (ptr *plantTrackingRepo) GetOpenByTruckID(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) (*types.PlantTrackingRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = ptr.db
  }
  var result types.PlantTrackingRecord
  if err := transaction.WithContext(ctx).
    Where("truck_id = ? AND exit_at IS NULL", truckID).
    Order("created_at DESC").
    First(&result).Error; err != nil {
    ptr.log.Debug("Failed to fetch open plant tracking record by truckID", "truckID", truckID, "error", err)
    return nil, err
  }
  return &result, nil
}

func (ptr *plantTrackingRepo) GetOpen(ctx context.Context, tx *gorm.DB) ([]*types.PlantTrackingRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = ptr.db
  }
  var results []*types.PlantTrackingRecord
  if err := transaction.WithContext(ctx).
    Where("exit_at IS NULL").
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    ptr.log.Error("Failed to fetch open plant tracking records", "error", err)
    return nil, err
  }
  ptr.log.Debug("Fetched open plant tracking records", "count", len(results))
  return results, nil
}

func (ptr *plantTrackingRepo) GetClosedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.PlantTrackingRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = ptr.db
  }
  var results []*types.PlantTrackingRecord
  if err := transaction.WithContext(ctx).
    Where("exit_at >= ? AND exit_at < ?", from, to).
    Order("exit_at ASC").
    Find(&results).Error; err != nil {
    ptr.log.Error("Failed to fetch closed plant tracking records", "error", err)
    return nil, err
  }
  return results, nil
}

func (ptr *plantTrackingRepo) Update(ctx context.Context, tx *gorm.DB, records []*types.PlantTrackingRecord) ([]*types.PlantTrackingRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = ptr.db
  }
  if len(records) == 0 {
    return []*types.PlantTrackingRecord{}, nil
  }
  for _, r := range records {
    if err := transaction.WithContext(ctx).Save(r).Error; err != nil {
      ptr.log.Error("Failed to update plant tracking record", "recordID", r.ID, "error", err)
      return nil, err
    }
  }
  ptr.log.Debug("Updated plant tracking records", "count", len(records))
  return records, nil
}
