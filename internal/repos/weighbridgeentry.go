package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type WeighbridgeEntryRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, entries []*types.WeighbridgeEntry) ([]*types.WeighbridgeEntry, error)

  // READ
  GetByIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.WeighbridgeEntry, error)
  GetByTruckIDs(ctx context.Context, tx *gorm.DB, truckIDs []uuid.UUID) ([]*types.WeighbridgeEntry, error)
  GetOpenByTruckID(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) (*types.WeighbridgeEntry, error)
  GetOpen(ctx context.Context, tx *gorm.DB) ([]*types.WeighbridgeEntry, error)
  GetWeighedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.WeighbridgeEntry, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, entries []*types.WeighbridgeEntry) ([]*types.WeighbridgeEntry, error)

  // FULL (HARD) DELETE
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) error
}

type weighbridgeEntryRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWeighbridgeEntryRepo(db *gorm.DB, baseLog *logger.Logger) WeighbridgeEntryRepo {
  repoLog := baseLog.With("repo", "WeighbridgeEntryRepo")
  return &weighbridgeEntryRepo{db: db, log: repoLog}
}

func (wer *weighbridgeEntryRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.WeighbridgeEntry) ([]*types.WeighbridgeEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = wer.db
  }
  if len(entries) == 0 {
    wer.log.Debug("Entries array is empty, returning empty slice")
    return []*types.WeighbridgeEntry{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
    wer.log.Error("Failed to create weighbridge entries", "error", err)
    return nil, err
  }
  wer.log.Info("Successfully created weighbridge entries", "count", len(entries))
  return entries, nil
}

func (wer *weighbridgeEntryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.WeighbridgeEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = wer.db
  }
  var results []*types.WeighbridgeEntry
  if len(entryIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", entryIDs).
    Find(&results).Error; err != nil {
    wer.log.Error("Failed to fetch weighbridge entries by IDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (wer *weighbridgeEntryRepo) GetByTruckIDs(ctx context.Context, tx *gorm.DB, truckIDs []uuid.UUID) ([]*types.WeighbridgeEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = wer.db
  }
  var results []*types.WeighbridgeEntry
  if len(truckIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("truck_id IN ?", truckIDs).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    wer.log.Error("Failed to fetch weighbridge entries by truckIDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (wer *weighbridgeEntryRepo) GetOpenByTruckID(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) (*types.WeighbridgeEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = wer.db
  }
  var result types.WeighbridgeEntry
  if err := transaction.WithContext(ctx).
    Where("truck_id = ? AND status NOT IN ?", truckID, []lifecycle.Status{lifecycle.StatusExited, lifecycle.StatusRejected}).
    Order("created_at DESC").
    First(&result).Error; err != nil {
    wer.log.Debug("Failed to fetch open weighbridge entry by truckID", "truckID", truckID, "error", err)
    return nil, err
  }
  return &result, nil
}

func (wer *weighbridgeEntryRepo) GetOpen(ctx context.Context, tx *gorm.DB) ([]*types.WeighbridgeEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = wer.db
  }
  var results []*types.WeighbridgeEntry
  if err := transaction.WithContext(ctx).
    Where("status NOT IN ?", []lifecycle.Status{lifecycle.StatusExited, lifecycle.StatusRejected}).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    wer.log.Error("Failed to fetch open weighbridge entries", "error", err)
    return nil, err
  }
  wer.log.Debug("Fetched open weighbridge entries", "count", len(results))
  return results, nil
}

// GetWeighedBetween returns entries whose final weighment landed inside the
// window, for the weighbridge register export.
func (wer *weighbridgeEntryRepo) GetWeighedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.WeighbridgeEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = wer.db
  }
  var results []*types.WeighbridgeEntry
  if err := transaction.WithContext(ctx).
    Where("net_weight_kg IS NOT NULL AND updated_at >= ? AND updated_at < ?", from, to).
    Order("updated_at ASC").
    Find(&results).Error; err != nil {
    wer.log.Error("Failed to fetch weighed weighbridge entries", "error", err)
    return nil, err
  }
  return results, nil
}

func (wer *weighbridgeEntryRepo) Update(ctx context.Context, tx *gorm.DB, entries []*types.WeighbridgeEntry) ([]*types.WeighbridgeEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = wer.db
  }
  if len(entries) == 0 {
    return []*types.WeighbridgeEntry{}, nil
  }
  for _, e := range entries {
    if err := transaction.WithContext(ctx).Save(e).Error; err != nil {
      wer.log.Error("Failed to update weighbridge entry", "entryID", e.ID, "error", err)
      return nil, err
    }
  }
  wer.log.Debug("Updated weighbridge entries", "count", len(entries))
  return entries, nil
}

func (wer *weighbridgeEntryRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = wer.db
  }
  if len(entryIDs) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("id IN ?", entryIDs).
    Delete(&types.WeighbridgeEntry{}).Error; err != nil {
    wer.log.Error("Failed to hard delete weighbridge entries", "error", err)
    return err
  }
  return nil
}
