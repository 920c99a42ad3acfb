package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type ShiftHandoverRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, handovers []*types.ShiftHandover) ([]*types.ShiftHandover, error)

  // READ
  GetByIDs(ctx context.Context, tx *gorm.DB, handoverIDs []uuid.UUID) ([]*types.ShiftHandover, error)
  GetUnacknowledgedByIncomingUserID(ctx context.Context, tx *gorm.DB, incomingUserID uuid.UUID) ([]*types.ShiftHandover, error)
  GetBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.ShiftHandover, error)
  GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.ShiftHandover, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, handovers []*types.ShiftHandover) ([]*types.ShiftHandover, error)
}

type shiftHandoverRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewShiftHandoverRepo(db *gorm.DB, baseLog *logger.Logger) ShiftHandoverRepo {
  repoLog := baseLog.With("repo", "ShiftHandoverRepo")
  return &shiftHandoverRepo{db: db, log: repoLog}
}

func (shr *shiftHandoverRepo) Create(ctx context.Context, tx *gorm.DB, handovers []*types.ShiftHandover) ([]*types.ShiftHandover, error) {
  transaction := tx
  if transaction == nil {
    transaction = shr.db
  }
  if len(handovers) == 0 {
    shr.log.Debug("Handovers array is empty, returning empty slice")
    return []*types.ShiftHandover{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&handovers).Error; err != nil {
    shr.log.Error("Failed to create shift handovers", "error", err)
    return nil, err
  }
  shr.log.Info("Successfully created shift handovers", "count", len(handovers))
  return handovers, nil
}

func (shr *shiftHandoverRepo) GetByIDs(ctx context.Context, tx *gorm.DB, handoverIDs []uuid.UUID) ([]*types.ShiftHandover, error) {
  transaction := tx
  if transaction == nil {
    transaction = shr.db
  }
  var results []*types.ShiftHandover
  if len(handoverIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", handoverIDs).
    Find(&results).Error; err != nil {
    shr.log.Error("Failed to fetch shift handovers by IDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (shr *shiftHandoverRepo) GetUnacknowledgedByIncomingUserID(ctx context.Context, tx *gorm.DB, incomingUserID uuid.UUID) ([]*types.ShiftHandover, error) {
  transaction := tx
  if transaction == nil {
    transaction = shr.db
  }
  var results []*types.ShiftHandover
  if err := transaction.WithContext(ctx).
    Where("incoming_user_id = ? AND acknowledged = ?", incomingUserID, false).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    shr.log.Error("Failed to fetch unacknowledged shift handovers", "incomingUserID", incomingUserID, "error", err)
    return nil, err
  }
  return results, nil
}

func (shr *shiftHandoverRepo) GetBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.ShiftHandover, error) {
  transaction := tx
  if transaction == nil {
    transaction = shr.db
  }
  var results []*types.ShiftHandover
  if err := transaction.WithContext(ctx).
    Where("created_at >= ? AND created_at < ?", from, to).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    shr.log.Error("Failed to fetch shift handovers between", "error", err)
    return nil, err
  }
  return results, nil
}

func (shr *shiftHandoverRepo) GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.ShiftHandover, error) {
  transaction := tx
  if transaction == nil {
    transaction = shr.db
  }
  var results []*types.ShiftHandover
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    shr.log.Error("Failed to fetch recent shift handovers", "error", err)
    return nil, err
  }
  shr.log.Debug("Fetched recent shift handovers", "count", len(results))
  return results, nil
}

func (shr *shiftHandoverRepo) Update(ctx context.Context, tx *gorm.DB, handovers []*types.ShiftHandover) ([]*types.ShiftHandover, error) {
  transaction := tx
  if transaction == nil {
    transaction = shr.db
  }
  if len(handovers) == 0 {
    return []*types.ShiftHandover{}, nil
  }
  for _, h := range handovers {
    if err := transaction.WithContext(ctx).Save(h).Error; err != nil {
      shr.log.Error("Failed to update shift handover", "handoverID", h.ID, "error", err)
      return nil, err
    }
  }
  return handovers, nil
}
