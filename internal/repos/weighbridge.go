package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type WeighbridgeRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, weighbridges []*types.Weighbridge) ([]*types.Weighbridge, error)

  // READ
  GetByIDs(ctx context.Context, tx *gorm.DB, weighbridgeIDs []uuid.UUID) ([]*types.Weighbridge, error)
  NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Weighbridge, error)
  GetActive(ctx context.Context, tx *gorm.DB) ([]*types.Weighbridge, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, weighbridges []*types.Weighbridge) ([]*types.Weighbridge, error)

  // FULL (HARD) DELETE
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, weighbridgeIDs []uuid.UUID) error
}

type weighbridgeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWeighbridgeRepo(db *gorm.DB, baseLog *logger.Logger) WeighbridgeRepo {
  repoLog := baseLog.With("repo", "WeighbridgeRepo")
  return &weighbridgeRepo{db: db, log: repoLog}
}

func (wr *weighbridgeRepo) Create(ctx context.Context, tx *gorm.DB, weighbridges []*types.Weighbridge) ([]*types.Weighbridge, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }
  if len(weighbridges) == 0 {
    wr.log.Debug("Weighbridges array is empty, returning empty slice")
    return []*types.Weighbridge{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&weighbridges).Error; err != nil {
    wr.log.Error("Failed to create weighbridges", "error", err)
    return nil, err
  }
  wr.log.Info("Successfully created weighbridges", "count", len(weighbridges))
  return weighbridges, nil
}

func (wr *weighbridgeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, weighbridgeIDs []uuid.UUID) ([]*types.Weighbridge, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }
  var results []*types.Weighbridge
  if len(weighbridgeIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", weighbridgeIDs).
    Find(&results).Error; err != nil {
    wr.log.Error("Failed to fetch weighbridges by IDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (wr *weighbridgeRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Weighbridge{}).
    Where("name = ?", name).
    Count(&count).Error; err != nil {
    wr.log.Error("Failed to count weighbridges by name", "error", err)
    return false, err
  }
  return count > 0, nil
}

func (wr *weighbridgeRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Weighbridge, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }
  var results []*types.Weighbridge
  if err := transaction.WithContext(ctx).
    Order("name ASC").
    Find(&results).Error; err != nil {
    wr.log.Error("Failed to fetch all weighbridges", "error", err)
    return nil, err
  }
  return results, nil
}

func (wr *weighbridgeRepo) GetActive(ctx context.Context, tx *gorm.DB) ([]*types.Weighbridge, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }
  var results []*types.Weighbridge
  if err := transaction.WithContext(ctx).
    Where("is_active = ?", true).
    Order("name ASC").
    Find(&results).Error; err != nil {
    wr.log.Error("Failed to fetch active weighbridges", "error", err)
    return nil, err
  }
  return results, nil
}

func (wr *weighbridgeRepo) Update(ctx context.Context, tx *gorm.DB, weighbridges []*types.Weighbridge) ([]*types.Weighbridge, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }
  if len(weighbridges) == 0 {
    return []*types.Weighbridge{}, nil
  }
  for _, w := range weighbridges {
    if err := transaction.WithContext(ctx).Save(w).Error; err != nil {
      wr.log.Error("Failed to update weighbridge", "weighbridgeID", w.ID, "error", err)
      return nil, err
    }
  }
  return weighbridges, nil
}

func (wr *weighbridgeRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, weighbridgeIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }
  if len(weighbridgeIDs) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("id IN ?", weighbridgeIDs).
    Delete(&types.Weighbridge{}).Error; err != nil {
    wr.log.Error("Failed to hard delete weighbridges", "error", err)
    return err
  }
  return nil
}
