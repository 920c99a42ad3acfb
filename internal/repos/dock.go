package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type DockRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, docks []*types.Dock) ([]*types.Dock, error)

  // READ
  GetByIDs(ctx context.Context, tx *gorm.DB, dockIDs []uuid.UUID) ([]*types.Dock, error)
  NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Dock, error)
  GetActive(ctx context.Context, tx *gorm.DB) ([]*types.Dock, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, docks []*types.Dock) ([]*types.Dock, error)

  // FULL (HARD) DELETE
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, dockIDs []uuid.UUID) error
}

type dockRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDockRepo(db *gorm.DB, baseLog *logger.Logger) DockRepo {
  repoLog := baseLog.With("repo", "DockRepo")
  return &dockRepo{db: db, log: repoLog}
}

func (dr *dockRepo) Create(ctx context.Context, tx *gorm.DB, docks []*types.Dock) ([]*types.Dock, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }
  if len(docks) == 0 {
    dr.log.Debug("Docks array is empty, returning empty slice")
    return []*types.Dock{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&docks).Error; err != nil {
    dr.log.Error("Failed to create docks", "error", err)
    return nil, err
  }
  dr.log.Info("Successfully created docks", "count", len(docks))
  return docks, nil
}

func (dr *dockRepo) GetByIDs(ctx context.Context, tx *gorm.DB, dockIDs []uuid.UUID) ([]*types.Dock, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }
  var results []*types.Dock
  if len(dockIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", dockIDs).
    Find(&results).Error; err != nil {
    dr.log.Error("Failed to fetch docks by IDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (dr *dockRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Dock{}).
    Where("name = ?", name).
    Count(&count).Error; err != nil {
    dr.log.Error("Failed to count docks by name", "error", err)
    return false, err
  }
  return count > 0, nil
}

func (dr *dockRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Dock, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }
  var results []*types.Dock
  if err := transaction.WithContext(ctx).
    Order("name ASC").
    Find(&results).Error; err != nil {
    dr.log.Error("Failed to fetch all docks", "error", err)
    return nil, err
  }
  return results, nil
}

func (dr *dockRepo) GetActive(ctx context.Context, tx *gorm.DB) ([]*types.Dock, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }
  var results []*types.Dock
  if err := transaction.WithContext(ctx).
    Where("is_active = ?", true).
    Order("name ASC").
    Find(&results).Error; err != nil {
    dr.log.Error("Failed to fetch active docks", "error", err)
    return nil, err
  }
  return results, nil
}

func (dr *dockRepo) Update(ctx context.Context, tx *gorm.DB, docks []*types.Dock) ([]*types.Dock, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }
  if len(docks) == 0 {
    return []*types.Dock{}, nil
  }
  for _, d := range docks {
    if err := transaction.WithContext(ctx).Save(d).Error; err != nil {
      dr.log.Error("Failed to update dock", "dockID", d.ID, "error", err)
      return nil, err
    }
  }
  return docks, nil
}

func (dr *dockRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, dockIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }
  if len(dockIDs) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("id IN ?", dockIDs).
    Delete(&types.Dock{}).Error; err != nil {
    dr.log.Error("Failed to hard delete docks", "error", err)
    return err
  }
  return nil
}
