package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type DockOperationRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, operations []*types.DockOperation) ([]*types.DockOperation, error)

  // READ
  GetByIDs(ctx context.Context, tx *gorm.DB, operationIDs []uuid.UUID) ([]*types.DockOperation, error)
  GetOpenByTruckID(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) (*types.DockOperation, error)
  GetOpenByDockID(ctx context.Context, tx *gorm.DB, dockID uuid.UUID) (*types.DockOperation, error)
  GetOpen(ctx context.Context, tx *gorm.DB) ([]*types.DockOperation, error)
  GetCompletedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.DockOperation, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, operations []*types.DockOperation) ([]*types.DockOperation, error)
}

type dockOperationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDockOperationRepo(db *gorm.DB, baseLog *logger.Logger) DockOperationRepo {
  repoLog := baseLog.With("repo", "DockOperationRepo")
  return &dockOperationRepo{db: db, log: repoLog}
}

func (dor *dockOperationRepo) Create(ctx context.Context, tx *gorm.DB, operations []*types.DockOperation) ([]*types.DockOperation, error) {
  transaction := tx
  if transaction == nil {
    transaction = dor.db
  }
  if len(operations) == 0 {
    dor.log.Debug("Operations array is empty, returning empty slice")
    return []*types.DockOperation{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&operations).Error; err != nil {
    dor.log.Error("Failed to create dock operations", "error", err)
    return nil, err
  }
  dor.log.Info("Successfully created dock operations", "count", len(operations))
  return operations, nil
}

func (dor *dockOperationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, operationIDs []uuid.UUID) ([]*types.DockOperation, error) {
  transaction := tx
  if transaction == nil {
    transaction = dor.db
  }
  var results []*types.DockOperation
  if len(operationIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", operationIDs).
    Find(&results).Error; err != nil {
    dor.log.Error("Failed to fetch dock operations by IDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (dor *dockOperationRepo) GetOpenByTruckID(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) (*types.DockOperation, error) {
  transaction := tx
  if transaction == nil {
    transaction = dor.db
  }
  var result types.DockOperation
  if err := transaction.WithContext(ctx).
    Where("truck_id = ? AND status <> ?", truckID, types.DockOperationCompleted).
    Order("created_at DESC").
    First(&result).Error; err != nil {
    dor.log.Debug("Failed to fetch open dock operation by truckID", "truckID", truckID, "error", err)
    return nil, err
  }
  return &result, nil
}

func (dor *dockOperationRepo) GetOpenByDockID(ctx context.Context, tx *gorm.DB, dockID uuid.UUID) (*types.DockOperation, error) {
  transaction := tx
  if transaction == nil {
    transaction = dor.db
  }
  var result types.DockOperation
  if err := transaction.WithContext(ctx).
    Where("dock_id = ? AND status <> ?", dockID, types.DockOperationCompleted).
    Order("created_at DESC").
    First(&result).Error; err != nil {
    dor.log.Debug("Failed to fetch open dock operation by dockID", "dockID", dockID, "error", err)
    return nil, err
  }
  return &result, nil
}

func (dor *dockOperationRepo) GetOpen(ctx context.Context, tx *gorm.DB) ([]*types.DockOperation, error) {
  transaction := tx
  if transaction == nil {
    transaction = dor.db
  }
  var results []*types.DockOperation
  if err := transaction.WithContext(ctx).
    Where("status <> ?", types.DockOperationCompleted).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    dor.log.Error("Failed to fetch open dock operations", "error", err)
    return nil, err
  }
  dor.log.Debug("Fetched open dock operations", "count", len(results))
  return results, nil
}

func (dor *dockOperationRepo) GetCompletedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.DockOperation, error) {
  transaction := tx
  if transaction == nil {
    transaction = dor.db
  }
  var results []*types.DockOperation
  if err := transaction.WithContext(ctx).
    Where("status = ? AND completed_at >= ? AND completed_at < ?", types.DockOperationCompleted, from, to).
    Order("completed_at ASC").
    Find(&results).Error; err != nil {
    dor.log.Error("Failed to fetch completed dock operations", "error", err)
    return nil, err
  }
  return results, nil
}

func (dor *dockOperationRepo) Update(ctx context.Context, tx *gorm.DB, operations []*types.DockOperation) ([]*types.DockOperation, error) {
  transaction := tx
  if transaction == nil {
    transaction = dor.db
  }
  if len(operations) == 0 {
    return []*types.DockOperation{}, nil
  }
  for _, o := range operations {
    if err := transaction.WithContext(ctx).Save(o).Error; err != nil {
      dor.log.Error("Failed to update dock operation", "operationID", o.ID, "error", err)
      return nil, err
    }
  }
  dor.log.Debug("Updated dock operations", "count", len(operations))
  return operations, nil
}
