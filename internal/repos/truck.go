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

type TruckRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, trucks []*types.Truck) ([]*types.Truck, error)

  // READ
  GetByIDs(ctx context.Context, tx *gorm.DB, truckIDs []uuid.UUID) ([]*types.Truck, error)
  GetByVehicleNumber(ctx context.Context, tx *gorm.DB, vehicleNumber string) (*types.Truck, error)
  GetActiveByVehicleNumber(ctx context.Context, tx *gorm.DB, vehicleNumber string) (*types.Truck, error)
  GetByStatuses(ctx context.Context, tx *gorm.DB, statuses []lifecycle.Status) ([]*types.Truck, error)
  GetScheduledBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.Truck, error)
  GetActive(ctx context.Context, tx *gorm.DB) ([]*types.Truck, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Truck, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, trucks []*types.Truck) ([]*types.Truck, error)

  // FULL (HARD) DELETE
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, truckIDs []uuid.UUID) error
}

type truckRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTruckRepo(db *gorm.DB, baseLog *logger.Logger) TruckRepo {
  repoLog := baseLog.With("repo", "TruckRepo")
  return &truckRepo{db: db, log: repoLog}
}

func (tr *truckRepo) Create(ctx context.Context, tx *gorm.DB, trucks []*types.Truck) ([]*types.Truck, error) {
  tr.log.Info("Starting Create Trucks now...")
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(trucks) == 0 {
    tr.log.Debug("Trucks array is empty, returning empty slice")
    return []*types.Truck{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&trucks).Error; err != nil {
    tr.log.Error("Failed to create trucks", "error", err)
    return nil, err
  }
  tr.log.Info("Successfully created trucks", "count", len(trucks))
  return trucks, nil
}

func (tr *truckRepo) GetByIDs(ctx context.Context, tx *gorm.DB, truckIDs []uuid.UUID) ([]*types.Truck, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var results []*types.Truck
  if len(truckIDs) == 0 {
    tr.log.Debug("No truckIDs provided, returning empty slice")
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", truckIDs).
    Find(&results).Error; err != nil {
    tr.log.Error("Failed to fetch trucks by IDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (tr *truckRepo) GetByVehicleNumber(ctx context.Context, tx *gorm.DB, vehicleNumber string) (*types.Truck, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var result types.Truck
  if err := transaction.WithContext(ctx).
    Where("vehicle_number = ?", vehicleNumber).
    Order("created_at DESC").
    First(&result).Error; err != nil {
    tr.log.Debug("Failed to fetch truck by vehicle number", "vehicleNumber", vehicleNumber, "error", err)
    return nil, err
  }
  return &result, nil
}

func (tr *truckRepo) GetActiveByVehicleNumber(ctx context.Context, tx *gorm.DB, vehicleNumber string) (*types.Truck, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var result types.Truck
  if err := transaction.WithContext(ctx).
    Where("vehicle_number = ? AND status NOT IN ?", vehicleNumber, []lifecycle.Status{lifecycle.StatusExited, lifecycle.StatusRejected}).
    Order("created_at DESC").
    First(&result).Error; err != nil {
    tr.log.Debug("Failed to fetch active truck by vehicle number", "vehicleNumber", vehicleNumber, "error", err)
    return nil, err
  }
  return &result, nil
}

func (tr *truckRepo) GetByStatuses(ctx context.Context, tx *gorm.DB, statuses []lifecycle.Status) ([]*types.Truck, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var results []*types.Truck
  if len(statuses) == 0 {
    tr.log.Debug("No statuses provided, returning empty slice")
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("status IN ?", statuses).
    Order("scheduled_at ASC").
    Find(&results).Error; err != nil {
    tr.log.Error("Failed to fetch trucks by statuses", "error", err)
    return nil, err
  }
  tr.log.Debug("Fetched trucks by statuses", "count", len(results))
  return results, nil
}

func (tr *truckRepo) GetScheduledBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.Truck, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var results []*types.Truck
  if err := transaction.WithContext(ctx).
    Where("scheduled_at >= ? AND scheduled_at < ?", from, to).
    Order("scheduled_at ASC").
    Find(&results).Error; err != nil {
    tr.log.Error("Failed to fetch trucks scheduled between", "error", err)
    return nil, err
  }
  return results, nil
}

func (tr *truckRepo) GetActive(ctx context.Context, tx *gorm.DB) ([]*types.Truck, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var results []*types.Truck
  if err := transaction.WithContext(ctx).
    Where("status NOT IN ?", []lifecycle.Status{lifecycle.StatusExited, lifecycle.StatusRejected}).
    Order("scheduled_at ASC").
    Find(&results).Error; err != nil {
    tr.log.Error("Failed to fetch active trucks", "error", err)
    return nil, err
  }
  tr.log.Debug("Fetched active trucks", "count", len(results))
  return results, nil
}

func (tr *truckRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Truck, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var results []*types.Truck
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    tr.log.Error("Failed to fetch all trucks", "error", err)
    return nil, err
  }
  return results, nil
}

func (tr *truckRepo) Update(ctx context.Context, tx *gorm.DB, trucks []*types.Truck) ([]*types.Truck, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(trucks) == 0 {
    tr.log.Debug("No trucks provided, returning empty slice")
    return []*types.Truck{}, nil
  }
  for _, t := range trucks {
    if err := transaction.WithContext(ctx).Save(t).Error; err != nil {
      tr.log.Error("Failed to update truck", "truckID", t.ID, "error", err)
      return nil, err
    }
  }
  tr.log.Info("Successfully updated trucks", "count", len(trucks))
  return trucks, nil
}

func (tr *truckRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, truckIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(truckIDs) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("id IN ?", truckIDs).
    Delete(&types.Truck{}).Error; err != nil {
    tr.log.Error("Failed to hard delete trucks", "error", err)
    return err
  }
  return nil
}
