package services

import (
  "context"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/eventdata"
  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/requestdata"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type DockService interface {
  GetDocks(ctx context.Context) ([]*types.Dock, error)
  GetOpenOperations(ctx context.Context) ([]*types.DockOperation, error)
  AssignToDock(ctx context.Context, truckID uuid.UUID, dockID uuid.UUID) (*types.DockOperation, error)
  StartOperation(ctx context.Context, truckID uuid.UUID) (*types.DockOperation, error)
  CompleteOperation(ctx context.Context, truckID uuid.UUID, next lifecycle.Status, notes string) (*types.DockOperation, error)
}

type dockService struct {
  db                *gorm.DB
  log               *logger.Logger
  dockRepo          repos.DockRepo
  dockOperationRepo repos.DockOperationRepo
  truckRepo         repos.TruckRepo
  yardService       YardService
}

func NewDockService(
  db                *gorm.DB,
  log               *logger.Logger,
  dockRepo          repos.DockRepo,
  dockOperationRepo repos.DockOperationRepo,
  truckRepo         repos.TruckRepo,
  yardService       YardService,
) DockService {
  serviceLog := log.With("service", "DockService")
  return &dockService{
    db:                db,
    log:               serviceLog,
    dockRepo:          dockRepo,
    dockOperationRepo: dockOperationRepo,
    truckRepo:         truckRepo,
    yardService:       yardService,
  }
}

func (ds *dockService) GetDocks(ctx context.Context) ([]*types.Dock, error) {
  return ds.dockRepo.GetAll(ctx, nil)
}

func (ds *dockService) GetOpenOperations(ctx context.Context) ([]*types.DockOperation, error) {
  return ds.dockOperationRepo.GetOpen(ctx, nil)
}

// AssignToDock moves the truck to the dock and opens a pending operation for
// it. A dock holds one truck at a time, so an existing open operation on the
// dock blocks the assignment.
func (ds *dockService) AssignToDock(ctx context.Context, truckID uuid.UUID, dockID uuid.UUID) (*types.DockOperation, error) {
  ds.log.Info("Starting Assign To Dock now...", "truckID", truckID, "dockID", dockID)
  var created *types.DockOperation
  err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    //1) Validate the dock.
    docks, dErr := ds.dockRepo.GetByIDs(ctx, tx, []uuid.UUID{dockID})
    if dErr != nil {
      ds.log.Warn("Failed to fetch dock, Cannot proceed further. Returning error.", "error", dErr)
      return fmt.Errorf("Failed to fetch dock: %w", dErr)
    }
    if len(docks) == 0 {
      return fmt.Errorf("No dock found with id '%s'", dockID)
    }
    dock := docks[0]
    if !dock.IsActive {
      ds.log.Warn("Dock is not active, Cannot proceed further.", "dockID", dockID)
      return fmt.Errorf("dock '%s' is not active", dock.Name)
    }

    //2) Make sure the dock is free.
    if _, oErr := ds.dockOperationRepo.GetOpenByDockID(ctx, tx, dockID); oErr == nil {
      ds.log.Warn("Dock is occupied, Cannot proceed further.", "dockID", dockID)
      return fmt.Errorf("dock '%s' is occupied", dock.Name)
    } else if !errors.Is(oErr, gorm.ErrRecordNotFound) {
      ds.log.Warn("Failed to check dock occupancy, Cannot proceed further. Returning error.", "error", oErr)
      return fmt.Errorf("Failed to check dock occupancy: %w", oErr)
    }

    //3) Transition the truck, then pin it to the dock.
    truck, tErr := ds.yardService.ApplyTransition(ctx, tx, truckID, lifecycle.StatusAtDock, types.AuditDomainDockOperations, "assigned_to_dock", fmt.Sprintf("dock %s", dock.Name))
    if tErr != nil {
      return tErr
    }
    truck.DockID = &dockID
    if _, uErr := ds.truckRepo.Update(ctx, tx, []*types.Truck{truck}); uErr != nil {
      ds.log.Warn("Failed to set dock on truck, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to set dock on truck: %w", uErr)
    }

    //4) Open the pending operation.
    operation := &types.DockOperation{
      ID:            uuid.New(),
      TruckID:       truck.ID,
      DockID:        dockID,
      VehicleNumber: truck.VehicleNumber,
      OperationType: truck.CargoDirection,
      Status:        types.DockOperationPending,
    }
    if _, cErr := ds.dockOperationRepo.Create(ctx, tx, []*types.DockOperation{operation}); cErr != nil {
      ds.log.Warn("Failed to create dock operation, Cannot proceed further. Returning error.", "error", cErr)
      return fmt.Errorf("Failed to create dock operation: %w", cErr)
    }
    created = operation
    return nil
  })
  if err != nil {
    return nil, err
  }
  if ed := eventdata.GetEventData(ctx); ed != nil {
    ed.AppendMessage(socket.Message{Channel: socket.ChannelDocks, Payload: created})
  }
  ds.log.Info("Successfully assigned truck to dock :)", "truckID", truckID, "dockID", dockID)
  return created, nil
}

// StartOperation marks the open operation in progress and moves the truck to
// loading or unloading, whichever the schedule says.
func (ds *dockService) StartOperation(ctx context.Context, truckID uuid.UUID) (*types.DockOperation, error) {
  ds.log.Info("Starting Start Operation now...", "truckID", truckID)
  var started *types.DockOperation
  err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    operation, oErr := ds.dockOperationRepo.GetOpenByTruckID(ctx, tx, truckID)
    if oErr != nil {
      ds.log.Warn("Failed to fetch open dock operation, Cannot proceed further. Returning error.", "error", oErr)
      return fmt.Errorf("Failed to fetch open dock operation: %w", oErr)
    }
    if operation.Status != types.DockOperationPending {
      ds.log.Warn("Dock operation has already started, Cannot proceed further.", "truckID", truckID, "status", operation.Status)
      return fmt.Errorf("dock operation is already '%s'", operation.Status)
    }

    to := lifecycle.StatusUnloading
    if operation.OperationType == types.CargoDirectionLoading {
      to = lifecycle.StatusLoading
    }
    if _, tErr := ds.yardService.ApplyTransition(ctx, tx, truckID, to, types.AuditDomainDockOperations, "operation_started", string(operation.OperationType)); tErr != nil {
      return tErr
    }

    now := time.Now()
    operation.Status = types.DockOperationInProgress
    operation.StartedAt = &now
    if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
      uid := rd.UserID
      operation.OperatorID = &uid
    }
    if _, uErr := ds.dockOperationRepo.Update(ctx, tx, []*types.DockOperation{operation}); uErr != nil {
      ds.log.Warn("Failed to update dock operation, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to update dock operation: %w", uErr)
    }
    started = operation
    return nil
  })
  if err != nil {
    return nil, err
  }
  if ed := eventdata.GetEventData(ctx); ed != nil {
    ed.AppendMessage(socket.Message{Channel: socket.ChannelDocks, Payload: started})
  }
  ds.log.Info("Successfully started dock operation :)", "truckID", truckID)
  return started, nil
}

// CompleteOperation closes the operation, frees the dock on the truck and
// moves the truck onward. Loaded trucks usually go back to the weighbridge
// for the second weighment; others can go straight to exit_ready.
func (ds *dockService) CompleteOperation(ctx context.Context, truckID uuid.UUID, next lifecycle.Status, notes string) (*types.DockOperation, error) {
  ds.log.Info("Starting Complete Operation now...", "truckID", truckID, "next", next)
  if next != lifecycle.StatusAtWeighbridge && next != lifecycle.StatusExitReady {
    return nil, fmt.Errorf("a completed operation can only move the truck to '%s' or '%s'", lifecycle.StatusAtWeighbridge, lifecycle.StatusExitReady)
  }
  var completed *types.DockOperation
  err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    operation, oErr := ds.dockOperationRepo.GetOpenByTruckID(ctx, tx, truckID)
    if oErr != nil {
      ds.log.Warn("Failed to fetch open dock operation, Cannot proceed further. Returning error.", "error", oErr)
      return fmt.Errorf("Failed to fetch open dock operation: %w", oErr)
    }
    if operation.Status != types.DockOperationInProgress {
      ds.log.Warn("Dock operation is not in progress, Cannot proceed further.", "truckID", truckID, "status", operation.Status)
      return fmt.Errorf("dock operation is '%s', not in progress", operation.Status)
    }

    truck, tErr := ds.yardService.ApplyTransition(ctx, tx, truckID, next, types.AuditDomainDockOperations, "operation_completed", notes)
    if tErr != nil {
      return tErr
    }
    truck.DockID = nil
    if _, uErr := ds.truckRepo.Update(ctx, tx, []*types.Truck{truck}); uErr != nil {
      ds.log.Warn("Failed to clear dock on truck, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to clear dock on truck: %w", uErr)
    }

    now := time.Now()
    operation.Status = types.DockOperationCompleted
    operation.CompletedAt = &now
    if notes != "" {
      operation.Notes = notes
    }
    if _, uErr := ds.dockOperationRepo.Update(ctx, tx, []*types.DockOperation{operation}); uErr != nil {
      ds.log.Warn("Failed to update dock operation, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to update dock operation: %w", uErr)
    }
    completed = operation
    return nil
  })
  if err != nil {
    return nil, err
  }
  if ed := eventdata.GetEventData(ctx); ed != nil {
    ed.AppendMessage(socket.Message{Channel: socket.ChannelDocks, Payload: completed})
  }
  ds.log.Info("Successfully completed dock operation :)", "truckID", truckID)
  return completed, nil
}
