package services

import (
  "context"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/errordata"
  "github.com/yardsync-org/yardsync-backend/internal/eventdata"
  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/requestdata"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

// YardService owns every truck status change. All writes to a truck's Status
// and CurrentLocation go through UpdateTruckLocationAndStatus, which also
// keeps the open weighbridge entry and plant tracking record mirrors in step
// and appends the audit record, all inside one transaction.
type YardService interface {
  UpdateTruckLocationAndStatus(ctx context.Context, truckID uuid.UUID, to lifecycle.Status, domain types.AuditDomain, action string, details string) (*types.Truck, error)
  ApplyTransition(ctx context.Context, tx *gorm.DB, truckID uuid.UUID, to lifecycle.Status, domain types.AuditDomain, action string, details string) (*types.Truck, error)
  GetActiveTrucks(ctx context.Context) ([]*types.Truck, error)
  GetTruckTimeline(ctx context.Context, truckID uuid.UUID) ([]*types.AuditRecord, error)
  GetOpenTrackingRecords(ctx context.Context) ([]*types.PlantTrackingRecord, error)
  GetClosedTrackingRecordsBetween(ctx context.Context, from, to time.Time) ([]*types.PlantTrackingRecord, error)
}

type yardService struct {
  db                   *gorm.DB
  log                  *logger.Logger
  truckRepo            repos.TruckRepo
  weighbridgeEntryRepo repos.WeighbridgeEntryRepo
  plantTrackingRepo    repos.PlantTrackingRepo
  auditRepo            repos.AuditRepo
}

func NewYardService(
  db                   *gorm.DB,
  log                  *logger.Logger,
  truckRepo            repos.TruckRepo,
  weighbridgeEntryRepo repos.WeighbridgeEntryRepo,
  plantTrackingRepo    repos.PlantTrackingRepo,
  auditRepo            repos.AuditRepo,
) YardService {
  serviceLog := log.With("service", "YardService")
  return &yardService{
    db:                   db,
    log:                  serviceLog,
    truckRepo:            truckRepo,
    weighbridgeEntryRepo: weighbridgeEntryRepo,
    plantTrackingRepo:    plantTrackingRepo,
    auditRepo:            auditRepo,
  }
}

func (ys *yardService) UpdateTruckLocationAndStatus(ctx context.Context, truckID uuid.UUID, to lifecycle.Status, domain types.AuditDomain, action string, details string) (*types.Truck, error) {
  ys.log.Info("Starting Update Truck Location And Status now...", "truckID", truckID, "to", to)
  var updatedTruck *types.Truck
  err := ys.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    truck, aErr := ys.ApplyTransition(ctx, tx, truckID, to, domain, action, details)
    if aErr != nil {
      return aErr
    }
    updatedTruck = truck
    return nil
  })
  if err != nil {
    return nil, err
  }
  ys.log.Info("Successfully updated truck location and status :)", "truckID", truckID, "to", to)
  return updatedTruck, nil
}

// ApplyTransition runs the full propagation inside the caller's transaction:
// truck, open weighbridge entry, open plant tracking record and audit record
// all change together or not at all. Broadcast messages are queued on the
// request's event data; the handler flushes them only after the transaction
// has committed.
func (ys *yardService) ApplyTransition(ctx context.Context, tx *gorm.DB, truckID uuid.UUID, to lifecycle.Status, domain types.AuditDomain, action string, details string) (*types.Truck, error) {
  //1) Load the truck
  trucks, fTErr := ys.truckRepo.GetByIDs(ctx, tx, []uuid.UUID{truckID})
  if fTErr != nil {
    ys.log.Warn("Failed to fetch truck, Cannot proceed further. Returning error.", "error", fTErr)
    return nil, fmt.Errorf("Failed to fetch truck: %w", fTErr)
  }
  if len(trucks) == 0 {
    ys.log.Warn("No truck found with that id, Cannot proceed further.", "truckID", truckID)
    return nil, fmt.Errorf("No truck found with id '%s'", truckID)
  }
  truck := trucks[0]

  //2) Validate the transition against the lifecycle table
  from := truck.Status
  if vErr := lifecycle.Validate(from, to); vErr != nil {
    ys.log.Warn("Illegal truck status transition, Cannot proceed further. Returning error.", "from", from, "to", to, "error", vErr)
    if ed := errordata.GetErrorData(ctx); ed != nil {
      ed.SetMessage(fmt.Sprintf("Truck '%s' cannot move from '%s' to '%s'", truck.VehicleNumber, from, to))
    }
    return nil, vErr
  }

  //3) Apply status, location and milestone timestamps to the truck
  now := time.Now()
  truck.Status = to
  truck.CurrentLocation = lifecycle.LocationFor(to)
  truck.LocationUpdatedAt = &now
  var actorID *uuid.UUID
  if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
    uid := rd.UserID
    actorID = &uid
    truck.LocationUpdatedBy = &uid
  }
  switch to {
  case lifecycle.StatusVerified:
    truck.GateInAt = &now
    if actorID != nil {
      truck.VerifiedBy = actorID
    }
  case lifecycle.StatusExited:
    truck.GateOutAt = &now
  }
  if _, uTErr := ys.truckRepo.Update(ctx, tx, []*types.Truck{truck}); uTErr != nil {
    ys.log.Warn("Failed to update truck, Cannot proceed further. Returning error.", "error", uTErr)
    return nil, fmt.Errorf("Failed to update truck: %w", uTErr)
  }

  //4) Mirror onto the open weighbridge entry, if one exists
  entry, eErr := ys.weighbridgeEntryRepo.GetOpenByTruckID(ctx, tx, truck.ID)
  if eErr != nil && !errors.Is(eErr, gorm.ErrRecordNotFound) {
    ys.log.Warn("Failed to fetch open weighbridge entry, Cannot proceed further. Returning error.", "error", eErr)
    return nil, fmt.Errorf("Failed to fetch open weighbridge entry: %w", eErr)
  }
  if entry != nil {
    entry.Status = to
    entry.CurrentLocation = truck.CurrentLocation
    if _, uEErr := ys.weighbridgeEntryRepo.Update(ctx, tx, []*types.WeighbridgeEntry{entry}); uEErr != nil {
      ys.log.Warn("Failed to update open weighbridge entry, Cannot proceed further. Returning error.", "error", uEErr)
      return nil, fmt.Errorf("Failed to update open weighbridge entry: %w", uEErr)
    }
  }

  //5) Mirror onto the open plant tracking record, if one exists
  record, rErr := ys.plantTrackingRepo.GetOpenByTruckID(ctx, tx, truck.ID)
  if rErr != nil && !errors.Is(rErr, gorm.ErrRecordNotFound) {
    ys.log.Warn("Failed to fetch open plant tracking record, Cannot proceed further. Returning error.", "error", rErr)
    return nil, fmt.Errorf("Failed to fetch open plant tracking record: %w", rErr)
  }
  if record != nil {
    mirrorTrackingRecord(record, truck, to, now)
    if _, uRErr := ys.plantTrackingRepo.Update(ctx, tx, []*types.PlantTrackingRecord{record}); uRErr != nil {
      ys.log.Warn("Failed to update open plant tracking record, Cannot proceed further. Returning error.", "error", uRErr)
      return nil, fmt.Errorf("Failed to update open plant tracking record: %w", uRErr)
    }
  }

  //6) Append the audit record
  audit := &types.AuditRecord{
    Domain:        domain,
    TruckID:       &truck.ID,
    VehicleNumber: truck.VehicleNumber,
    Action:        action,
    FromStatus:    from,
    ToStatus:      to,
    ActorID:       actorID,
    Details:       details,
  }
  if _, aErr := ys.auditRepo.Create(ctx, tx, []*types.AuditRecord{audit}); aErr != nil {
    ys.log.Warn("Failed to create audit record, Cannot proceed further. Returning error.", "error", aErr)
    return nil, fmt.Errorf("Failed to create audit record: %w", aErr)
  }

  //7) Queue broadcast events for the post-commit flush
  if ed := eventdata.GetEventData(ctx); ed != nil {
    ed.AppendMessage(socket.Message{Channel: socket.ChannelTrucks, Payload: truck})
    if ch := channelForDomain(domain); ch != "" {
      ed.AppendMessage(socket.Message{Channel: ch, Payload: truck})
    }
  }
  return truck, nil
}

func (ys *yardService) GetActiveTrucks(ctx context.Context) ([]*types.Truck, error) {
  return ys.truckRepo.GetActive(ctx, nil)
}

func (ys *yardService) GetTruckTimeline(ctx context.Context, truckID uuid.UUID) ([]*types.AuditRecord, error) {
  return ys.auditRepo.GetByTruckIDs(ctx, nil, []uuid.UUID{truckID})
}

func (ys *yardService) GetOpenTrackingRecords(ctx context.Context) ([]*types.PlantTrackingRecord, error) {
  return ys.plantTrackingRepo.GetOpen(ctx, nil)
}

func (ys *yardService) GetClosedTrackingRecordsBetween(ctx context.Context, from, to time.Time) ([]*types.PlantTrackingRecord, error) {
  return ys.plantTrackingRepo.GetClosedBetween(ctx, nil, from, to)
}

// mirrorTrackingRecord copies the truck's status and location onto its open
// tracking record and stamps the first arrival time for each milestone. Already
// stamped milestones are never overwritten; a truck can revisit the parking
// area without losing its first parking-in time.
func mirrorTrackingRecord(record *types.PlantTrackingRecord, truck *types.Truck, to lifecycle.Status, now time.Time) {
  record.Status = to
  record.CurrentLocation = truck.CurrentLocation
  switch to {
  case lifecycle.StatusAtParking:
    if record.ParkingInAt == nil {
      record.ParkingInAt = &now
    }
  case lifecycle.StatusAtWeighbridge:
    if record.WeighbridgeInAt == nil {
      record.WeighbridgeInAt = &now
    }
  case lifecycle.StatusAtDock:
    if record.DockInAt == nil {
      record.DockInAt = &now
    }
  case lifecycle.StatusLoading, lifecycle.StatusUnloading:
    if record.OperationStartAt == nil {
      record.OperationStartAt = &now
    }
  case lifecycle.StatusExitReady:
    if record.OperationEndAt == nil {
      record.OperationEndAt = &now
    }
  case lifecycle.StatusExited:
    record.ExitAt = &now
  }
}

func channelForDomain(domain types.AuditDomain) string {
  switch domain {
  case types.AuditDomainGateGuard:
    return socket.ChannelGate
  case types.AuditDomainWeighbridge:
    return socket.ChannelWeighbridge
  case types.AuditDomainDockOperations:
    return socket.ChannelDocks
  default:
    return ""
  }
}
