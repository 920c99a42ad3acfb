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
  "github.com/yardsync-org/yardsync-backend/internal/normalization"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/requestdata"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
  "github.com/yardsync-org/yardsync-backend/internal/types"
  "github.com/yardsync-org/yardsync-backend/internal/utils"
)

// ScheduleUpdate carries the fields a scheduler may change before the truck
// arrives at the gate. Nil pointers mean "leave as is".
type ScheduleUpdate struct {
  ScheduledAt      *time.Time
  Transporter      *string
  DriverName       *string
  DriverPhone      *string
  LicenseNumber    *string
  CargoDirection   *types.CargoDirection
  CargoDescription *string
}

type TruckService interface {
  ScheduleTruck(ctx context.Context, truck *types.Truck) (*types.Truck, error)
  UpdateSchedule(ctx context.Context, truckID uuid.UUID, update ScheduleUpdate) (*types.Truck, error)
  CancelSchedule(ctx context.Context, truckID uuid.UUID, reason string) (*types.Truck, error)
  GetScheduleForDay(ctx context.Context, day time.Time) ([]*types.Truck, error)
  GetTruckByID(ctx context.Context, truckID uuid.UUID) (*types.Truck, error)
  GetAllTrucks(ctx context.Context) ([]*types.Truck, error)
}

type truckService struct {
  db                  *gorm.DB
  log                 *logger.Logger
  truckRepo           repos.TruckRepo
  approvalRequestRepo repos.ApprovalRequestRepo
  auditRepo           repos.AuditRepo
  yardService         YardService
}

func NewTruckService(
  db                  *gorm.DB,
  log                 *logger.Logger,
  truckRepo           repos.TruckRepo,
  approvalRequestRepo repos.ApprovalRequestRepo,
  auditRepo           repos.AuditRepo,
  yardService         YardService,
) TruckService {
  serviceLog := log.With("service", "TruckService")
  return &truckService{
    db:                  db,
    log:                 serviceLog,
    truckRepo:           truckRepo,
    approvalRequestRepo: approvalRequestRepo,
    auditRepo:           auditRepo,
    yardService:         yardService,
  }
}

// ScheduleTruck records a new visit. When REQUIRE_SCHEDULE_APPROVAL is set the
// truck starts in pending_approval with an open approval request; otherwise it
// goes straight to scheduled.
func (ts *truckService) ScheduleTruck(ctx context.Context, truck *types.Truck) (*types.Truck, error) {
  ts.log.Info("Starting Schedule Truck now...")

  //1) Normalize and validate input
  truck.VehicleNumber = normalization.ParseVehicleNumber(truck.VehicleNumber)
  truck.Transporter = normalization.ParseInputString(truck.Transporter)
  truck.DriverName = normalization.ParseInputString(truck.DriverName)
  if truck.VehicleNumber == "" {
    ts.log.Warn("Vehicle number is empty, Cannot proceed further.")
    return nil, fmt.Errorf("vehicle number is required")
  }
  if truck.DriverName == "" {
    ts.log.Warn("Driver name is empty, Cannot proceed further.")
    return nil, fmt.Errorf("driver name is required")
  }
  if truck.CargoDirection != types.CargoDirectionLoading && truck.CargoDirection != types.CargoDirectionUnloading {
    ts.log.Warn("Invalid cargo direction, Cannot proceed further.", "cargoDirection", truck.CargoDirection)
    return nil, fmt.Errorf("cargo direction must be 'loading' or 'unloading'")
  }
  if truck.ScheduledAt.IsZero() {
    ts.log.Warn("ScheduledAt is zero, Cannot proceed further.")
    return nil, fmt.Errorf("scheduled time is required")
  }

  requireApproval := utils.GetEnvAsBool("REQUIRE_SCHEDULE_APPROVAL", true, ts.log)

  //2) Transaction Body
  err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, fErr := ts.truckRepo.GetActiveByVehicleNumber(ctx, tx, truck.VehicleNumber)
    if fErr != nil && !errors.Is(fErr, gorm.ErrRecordNotFound) {
      ts.log.Warn("Failed to check for active visit with same vehicle number, Cannot proceed further. Returning error.", "error", fErr)
      return fmt.Errorf("Failed to check for active visit: %w", fErr)
    }
    if existing != nil {
      ts.log.Warn("Vehicle already has an active visit, Cannot proceed further.", "vehicleNumber", truck.VehicleNumber, "status", existing.Status)
      return fmt.Errorf("vehicle '%s' already has an active visit", truck.VehicleNumber)
    }

    truck.ID = uuid.New()
    if requireApproval {
      truck.Status = lifecycle.StatusPendingApproval
    } else {
      truck.Status = lifecycle.StatusScheduled
    }
    truck.CurrentLocation = lifecycle.LocationFor(truck.Status)

    var actorID *uuid.UUID
    if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
      uid := rd.UserID
      actorID = &uid
      truck.CreatedBy = &uid
    }

    if _, cErr := ts.truckRepo.Create(ctx, tx, []*types.Truck{truck}); cErr != nil {
      ts.log.Warn("Failed to create truck, Cannot proceed further. Returning error.", "error", cErr)
      return fmt.Errorf("Failed to create truck: %w", cErr)
    }

    if requireApproval {
      request := &types.ApprovalRequest{
        TruckID:       truck.ID,
        RequestedByID: actorID,
        RequestType:   types.ApprovalRequestTypeSchedule,
        Status:        types.ApprovalStatusPending,
      }
      if _, aErr := ts.approvalRequestRepo.Create(ctx, tx, []*types.ApprovalRequest{request}); aErr != nil {
        ts.log.Warn("Failed to create approval request for new truck, Cannot proceed further. Returning error.", "error", aErr)
        return fmt.Errorf("Failed to create approval request: %w", aErr)
      }
    }

    audit := &types.AuditRecord{
      Domain:        types.AuditDomainTruckScheduling,
      TruckID:       &truck.ID,
      VehicleNumber: truck.VehicleNumber,
      Action:        "truck_scheduled",
      ToStatus:      truck.Status,
      ActorID:       actorID,
      Details:       fmt.Sprintf("scheduled for %s", truck.ScheduledAt.Format(time.RFC3339)),
    }
    if _, aErr := ts.auditRepo.Create(ctx, tx, []*types.AuditRecord{audit}); aErr != nil {
      ts.log.Warn("Failed to create audit record for new truck, Cannot proceed further. Returning error.", "error", aErr)
      return fmt.Errorf("Failed to create audit record: %w", aErr)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }

  if ed := eventdata.GetEventData(ctx); ed != nil {
    ed.AppendMessage(socket.Message{Channel: socket.ChannelTrucks, Payload: truck})
  }
  ts.log.Info("Successfully scheduled truck :)", "vehicleNumber", truck.VehicleNumber, "status", truck.Status)
  return truck, nil
}

func (ts *truckService) UpdateSchedule(ctx context.Context, truckID uuid.UUID, update ScheduleUpdate) (*types.Truck, error) {
  var updated *types.Truck
  err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    trucks, fErr := ts.truckRepo.GetByIDs(ctx, tx, []uuid.UUID{truckID})
    if fErr != nil {
      ts.log.Warn("Failed to fetch truck for schedule update, Cannot proceed further. Returning error.", "error", fErr)
      return fmt.Errorf("Failed to fetch truck: %w", fErr)
    }
    if len(trucks) == 0 {
      return fmt.Errorf("No truck found with id '%s'", truckID)
    }
    truck := trucks[0]
    if truck.Status != lifecycle.StatusPendingApproval && truck.Status != lifecycle.StatusScheduled {
      ts.log.Warn("Truck is already inside the yard, schedule can no longer be edited.", "truckID", truckID, "status", truck.Status)
      return fmt.Errorf("schedule can only be edited before gate verification (status is '%s')", truck.Status)
    }
    if update.ScheduledAt != nil {
      truck.ScheduledAt = *update.ScheduledAt
    }
    if update.Transporter != nil {
      truck.Transporter = normalization.ParseInputString(*update.Transporter)
    }
    if update.DriverName != nil {
      truck.DriverName = normalization.ParseInputString(*update.DriverName)
    }
    if update.DriverPhone != nil {
      truck.DriverPhone = update.DriverPhone
    }
    if update.LicenseNumber != nil {
      truck.LicenseNumber = *update.LicenseNumber
    }
    if update.CargoDirection != nil {
      if *update.CargoDirection != types.CargoDirectionLoading && *update.CargoDirection != types.CargoDirectionUnloading {
        return fmt.Errorf("cargo direction must be 'loading' or 'unloading'")
      }
      truck.CargoDirection = *update.CargoDirection
    }
    if update.CargoDescription != nil {
      truck.CargoDescription = *update.CargoDescription
    }
    if _, uErr := ts.truckRepo.Update(ctx, tx, []*types.Truck{truck}); uErr != nil {
      ts.log.Warn("Failed to update truck schedule, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to update truck schedule: %w", uErr)
    }
    var actorID *uuid.UUID
    if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
      uid := rd.UserID
      actorID = &uid
    }
    audit := &types.AuditRecord{
      Domain:        types.AuditDomainTruckScheduling,
      TruckID:       &truck.ID,
      VehicleNumber: truck.VehicleNumber,
      Action:        "schedule_updated",
      FromStatus:    truck.Status,
      ToStatus:      truck.Status,
      ActorID:       actorID,
    }
    if _, aErr := ts.auditRepo.Create(ctx, tx, []*types.AuditRecord{audit}); aErr != nil {
      return fmt.Errorf("Failed to create audit record: %w", aErr)
    }
    updated = truck
    return nil
  })
  if err != nil {
    return nil, err
  }
  if ed := eventdata.GetEventData(ctx); ed != nil {
    ed.AppendMessage(socket.Message{Channel: socket.ChannelTrucks, Payload: updated})
  }
  return updated, nil
}

func (ts *truckService) CancelSchedule(ctx context.Context, truckID uuid.UUID, reason string) (*types.Truck, error) {
  details := "schedule cancelled"
  if reason != "" {
    details = fmt.Sprintf("schedule cancelled: %s", reason)
  }
  return ts.yardService.UpdateTruckLocationAndStatus(ctx, truckID, lifecycle.StatusRejected, types.AuditDomainTruckScheduling, "schedule_cancelled", details)
}

func (ts *truckService) GetScheduleForDay(ctx context.Context, day time.Time) ([]*types.Truck, error) {
  from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
  to := from.Add(24 * time.Hour)
  return ts.truckRepo.GetScheduledBetween(ctx, nil, from, to)
}

func (ts *truckService) GetTruckByID(ctx context.Context, truckID uuid.UUID) (*types.Truck, error) {
  trucks, err := ts.truckRepo.GetByIDs(ctx, nil, []uuid.UUID{truckID})
  if err != nil {
    return nil, err
  }
  if len(trucks) == 0 {
    return nil, fmt.Errorf("No truck found with id '%s'", truckID)
  }
  return trucks[0], nil
}

func (ts *truckService) GetAllTrucks(ctx context.Context) ([]*types.Truck, error) {
  return ts.truckRepo.GetAll(ctx, nil)
}
