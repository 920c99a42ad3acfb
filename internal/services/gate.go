package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/normalization"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type GateService interface {
  GetExpectedTrucks(ctx context.Context) ([]*types.Truck, error)
  LookupByVehicleNumber(ctx context.Context, vehicleNumber string) (*types.Truck, error)
  VerifyTruck(ctx context.Context, truckID uuid.UUID, notes string) (*types.Truck, error)
  RejectTruck(ctx context.Context, truckID uuid.UUID, reason string) (*types.Truck, error)
  SendToParking(ctx context.Context, truckID uuid.UUID) (*types.Truck, error)
  GateOutTruck(ctx context.Context, truckID uuid.UUID) (*types.Truck, error)
}

type gateService struct {
  db                *gorm.DB
  log               *logger.Logger
  truckRepo         repos.TruckRepo
  plantTrackingRepo repos.PlantTrackingRepo
  yardService       YardService
}

func NewGateService(
  db                *gorm.DB,
  log               *logger.Logger,
  truckRepo         repos.TruckRepo,
  plantTrackingRepo repos.PlantTrackingRepo,
  yardService       YardService,
) GateService {
  serviceLog := log.With("service", "GateService")
  return &gateService{
    db:                db,
    log:               serviceLog,
    truckRepo:         truckRepo,
    plantTrackingRepo: plantTrackingRepo,
    yardService:       yardService,
  }
}

func (gs *gateService) GetExpectedTrucks(ctx context.Context) ([]*types.Truck, error) {
  return gs.truckRepo.GetByStatuses(ctx, nil, []lifecycle.Status{lifecycle.StatusScheduled})
}

func (gs *gateService) LookupByVehicleNumber(ctx context.Context, vehicleNumber string) (*types.Truck, error) {
  normalized := normalization.ParseVehicleNumber(vehicleNumber)
  if normalized == "" {
    return nil, fmt.Errorf("vehicle number is required")
  }
  return gs.truckRepo.GetActiveByVehicleNumber(ctx, nil, normalized)
}

// VerifyTruck moves a scheduled truck through the gate. The same transaction
// opens the plant tracking record that mirrors the truck for the rest of the
// visit. The weighbridge entry is opened later, when the truck actually
// arrives at a weighbridge.
func (gs *gateService) VerifyTruck(ctx context.Context, truckID uuid.UUID, notes string) (*types.Truck, error) {
  gs.log.Info("Starting Verify Truck now...", "truckID", truckID)
  var verified *types.Truck
  err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    //1) scheduled -> verified
    truck, tErr := gs.yardService.ApplyTransition(ctx, tx, truckID, lifecycle.StatusVerified, types.AuditDomainGateGuard, "gate_verified", notes)
    if tErr != nil {
      return tErr
    }

    //2) Open the plant tracking record for this visit
    record := &types.PlantTrackingRecord{
      TruckID:         truck.ID,
      VehicleNumber:   truck.VehicleNumber,
      Status:          truck.Status,
      CurrentLocation: truck.CurrentLocation,
      GateInAt:        truck.GateInAt,
    }
    if _, rErr := gs.plantTrackingRepo.Create(ctx, tx, []*types.PlantTrackingRecord{record}); rErr != nil {
      gs.log.Warn("Failed to open plant tracking record, Cannot proceed further. Returning error.", "error", rErr)
      return fmt.Errorf("Failed to open plant tracking record: %w", rErr)
    }

    verified = truck
    return nil
  })
  if err != nil {
    return nil, err
  }
  gs.log.Info("Successfully verified truck at gate :)", "truckID", truckID, "vehicleNumber", verified.VehicleNumber)
  return verified, nil
}

func (gs *gateService) RejectTruck(ctx context.Context, truckID uuid.UUID, reason string) (*types.Truck, error) {
  details := "rejected at gate"
  if reason != "" {
    details = fmt.Sprintf("rejected at gate: %s", reason)
  }
  return gs.yardService.UpdateTruckLocationAndStatus(ctx, truckID, lifecycle.StatusRejected, types.AuditDomainGateGuard, "gate_rejected", details)
}

// SendToParking stages a verified truck in the parking area until a
// weighbridge or dock frees up.
func (gs *gateService) SendToParking(ctx context.Context, truckID uuid.UUID) (*types.Truck, error) {
  return gs.yardService.UpdateTruckLocationAndStatus(ctx, truckID, lifecycle.StatusAtParking, types.AuditDomainGateGuard, "sent_to_parking", "")
}

func (gs *gateService) GateOutTruck(ctx context.Context, truckID uuid.UUID) (*types.Truck, error) {
  return gs.yardService.UpdateTruckLocationAndStatus(ctx, truckID, lifecycle.StatusExited, types.AuditDomainGateGuard, "gate_out", "")
}
