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

// WeightKind distinguishes the two weighments of a visit. A loading truck
// weighs tare first and gross after the dock; an unloading truck the other
// way around. The service does not enforce an order, it just records both.
type WeightKind string

const (
  WeightKindGross WeightKind = "gross"
  WeightKindTare  WeightKind = "tare"
)

type WeighbridgeService interface {
  GetQueue(ctx context.Context) ([]*types.WeighbridgeEntry, error)
  MoveToWeighbridge(ctx context.Context, truckID uuid.UUID, weighbridgeID *uuid.UUID) (*types.Truck, error)
  CaptureWeight(ctx context.Context, truckID uuid.UUID, kind WeightKind, weightKg int) (*types.WeighbridgeEntry, error)
  ReleaseFromWeighbridge(ctx context.Context, truckID uuid.UUID, to lifecycle.Status) (*types.Truck, error)
}

type weighbridgeService struct {
  db                   *gorm.DB
  log                  *logger.Logger
  weighbridgeRepo      repos.WeighbridgeRepo
  weighbridgeEntryRepo repos.WeighbridgeEntryRepo
  auditRepo            repos.AuditRepo
  yardService          YardService
}

func NewWeighbridgeService(
  db                   *gorm.DB,
  log                  *logger.Logger,
  weighbridgeRepo      repos.WeighbridgeRepo,
  weighbridgeEntryRepo repos.WeighbridgeEntryRepo,
  auditRepo            repos.AuditRepo,
  yardService          YardService,
) WeighbridgeService {
  serviceLog := log.With("service", "WeighbridgeService")
  return &weighbridgeService{
    db:                   db,
    log:                  serviceLog,
    weighbridgeRepo:      weighbridgeRepo,
    weighbridgeEntryRepo: weighbridgeEntryRepo,
    auditRepo:            auditRepo,
    yardService:          yardService,
  }
}

func (ws *weighbridgeService) GetQueue(ctx context.Context) ([]*types.WeighbridgeEntry, error) {
  return ws.weighbridgeEntryRepo.GetOpen(ctx, nil)
}

// MoveToWeighbridge runs the status transition and opens the weighbridge
// entry for the visit in the same transaction. A truck returning for its
// second weighment reuses its still-open entry instead of getting a new one.
func (ws *weighbridgeService) MoveToWeighbridge(ctx context.Context, truckID uuid.UUID, weighbridgeID *uuid.UUID) (*types.Truck, error) {
  ws.log.Info("Starting Move To Weighbridge now...", "truckID", truckID)
  var moved *types.Truck
  err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if weighbridgeID != nil {
      found, fWErr := ws.weighbridgeRepo.GetByIDs(ctx, tx, []uuid.UUID{*weighbridgeID})
      if fWErr != nil {
        ws.log.Warn("Failed to fetch weighbridge, Cannot proceed further. Returning error.", "error", fWErr)
        return fmt.Errorf("Failed to fetch weighbridge: %w", fWErr)
      }
      if len(found) == 0 {
        return fmt.Errorf("No weighbridge found with id '%s'", *weighbridgeID)
      }
      if !found[0].IsActive {
        ws.log.Warn("Weighbridge is not active, Cannot proceed further.", "weighbridgeID", *weighbridgeID)
        return fmt.Errorf("weighbridge '%s' is not active", found[0].Name)
      }
    }
    truck, tErr := ws.yardService.ApplyTransition(ctx, tx, truckID, lifecycle.StatusAtWeighbridge, types.AuditDomainWeighbridge, "moved_to_weighbridge", "")
    if tErr != nil {
      return tErr
    }
    if _, aErr := ws.attachEntry(ctx, tx, truck, weighbridgeID); aErr != nil {
      return aErr
    }
    moved = truck
    return nil
  })
  if err != nil {
    return nil, err
  }
  return moved, nil
}

// attachEntry opens the weighbridge entry for a truck arriving at the
// weighbridge, or reuses the still-open one when the truck is back for its
// second weighment. Reuse only pins the physical weighbridge; the captured
// weights stay untouched.
func (ws *weighbridgeService) attachEntry(ctx context.Context, tx *gorm.DB, truck *types.Truck, weighbridgeID *uuid.UUID) (*types.WeighbridgeEntry, error) {
  entry, eErr := ws.weighbridgeEntryRepo.GetOpenByTruckID(ctx, tx, truck.ID)
  if eErr != nil && !errors.Is(eErr, gorm.ErrRecordNotFound) {
    ws.log.Warn("Failed to fetch open weighbridge entry, Cannot proceed further. Returning error.", "error", eErr)
    return nil, fmt.Errorf("Failed to fetch open weighbridge entry: %w", eErr)
  }
  if entry == nil {
    entry = &types.WeighbridgeEntry{
      TruckID:         truck.ID,
      VehicleNumber:   truck.VehicleNumber,
      Status:          truck.Status,
      CurrentLocation: truck.CurrentLocation,
      WeighbridgeID:   weighbridgeID,
    }
    if _, cErr := ws.weighbridgeEntryRepo.Create(ctx, tx, []*types.WeighbridgeEntry{entry}); cErr != nil {
      ws.log.Warn("Failed to open weighbridge entry, Cannot proceed further. Returning error.", "error", cErr)
      return nil, fmt.Errorf("Failed to open weighbridge entry: %w", cErr)
    }
    return entry, nil
  }
  if weighbridgeID != nil {
    entry.WeighbridgeID = weighbridgeID
    if _, uErr := ws.weighbridgeEntryRepo.Update(ctx, tx, []*types.WeighbridgeEntry{entry}); uErr != nil {
      ws.log.Warn("Failed to assign weighbridge to entry, Cannot proceed further. Returning error.", "error", uErr)
      return nil, fmt.Errorf("Failed to assign weighbridge to entry: %w", uErr)
    }
  }
  return entry, nil
}

// CaptureWeight records one weighment on the open entry. Capturing the second
// weighment computes the net weight. No status transition happens here.
func (ws *weighbridgeService) CaptureWeight(ctx context.Context, truckID uuid.UUID, kind WeightKind, weightKg int) (*types.WeighbridgeEntry, error) {
  ws.log.Info("Starting Capture Weight now...", "truckID", truckID, "kind", kind, "weightKg", weightKg)
  if kind != WeightKindGross && kind != WeightKindTare {
    return nil, fmt.Errorf("weight kind must be 'gross' or 'tare'")
  }
  if weightKg <= 0 {
    return nil, fmt.Errorf("weight must be positive")
  }
  var captured *types.WeighbridgeEntry
  err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    entry, eErr := ws.weighbridgeEntryRepo.GetOpenByTruckID(ctx, tx, truckID)
    if eErr != nil {
      ws.log.Warn("Failed to fetch open weighbridge entry, Cannot proceed further. Returning error.", "error", eErr)
      return fmt.Errorf("Failed to fetch open weighbridge entry: %w", eErr)
    }
    if entry.Status != lifecycle.StatusAtWeighbridge {
      ws.log.Warn("Truck is not at the weighbridge, Cannot proceed further.", "truckID", truckID, "status", entry.Status)
      return fmt.Errorf("truck must be at the weighbridge to weigh (status is '%s')", entry.Status)
    }

    now := time.Now()
    var actorID *uuid.UUID
    if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
      uid := rd.UserID
      actorID = &uid
    }
    switch kind {
    case WeightKindGross:
      if entry.GrossWeightKg != nil {
        return fmt.Errorf("gross weight has already been captured")
      }
      entry.GrossWeightKg = &weightKg
      entry.GrossCapturedAt = &now
    case WeightKindTare:
      if entry.TareWeightKg != nil {
        return fmt.Errorf("tare weight has already been captured")
      }
      entry.TareWeightKg = &weightKg
      entry.TareCapturedAt = &now
    }
    entry.OperatorID = actorID
    if entry.GrossWeightKg != nil && entry.TareWeightKg != nil {
      if *entry.GrossWeightKg < *entry.TareWeightKg {
        ws.log.Warn("Gross weight is below tare weight, Cannot proceed further.", "gross", *entry.GrossWeightKg, "tare", *entry.TareWeightKg)
        return fmt.Errorf("gross weight (%d kg) cannot be below tare weight (%d kg)", *entry.GrossWeightKg, *entry.TareWeightKg)
      }
      net := *entry.GrossWeightKg - *entry.TareWeightKg
      entry.NetWeightKg = &net
    }
    if _, uErr := ws.weighbridgeEntryRepo.Update(ctx, tx, []*types.WeighbridgeEntry{entry}); uErr != nil {
      ws.log.Warn("Failed to update weighbridge entry, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to update weighbridge entry: %w", uErr)
    }

    audit := &types.AuditRecord{
      Domain:        types.AuditDomainWeighbridge,
      TruckID:       &entry.TruckID,
      VehicleNumber: entry.VehicleNumber,
      Action:        fmt.Sprintf("%s_weight_captured", kind),
      FromStatus:    entry.Status,
      ToStatus:      entry.Status,
      ActorID:       actorID,
      Details:       fmt.Sprintf("%d kg", weightKg),
    }
    if _, aErr := ws.auditRepo.Create(ctx, tx, []*types.AuditRecord{audit}); aErr != nil {
      ws.log.Warn("Failed to create audit record for weighment, Cannot proceed further. Returning error.", "error", aErr)
      return fmt.Errorf("Failed to create audit record: %w", aErr)
    }
    captured = entry
    return nil
  })
  if err != nil {
    return nil, err
  }
  if ed := eventdata.GetEventData(ctx); ed != nil {
    ed.AppendMessage(socket.Message{Channel: socket.ChannelWeighbridge, Payload: captured})
  }
  ws.log.Info("Successfully captured weight :)", "truckID", truckID, "kind", kind)
  return captured, nil
}

// ReleaseFromWeighbridge moves the truck onward. The lifecycle table limits
// the target to at_parking, at_dock or exit_ready.
func (ws *weighbridgeService) ReleaseFromWeighbridge(ctx context.Context, truckID uuid.UUID, to lifecycle.Status) (*types.Truck, error) {
  return ws.yardService.UpdateTruckLocationAndStatus(ctx, truckID, to, types.AuditDomainWeighbridge, "released_from_weighbridge", fmt.Sprintf("released to %s", to))
}
