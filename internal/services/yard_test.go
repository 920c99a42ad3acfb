package services

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type fakeTruckRepo struct {
  repos.TruckRepo
  truck   *types.Truck
  updated bool
}

func (f *fakeTruckRepo) GetByIDs(ctx context.Context, tx *gorm.DB, truckIDs []uuid.UUID) ([]*types.Truck, error) {
  return []*types.Truck{f.truck}, nil
}

func (f *fakeTruckRepo) Update(ctx context.Context, tx *gorm.DB, trucks []*types.Truck) ([]*types.Truck, error) {
  f.updated = true
  return trucks, nil
}

type fakeWeighbridgeEntryRepo struct {
  repos.WeighbridgeEntryRepo
}

func (f *fakeWeighbridgeEntryRepo) GetOpenByTruckID(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) (*types.WeighbridgeEntry, error) {
  return nil, gorm.ErrRecordNotFound
}

type fakePlantTrackingRepo struct {
  repos.PlantTrackingRepo
}

func (f *fakePlantTrackingRepo) GetOpenByTruckID(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) (*types.PlantTrackingRecord, error) {
  return nil, gorm.ErrRecordNotFound
}

type fakeAuditRepo struct {
  repos.AuditRepo
  records []*types.AuditRecord
}

func (f *fakeAuditRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.AuditRecord) ([]*types.AuditRecord, error) {
  f.records = append(f.records, records...)
  return records, nil
}

// A truck with no open weighbridge entry or tracking record still transitions
// cleanly: the not-found mirror lookups are part of the normal path, not
// failures.
func TestApplyTransitionToleratesMissingMirrors(t *testing.T) {
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("failed to build logger: %v", err)
  }
  truck := &types.Truck{
    ID:            uuid.New(),
    VehicleNumber: "KA01AB1234",
    Status:        lifecycle.StatusExitReady,
  }
  truckRepo := &fakeTruckRepo{truck: truck}
  auditRepo := &fakeAuditRepo{}
  ys := &yardService{
    log:                  log,
    truckRepo:            truckRepo,
    weighbridgeEntryRepo: &fakeWeighbridgeEntryRepo{},
    plantTrackingRepo:    &fakePlantTrackingRepo{},
    auditRepo:            auditRepo,
  }

  updated, err := ys.ApplyTransition(context.Background(), nil, truck.ID, lifecycle.StatusExited, types.AuditDomainGateGuard, "gate_out", "")
  if err != nil {
    t.Fatalf("ApplyTransition with no open mirrors returned error: %v", err)
  }
  if updated.Status != lifecycle.StatusExited {
    t.Errorf("truck status = %q, want %q", updated.Status, lifecycle.StatusExited)
  }
  if !truckRepo.updated {
    t.Error("truck update never reached the repo")
  }
  if len(auditRepo.records) != 1 {
    t.Fatalf("audit records = %d, want 1", len(auditRepo.records))
  }
  if auditRepo.records[0].FromStatus != lifecycle.StatusExitReady || auditRepo.records[0].ToStatus != lifecycle.StatusExited {
    t.Errorf("audit edge = %q -> %q", auditRepo.records[0].FromStatus, auditRepo.records[0].ToStatus)
  }
}

func TestMirrorTrackingRecordCopiesTruckFields(t *testing.T) {
  now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
  truck := &types.Truck{
    VehicleNumber:   "KA01AB1234",
    Status:          lifecycle.StatusAtWeighbridge,
    CurrentLocation: lifecycle.LocationFor(lifecycle.StatusAtWeighbridge),
  }
  record := &types.PlantTrackingRecord{VehicleNumber: truck.VehicleNumber}

  mirrorTrackingRecord(record, truck, lifecycle.StatusAtWeighbridge, now)

  if record.Status != truck.Status {
    t.Errorf("record status = %q, want %q", record.Status, truck.Status)
  }
  if record.CurrentLocation != truck.CurrentLocation {
    t.Errorf("record location = %q, want %q", record.CurrentLocation, truck.CurrentLocation)
  }
  if record.WeighbridgeInAt == nil || !record.WeighbridgeInAt.Equal(now) {
    t.Errorf("weighbridge_in_at = %v, want %v", record.WeighbridgeInAt, now)
  }
  if record.ParkingInAt != nil || record.DockInAt != nil || record.ExitAt != nil {
    t.Error("unrelated milestones should stay unset")
  }
}

func TestMirrorTrackingRecordKeepsFirstMilestone(t *testing.T) {
  first := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
  later := first.Add(2 * time.Hour)
  truck := &types.Truck{
    CurrentLocation: lifecycle.LocationFor(lifecycle.StatusAtParking),
  }
  record := &types.PlantTrackingRecord{ParkingInAt: &first}

  mirrorTrackingRecord(record, truck, lifecycle.StatusAtParking, later)

  if !record.ParkingInAt.Equal(first) {
    t.Errorf("parking_in_at = %v, want first visit %v preserved", record.ParkingInAt, first)
  }
}

func TestMirrorTrackingRecordStampsOperationWindow(t *testing.T) {
  start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
  end := start.Add(45 * time.Minute)
  truck := &types.Truck{}

  record := &types.PlantTrackingRecord{}
  mirrorTrackingRecord(record, truck, lifecycle.StatusLoading, start)
  mirrorTrackingRecord(record, truck, lifecycle.StatusExitReady, end)

  if record.OperationStartAt == nil || !record.OperationStartAt.Equal(start) {
    t.Errorf("operation_start_at = %v, want %v", record.OperationStartAt, start)
  }
  if record.OperationEndAt == nil || !record.OperationEndAt.Equal(end) {
    t.Errorf("operation_end_at = %v, want %v", record.OperationEndAt, end)
  }
  if record.Status != lifecycle.StatusExitReady {
    t.Errorf("record status = %q, want %q", record.Status, lifecycle.StatusExitReady)
  }
}

func TestChannelForDomain(t *testing.T) {
  cases := []struct {
    domain types.AuditDomain
    want   string
  }{
    {types.AuditDomainGateGuard, socket.ChannelGate},
    {types.AuditDomainWeighbridge, socket.ChannelWeighbridge},
    {types.AuditDomainDockOperations, socket.ChannelDocks},
    {types.AuditDomainTruckScheduling, ""},
  }
  for _, c := range cases {
    if got := channelForDomain(c.domain); got != c.want {
      t.Errorf("channelForDomain(%q) = %q, want %q", c.domain, got, c.want)
    }
  }
}
