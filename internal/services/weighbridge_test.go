package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type stubEntryRepo struct {
  repos.WeighbridgeEntryRepo
  open    *types.WeighbridgeEntry
  created []*types.WeighbridgeEntry
  updated []*types.WeighbridgeEntry
}

func (s *stubEntryRepo) GetOpenByTruckID(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) (*types.WeighbridgeEntry, error) {
  if s.open == nil {
    return nil, gorm.ErrRecordNotFound
  }
  return s.open, nil
}

func (s *stubEntryRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.WeighbridgeEntry) ([]*types.WeighbridgeEntry, error) {
  s.created = append(s.created, entries...)
  return entries, nil
}

func (s *stubEntryRepo) Update(ctx context.Context, tx *gorm.DB, entries []*types.WeighbridgeEntry) ([]*types.WeighbridgeEntry, error) {
  s.updated = append(s.updated, entries...)
  return entries, nil
}

func newWeighbridgeServiceForTest(t *testing.T, entryRepo *stubEntryRepo) *weighbridgeService {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("failed to build logger: %v", err)
  }
  return &weighbridgeService{log: log, weighbridgeEntryRepo: entryRepo}
}

func TestAttachEntryOpensEntryOnFirstArrival(t *testing.T) {
  entryRepo := &stubEntryRepo{}
  ws := newWeighbridgeServiceForTest(t, entryRepo)
  wbID := uuid.New()
  truck := &types.Truck{
    ID:              uuid.New(),
    VehicleNumber:   "KA01AB1234",
    Status:          lifecycle.StatusAtWeighbridge,
    CurrentLocation: lifecycle.LocationFor(lifecycle.StatusAtWeighbridge),
  }

  entry, err := ws.attachEntry(context.Background(), nil, truck, &wbID)
  if err != nil {
    t.Fatalf("attachEntry returned error: %v", err)
  }
  if len(entryRepo.created) != 1 {
    t.Fatalf("created entries = %d, want 1", len(entryRepo.created))
  }
  if entry.TruckID != truck.ID || entry.VehicleNumber != truck.VehicleNumber {
    t.Error("entry does not carry the truck's identity")
  }
  if entry.Status != lifecycle.StatusAtWeighbridge {
    t.Errorf("entry status = %q, want %q", entry.Status, lifecycle.StatusAtWeighbridge)
  }
  if entry.WeighbridgeID == nil || *entry.WeighbridgeID != wbID {
    t.Error("entry is not pinned to the chosen weighbridge")
  }
}

func TestAttachEntryReusesOpenEntryOnReturn(t *testing.T) {
  truck := &types.Truck{ID: uuid.New(), VehicleNumber: "KA01AB1234"}
  tare := 12400
  existing := &types.WeighbridgeEntry{
    TruckID:       truck.ID,
    VehicleNumber: truck.VehicleNumber,
    TareWeightKg:  &tare,
  }
  entryRepo := &stubEntryRepo{open: existing}
  ws := newWeighbridgeServiceForTest(t, entryRepo)
  wbID := uuid.New()

  entry, err := ws.attachEntry(context.Background(), nil, truck, &wbID)
  if err != nil {
    t.Fatalf("attachEntry returned error: %v", err)
  }
  if entry != existing {
    t.Fatal("returning truck should reuse its open entry")
  }
  if len(entryRepo.created) != 0 {
    t.Errorf("created entries = %d, want 0 on reuse", len(entryRepo.created))
  }
  if entry.TareWeightKg == nil || *entry.TareWeightKg != tare {
    t.Error("reuse must not touch the captured weights")
  }
  if entry.WeighbridgeID == nil || *entry.WeighbridgeID != wbID {
    t.Error("reuse should pin the newly chosen weighbridge")
  }
}

func TestAttachEntryWithoutWeighbridgeLeavesEntryUnpinned(t *testing.T) {
  entryRepo := &stubEntryRepo{}
  ws := newWeighbridgeServiceForTest(t, entryRepo)
  truck := &types.Truck{ID: uuid.New(), VehicleNumber: "KA01AB1234", Status: lifecycle.StatusAtWeighbridge}

  entry, err := ws.attachEntry(context.Background(), nil, truck, nil)
  if err != nil {
    t.Fatalf("attachEntry returned error: %v", err)
  }
  if entry.WeighbridgeID != nil {
    t.Error("entry should stay unpinned when no weighbridge was chosen")
  }
  if len(entryRepo.updated) != 0 {
    t.Errorf("updated entries = %d, want 0", len(entryRepo.updated))
  }
}
