package services

import (
  "testing"

  "github.com/google/uuid"

  "github.com/yardsync-org/yardsync-backend/internal/types"
)

func testDocks() []*types.Dock {
  return []*types.Dock{
    {ID: uuid.New(), Name: "Dock A", IsActive: false},
    {ID: uuid.New(), Name: "Dock B", IsActive: true},
    {ID: uuid.New(), Name: "Dock C", IsActive: false},
  }
}

func TestApplyExclusiveActivationLeavesOneActive(t *testing.T) {
  docks := testDocks()
  target := docks[2].ID

  changed, err := applyExclusiveActivation(docks, target)
  if err != nil {
    t.Fatalf("applyExclusiveActivation returned error: %v", err)
  }

  active := 0
  for _, dock := range docks {
    if dock.IsActive {
      active++
      if dock.ID != target {
        t.Errorf("dock %q is active, only the target should be", dock.Name)
      }
    }
  }
  if active != 1 {
    t.Errorf("active docks = %d, want exactly 1", active)
  }
  if len(changed) != 2 {
    t.Errorf("changed docks = %d, want 2 (old active off, target on)", len(changed))
  }
}

func TestApplyExclusiveActivationAlreadyActiveIsNoOp(t *testing.T) {
  docks := testDocks()

  changed, err := applyExclusiveActivation(docks, docks[1].ID)
  if err != nil {
    t.Fatalf("applyExclusiveActivation returned error: %v", err)
  }
  if len(changed) != 0 {
    t.Errorf("changed docks = %d, want 0 when the target is already the sole active dock", len(changed))
  }
}

func TestApplyExclusiveActivationUnknownDock(t *testing.T) {
  docks := testDocks()
  if _, err := applyExclusiveActivation(docks, uuid.New()); err == nil {
    t.Error("expected an error for an unknown dock id")
  }
}
