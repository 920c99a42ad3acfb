package errordata

import (
  "context"
  "testing"
)

func TestErrorDataRoundTrip(t *testing.T) {
  ctx := WithErrorData(context.Background())
  ed := GetErrorData(ctx)
  if ed == nil {
    t.Fatal("GetErrorData returned nil on a seeded context")
  }
  if ed.HasMessage() {
    t.Error("fresh error data should hold no message")
  }
  ed.SetMessage("Truck 'KA01AB1234' cannot move from 'scheduled' to 'at_dock'")
  if !GetErrorData(ctx).HasMessage() {
    t.Error("message set through one handle must be visible through another")
  }
}

func TestGetErrorDataOnBareContext(t *testing.T) {
  if GetErrorData(context.Background()) != nil {
    t.Error("unseeded context must yield nil error data")
  }
}
