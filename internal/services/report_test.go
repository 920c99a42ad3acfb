package services

import (
  "testing"
  "time"

  "github.com/google/uuid"
)

func TestFormatWeight(t *testing.T) {
  if got := formatWeight(nil); got != "" {
    t.Errorf("formatWeight(nil) = %q, want empty", got)
  }
  kg := 28450
  if got := formatWeight(&kg); got != "28450" {
    t.Errorf("formatWeight(28450) = %q, want \"28450\"", got)
  }
}

func TestFormatExportTime(t *testing.T) {
  if got := formatExportTime(nil); got != "" {
    t.Errorf("formatExportTime(nil) = %q, want empty", got)
  }
  at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
  if got := formatExportTime(&at); got != "2026-03-14 09:26:53" {
    t.Errorf("formatExportTime = %q", got)
  }
}

func TestFormatExportID(t *testing.T) {
  if got := formatExportID(nil); got != "" {
    t.Errorf("formatExportID(nil) = %q, want empty", got)
  }
  id := uuid.MustParse("9e1a7c52-0000-4000-8000-000000000001")
  if got := formatExportID(&id); got != id.String() {
    t.Errorf("formatExportID = %q, want %q", got, id.String())
  }
}
