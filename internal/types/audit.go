package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
)

// AuditDomain partitions audit records by the screen family that produced
// them. One table with a domain column stands in for per-domain collections.
type AuditDomain string

const (
  AuditDomainGateGuard       AuditDomain = "gate_guard"
  AuditDomainWeighbridge     AuditDomain = "weighbridge"
  AuditDomainTruckScheduling AuditDomain = "truck_scheduling"
  AuditDomainDockOperations  AuditDomain = "dock_operations"
)

// AuditRecord is an append-only log row for every status transition and
// notable operator action.
type AuditRecord struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Domain              AuditDomain               `gorm:"type:varchar(30);index;not null" json:"domain"`
  TruckID             *uuid.UUID                `gorm:"index" json:"truckID,omitempty"`
  VehicleNumber       string                    `gorm:"index;column:vehicle_number" json:"vehicleNumber"`

  Action              string                    `gorm:"not null;column:action" json:"action"`
  FromStatus          lifecycle.Status          `gorm:"type:varchar(30);column:from_status" json:"fromStatus,omitempty"`
  ToStatus            lifecycle.Status          `gorm:"type:varchar(30);column:to_status" json:"toStatus,omitempty"`
  ActorID             *uuid.UUID                `gorm:"index;column:actor_id" json:"actorID,omitempty"`
  Details             string                    `gorm:"column:details" json:"details"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
}

func (AuditRecord) TableName() string {
  return "audit_record"
}
