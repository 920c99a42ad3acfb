package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
)

// CargoDirection says whether a scheduled truck arrives to load or to unload.
type CargoDirection string

const (
  CargoDirectionLoading   CargoDirection = "loading"
  CargoDirectionUnloading CargoDirection = "unloading"
)

// Truck is the authoritative record for one scheduled vehicle visit. Status
// and CurrentLocation are only ever written through the yard service, which
// also keeps the open weighbridge entry and plant tracking record in step.
type Truck struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  DockID              *uuid.UUID                `gorm:"index" json:"dockID,omitempty"`
  Dock                *Dock                     `gorm:"constraint:OnDelete:SET NULL;foreignKey:DockID;references:ID" json:"dock,omitempty"`

  VehicleNumber       string                    `gorm:"index;not null;column:vehicle_number" json:"vehicleNumber"`
  Transporter         string                    `gorm:"column:transporter" json:"transporter"`
  DriverName          string                    `gorm:"column:driver_name" json:"driverName"`
  DriverPhone         *string                   `gorm:"column:driver_phone" json:"driverPhone,omitempty"`
  LicenseNumber       string                    `gorm:"column:license_number" json:"licenseNumber"`
  CargoDirection      CargoDirection            `gorm:"type:varchar(20);not null" json:"cargoDirection"`
  CargoDescription    string                    `gorm:"column:cargo_description" json:"cargoDescription"`

  ScheduledAt         time.Time                 `gorm:"index;not null;column:scheduled_at" json:"scheduledAt"`
  Status              lifecycle.Status          `gorm:"type:varchar(30);index;not null" json:"status"`
  CurrentLocation     string                    `gorm:"column:current_location" json:"currentLocation"`
  LocationUpdatedAt   *time.Time                `gorm:"column:location_updated_at" json:"locationUpdatedAt,omitempty"`
  LocationUpdatedBy   *uuid.UUID                `gorm:"column:location_updated_by" json:"locationUpdatedBy,omitempty"`

  GateInAt            *time.Time                `gorm:"column:gate_in_at" json:"gateInAt,omitempty"`
  GateOutAt           *time.Time                `gorm:"column:gate_out_at" json:"gateOutAt,omitempty"`
  VerifiedBy          *uuid.UUID                `gorm:"column:verified_by" json:"verifiedBy,omitempty"`

  CreatedBy           *uuid.UUID                `gorm:"column:created_by" json:"createdBy,omitempty"`
  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Truck) TableName() string {
  return "truck"
}
