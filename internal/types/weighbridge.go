package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
)

// Weighbridge is master data for one physical weighbridge.
type Weighbridge struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name                string                    `gorm:"uniqueIndex;not null;column:name" json:"name"`
  CapacityKg          int                       `gorm:"column:capacity_kg" json:"capacityKg"`
  IsActive            bool                      `gorm:"not null;default:true;column:is_active" json:"isActive"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Weighbridge) TableName() string {
  return "weighbridge"
}

// WeighbridgeEntry mirrors the truck while it is inside the yard and records
// the captured weights. VehicleNumber, Status and CurrentLocation are
// denormalized copies maintained by the yard service; an entry is "open" while
// its status is non-terminal.
type WeighbridgeEntry struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  TruckID             uuid.UUID                 `gorm:"index;not null" json:"truckID"`
  Truck               *Truck                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TruckID;references:ID" json:"truck,omitempty"`
  WeighbridgeID       *uuid.UUID                `gorm:"index" json:"weighbridgeID,omitempty"`
  Weighbridge         *Weighbridge              `gorm:"constraint:OnDelete:SET NULL;foreignKey:WeighbridgeID;references:ID" json:"weighbridge,omitempty"`

  VehicleNumber       string                    `gorm:"index;not null;column:vehicle_number" json:"vehicleNumber"`
  Status              lifecycle.Status          `gorm:"type:varchar(30);index;not null" json:"status"`
  CurrentLocation     string                    `gorm:"column:current_location" json:"currentLocation"`

  GrossWeightKg       *int                      `gorm:"column:gross_weight_kg" json:"grossWeightKg,omitempty"`
  TareWeightKg        *int                      `gorm:"column:tare_weight_kg" json:"tareWeightKg,omitempty"`
  NetWeightKg         *int                      `gorm:"column:net_weight_kg" json:"netWeightKg,omitempty"`
  GrossCapturedAt     *time.Time                `gorm:"column:gross_captured_at" json:"grossCapturedAt,omitempty"`
  TareCapturedAt      *time.Time                `gorm:"column:tare_captured_at" json:"tareCapturedAt,omitempty"`
  OperatorID          *uuid.UUID                `gorm:"column:operator_id" json:"operatorID,omitempty"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (WeighbridgeEntry) TableName() string {
  return "weighbridge_entry"
}
