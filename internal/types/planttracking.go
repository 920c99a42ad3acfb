package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
)

// PlantTrackingRecord follows one truck visit through every yard milestone.
// Opened at gate verification, closed at gate-out. Status and CurrentLocation
// are denormalized mirrors of the truck, maintained by the yard service.
type PlantTrackingRecord struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  TruckID             uuid.UUID                 `gorm:"index;not null" json:"truckID"`
  Truck               *Truck                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TruckID;references:ID" json:"truck,omitempty"`

  VehicleNumber       string                    `gorm:"index;not null;column:vehicle_number" json:"vehicleNumber"`
  Status              lifecycle.Status          `gorm:"type:varchar(30);index;not null" json:"status"`
  CurrentLocation     string                    `gorm:"column:current_location" json:"currentLocation"`

  GateInAt            *time.Time                `gorm:"column:gate_in_at" json:"gateInAt,omitempty"`
  ParkingInAt         *time.Time                `gorm:"column:parking_in_at" json:"parkingInAt,omitempty"`
  WeighbridgeInAt     *time.Time                `gorm:"column:weighbridge_in_at" json:"weighbridgeInAt,omitempty"`
  DockInAt            *time.Time                `gorm:"column:dock_in_at" json:"dockInAt,omitempty"`
  OperationStartAt    *time.Time                `gorm:"column:operation_start_at" json:"operationStartAt,omitempty"`
  OperationEndAt      *time.Time                `gorm:"column:operation_end_at" json:"operationEndAt,omitempty"`
  ExitAt              *time.Time                `gorm:"column:exit_at" json:"exitAt,omitempty"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (PlantTrackingRecord) TableName() string {
  return "plant_tracking_record"
}
