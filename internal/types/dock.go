package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

// Dock is master data for one loading/unloading bay.
type Dock struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name                string                    `gorm:"uniqueIndex;not null;column:name" json:"name"`
  DockType            string                    `gorm:"column:dock_type" json:"dockType"`
  IsActive            bool                      `gorm:"not null;default:true;column:is_active" json:"isActive"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Dock) TableName() string {
  return "dock"
}

type DockOperationStatus string

const (
  DockOperationPending    DockOperationStatus = "pending"
  DockOperationInProgress DockOperationStatus = "in_progress"
  DockOperationCompleted  DockOperationStatus = "completed"
)

// DockOperation records one loading or unloading session at a dock.
type DockOperation struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  TruckID             uuid.UUID                 `gorm:"index;not null" json:"truckID"`
  Truck               *Truck                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TruckID;references:ID" json:"truck,omitempty"`
  DockID              uuid.UUID                 `gorm:"index;not null" json:"dockID"`
  Dock                *Dock                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:DockID;references:ID" json:"dock,omitempty"`

  VehicleNumber       string                    `gorm:"index;not null;column:vehicle_number" json:"vehicleNumber"`
  OperationType       CargoDirection            `gorm:"type:varchar(20);not null;column:operation_type" json:"operationType"`
  Status              DockOperationStatus       `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`
  StartedAt           *time.Time                `gorm:"column:started_at" json:"startedAt,omitempty"`
  CompletedAt         *time.Time                `gorm:"column:completed_at" json:"completedAt,omitempty"`
  OperatorID          *uuid.UUID                `gorm:"column:operator_id" json:"operatorID,omitempty"`
  Notes               string                    `gorm:"column:notes" json:"notes"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (DockOperation) TableName() string {
  return "dock_operation"
}
