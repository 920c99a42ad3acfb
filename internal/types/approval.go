package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

type ApprovalStatus string

const (
  ApprovalStatusPending  ApprovalStatus = "pending"
  ApprovalStatusApproved ApprovalStatus = "approved"
  ApprovalStatusRejected ApprovalStatus = "rejected"
)

type ApprovalRequestType string

const (
  ApprovalRequestTypeSchedule ApprovalRequestType = "truck_schedule"
)

// ApprovalRequest tracks a pending decision on a truck schedule. Approving or
// rejecting flips the truck out of pending_approval in the same transaction
// that records the decision.
type ApprovalRequest struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  TruckID             uuid.UUID                 `gorm:"index;not null" json:"truckID"`
  Truck               *Truck                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TruckID;references:ID" json:"truck,omitempty"`
  RequestedByID       *uuid.UUID                `gorm:"index" json:"requestedByID,omitempty"`
  RequestedBy         *User                     `gorm:"constraint:OnDelete:SET NULL;foreignKey:RequestedByID;references:ID" json:"requestedBy,omitempty"`

  RequestType         ApprovalRequestType       `gorm:"type:varchar(50);not null;column:request_type" json:"requestType"`
  Status              ApprovalStatus            `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`
  Reason              string                    `gorm:"column:reason" json:"reason"`
  DecidedByID         *uuid.UUID                `gorm:"column:decided_by_id" json:"decidedByID,omitempty"`
  DecidedAt           *time.Time                `gorm:"column:decided_at" json:"decidedAt,omitempty"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (ApprovalRequest) TableName() string {
  return "approval_request"
}
