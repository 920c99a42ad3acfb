package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

// ShiftHandover is the end-of-shift note an outgoing operator leaves for the
// incoming one. OpenItems holds a free-form JSON checklist (pending trucks,
// unresolved weighbridge entries, equipment notes).
type ShiftHandover struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  OutgoingUserID      uuid.UUID                 `gorm:"index;not null" json:"outgoingUserID"`
  OutgoingUser        *User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:OutgoingUserID;references:ID" json:"outgoingUser,omitempty"`
  IncomingUserID      *uuid.UUID                `gorm:"index" json:"incomingUserID,omitempty"`
  IncomingUser        *User                     `gorm:"constraint:OnDelete:SET NULL;foreignKey:IncomingUserID;references:ID" json:"incomingUser,omitempty"`

  ShiftName           string                    `gorm:"not null;column:shift_name" json:"shiftName"`
  Notes               string                    `gorm:"column:notes" json:"notes"`
  OpenItems           datatypes.JSON            `gorm:"column:open_items" json:"openItems,omitempty"`
  Acknowledged        bool                      `gorm:"not null;default:false;column:acknowledged" json:"acknowledged"`
  AcknowledgedAt      *time.Time                `gorm:"column:acknowledged_at" json:"acknowledgedAt,omitempty"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (ShiftHandover) TableName() string {
  return "shift_handover"
}
