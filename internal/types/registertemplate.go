package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

// RegisterTemplate defines a custom site register (visitor book, material
// gate pass, etc). Fields holds the JSON column definitions the UI renders.
type RegisterTemplate struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name                string                    `gorm:"uniqueIndex;not null;column:name" json:"name"`
  RegisterType        string                    `gorm:"column:register_type" json:"registerType"`
  Fields              datatypes.JSON            `gorm:"column:fields" json:"fields"`
  CreatedBy           *uuid.UUID                `gorm:"column:created_by" json:"createdBy,omitempty"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (RegisterTemplate) TableName() string {
  return "register_template"
}

// RegisterEntry is one row recorded against a template.
type RegisterEntry struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  TemplateID          uuid.UUID                 `gorm:"index;not null" json:"templateID"`
  Template            *RegisterTemplate         `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"template,omitempty"`

  Values              datatypes.JSON            `gorm:"column:values" json:"values"`
  RecordedBy          *uuid.UUID                `gorm:"column:recorded_by" json:"recordedBy,omitempty"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (RegisterEntry) TableName() string {
  return "register_entry"
}
