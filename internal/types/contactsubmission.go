package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

// ContactSubmission is a row from the public contact form.
type ContactSubmission struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name                string                    `gorm:"not null;column:name" json:"name"`
  Email               string                    `gorm:"not null;column:email" json:"email"`
  Subject             string                    `gorm:"column:subject" json:"subject"`
  Message             string                    `gorm:"not null;column:message" json:"message"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
}

func (ContactSubmission) TableName() string {
  return "contact_submission"
}
