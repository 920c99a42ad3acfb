package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

type User struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  RoleID              *uuid.UUID                `gorm:"index" json:"roleID,omitempty"`
  Role                *Role                     `gorm:"constraint:OnDelete:SET NULL;foreignKey:RoleID;references:ID" json:"role,omitempty"`

  Email               string                    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  PhoneNumber         *string                   `gorm:"column:phone_number" json:"phoneNumber,omitempty"`
  Password            string                    `gorm:"not null;column:password" json:"-"`
  FirstName           string                    `gorm:"not null;column:first_name" json:"firstName"`
  LastName            string                    `gorm:"not null;column:last_name" json:"lastName"`
  AvatarBucketKey     string                    `gorm:"column:avatar_bucket_key" json:"avatarBucketKey"`
  AvatarURL           string                    `gorm:"column:avatar_url" json:"avatarURL"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (User) TableName() string {
  return "user"
}
