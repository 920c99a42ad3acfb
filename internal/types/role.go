package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

type Role struct {
  gorm.Model
  ID                  uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Users               []*User                   `gorm:"foreignKey:RoleID" json:"users,omitempty"`
  Permissions         []*Permission             `gorm:"many2many:permissions_roles;" json:"permissions,omitempty"`

  Name                string                    `gorm:"uniqueIndex;not null;column:name" json:"name"`
  Description         *string                   `gorm:"column:description" json:"description,omitempty"`
  AvatarBucketKey     string                    `gorm:"column:avatar_bucket_key" json:"avatarBucketKey"`
  AvatarURL           string                    `gorm:"column:avatar_url" json:"avatarURL"`

  CreatedAt           time.Time                 `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Role) TableName() string {
  return "role"
}

// PermissionTypes flattens the association into the page-identifier strings
// the access gate consumes.
func (r *Role) PermissionTypes() []string {
  var out []string
  for _, p := range r.Permissions {
    if p != nil {
      out = append(out, p.PermissionType)
    }
  }
  return out
}
