package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type RoleRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, roles []*types.Role) ([]*types.Role, error)

  // READ
  GetByIDs(ctx context.Context, tx *gorm.DB, roleIDs []uuid.UUID) ([]*types.Role, error)
  GetByNames(ctx context.Context, tx *gorm.DB, roleNames []string) ([]*types.Role, error)
  NameExists(ctx context.Context, tx *gorm.DB, roleName string) (bool, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Role, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, roles []*types.Role) ([]*types.Role, error)

  // ASSOCIATIONS
  AssociatePermissions(ctx context.Context, tx *gorm.DB, role *types.Role, permissions []*types.Permission) error
  ReplacePermissions(ctx context.Context, tx *gorm.DB, role *types.Role, permissions []*types.Permission) error

  // FULL (HARD) DELETE
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, roleIDs []uuid.UUID) error
}

type roleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
  repoLog := baseLog.With("repo", "RoleRepo")
  return &roleRepo{db: db, log: repoLog}
}

func (rr *roleRepo) Create(ctx context.Context, tx *gorm.DB, roles []*types.Role) ([]*types.Role, error) {
  rr.log.Info("Starting Create Roles now...")
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if len(roles) == 0 {
    rr.log.Debug("Roles array is empty, returning empty slice")
    return []*types.Role{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&roles).Error; err != nil {
    rr.log.Error("Failed to create roles", "error", err)
    return nil, err
  }
  rr.log.Info("Successfully created roles", "count", len(roles))
  return roles, nil
}

func (rr *roleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, roleIDs []uuid.UUID) ([]*types.Role, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.Role
  if len(roleIDs) == 0 {
    rr.log.Debug("No roleIDs provided, returning empty slice")
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Preload("Permissions").
    Where("id IN ?", roleIDs).
    Find(&results).Error; err != nil {
    rr.log.Error("Failed to fetch roles by IDs", "error", err)
    return nil, err
  }
  rr.log.Debug("Fetched roles by IDs", "count", len(results))
  return results, nil
}

func (rr *roleRepo) GetByNames(ctx context.Context, tx *gorm.DB, roleNames []string) ([]*types.Role, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.Role
  if len(roleNames) == 0 {
    rr.log.Debug("No roleNames provided, returning empty slice")
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Preload("Permissions").
    Where("name IN ?", roleNames).
    Find(&results).Error; err != nil {
    rr.log.Error("Failed to fetch roles by names", "error", err)
    return nil, err
  }
  return results, nil
}

func (rr *roleRepo) NameExists(ctx context.Context, tx *gorm.DB, roleName string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Role{}).
    Where("name = ?", roleName).
    Count(&count).Error; err != nil {
    rr.log.Error("Failed to count roles by name", "error", err)
    return false, err
  }
  return count > 0, nil
}

func (rr *roleRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Role, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.Role
  if err := transaction.WithContext(ctx).
    Preload("Permissions").
    Order("name ASC").
    Find(&results).Error; err != nil {
    rr.log.Error("Failed to fetch all roles", "error", err)
    return nil, err
  }
  rr.log.Debug("Fetched all roles", "count", len(results))
  return results, nil
}

func (rr *roleRepo) Update(ctx context.Context, tx *gorm.DB, roles []*types.Role) ([]*types.Role, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if len(roles) == 0 {
    rr.log.Debug("No roles provided, returning empty slice")
    return []*types.Role{}, nil
  }
  for _, r := range roles {
    if err := transaction.WithContext(ctx).Save(r).Error; err != nil {
      rr.log.Error("Failed to update role", "roleID", r.ID, "error", err)
      return nil, err
    }
  }
  rr.log.Info("Successfully updated roles", "count", len(roles))
  return roles, nil
}

func (rr *roleRepo) AssociatePermissions(ctx context.Context, tx *gorm.DB, role *types.Role, permissions []*types.Permission) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if role == nil || len(permissions) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Model(role).
    Association("Permissions").
    Append(permissions); err != nil {
    rr.log.Error("Failed to associate permissions with role", "roleID", role.ID, "error", err)
    return err
  }
  rr.log.Debug("Associated permissions with role", "roleID", role.ID, "count", len(permissions))
  return nil
}

func (rr *roleRepo) ReplacePermissions(ctx context.Context, tx *gorm.DB, role *types.Role, permissions []*types.Permission) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if role == nil {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Model(role).
    Association("Permissions").
    Replace(permissions); err != nil {
    rr.log.Error("Failed to replace permissions on role", "roleID", role.ID, "error", err)
    return err
  }
  rr.log.Debug("Replaced permissions on role", "roleID", role.ID, "count", len(permissions))
  return nil
}

func (rr *roleRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, roleIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if len(roleIDs) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("id IN ?", roleIDs).
    Delete(&types.Role{}).Error; err != nil {
    rr.log.Error("Failed to hard delete roles", "error", err)
    return err
  }
  return nil
}
