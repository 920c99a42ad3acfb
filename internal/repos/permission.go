package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type PermissionRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, permissions []*types.Permission) ([]*types.Permission, error)

  // READ
  GetByPermissionTypes(ctx context.Context, tx *gorm.DB, permissionTypes []string) ([]*types.Permission, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Permission, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, permissions []*types.Permission) ([]*types.Permission, error)

  // FULL (HARD) DELETE
  FullDeleteByPermissionTypes(ctx context.Context, tx *gorm.DB, permissionTypes []string) error
}

type permissionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPermissionRepo(db *gorm.DB, baseLog *logger.Logger) PermissionRepo {
  repoLog := baseLog.With("repo", "PermissionRepo")
  return &permissionRepo{db: db, log: repoLog}
}

func (pr *permissionRepo) Create(ctx context.Context, tx *gorm.DB, permissions []*types.Permission) ([]*types.Permission, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(permissions) == 0 {
    pr.log.Debug("Permissions array is empty, returning empty slice")
    return []*types.Permission{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&permissions).Error; err != nil {
    pr.log.Error("Failed to create permissions", "error", err)
    return nil, err
  }
  pr.log.Info("Successfully created permissions", "count", len(permissions))
  return permissions, nil
}

func (pr *permissionRepo) GetByPermissionTypes(ctx context.Context, tx *gorm.DB, permissionTypes []string) ([]*types.Permission, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Permission
  if len(permissionTypes) == 0 {
    pr.log.Debug("No permissionTypes provided, returning empty slice")
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("permission_type IN ?", permissionTypes).
    Find(&results).Error; err != nil {
    pr.log.Error("Failed to fetch permissions by types", "error", err)
    return nil, err
  }
  return results, nil
}

func (pr *permissionRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Permission, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Permission
  if err := transaction.WithContext(ctx).
    Order("category ASC, permission_type ASC").
    Find(&results).Error; err != nil {
    pr.log.Error("Failed to fetch all permissions", "error", err)
    return nil, err
  }
  pr.log.Debug("Fetched all permissions", "count", len(results))
  return results, nil
}

func (pr *permissionRepo) Update(ctx context.Context, tx *gorm.DB, permissions []*types.Permission) ([]*types.Permission, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(permissions) == 0 {
    return []*types.Permission{}, nil
  }
  for _, p := range permissions {
    if err := transaction.WithContext(ctx).Save(p).Error; err != nil {
      pr.log.Error("Failed to update permission", "permissionType", p.PermissionType, "error", err)
      return nil, err
    }
  }
  return permissions, nil
}

func (pr *permissionRepo) FullDeleteByPermissionTypes(ctx context.Context, tx *gorm.DB, permissionTypes []string) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(permissionTypes) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("permission_type IN ?", permissionTypes).
    Delete(&types.Permission{}).Error; err != nil {
    pr.log.Error("Failed to hard delete permissions", "error", err)
    return err
  }
  return nil
}
