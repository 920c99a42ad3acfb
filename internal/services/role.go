package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/access"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/normalization"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/seed"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type RoleService interface {
  GetRoles(ctx context.Context) ([]*types.Role, error)
  CreateRole(ctx context.Context, name string, description string, permissionTypes []string) (*types.Role, error)
  UpdateRole(ctx context.Context, roleID uuid.UUID, newName *string, newDescription *string) (*types.Role, error)
  ReplacePermissions(ctx context.Context, roleID uuid.UUID, permissionTypes []string) (*types.Role, error)
  DeleteRole(ctx context.Context, roleID uuid.UUID) error
}

type roleService struct {
  db             *gorm.DB
  log            *logger.Logger
  roleRepo       repos.RoleRepo
  permissionRepo repos.PermissionRepo
  userRepo       repos.UserRepo
  avatarService  AvatarService
}

func NewRoleService(
  db             *gorm.DB,
  log            *logger.Logger,
  roleRepo       repos.RoleRepo,
  permissionRepo repos.PermissionRepo,
  userRepo       repos.UserRepo,
  avatarService  AvatarService,
) RoleService {
  serviceLog := log.With("service", "RoleService")
  return &roleService{
    db:             db,
    log:            serviceLog,
    roleRepo:       roleRepo,
    permissionRepo: permissionRepo,
    userRepo:       userRepo,
    avatarService:  avatarService,
  }
}

func (rs *roleService) GetRoles(ctx context.Context) ([]*types.Role, error) {
  return rs.roleRepo.GetAll(ctx, nil)
}

// resolvePermissions maps page identifiers onto permission rows, rejecting
// unknown ones.
func (rs *roleService) resolvePermissions(ctx context.Context, tx *gorm.DB, permissionTypes []string) ([]*types.Permission, error) {
  if len(permissionTypes) == 0 {
    return nil, nil
  }
  permissions, pErr := rs.permissionRepo.GetByPermissionTypes(ctx, tx, permissionTypes)
  if pErr != nil {
    rs.log.Warn("Failed to fetch permissions, Cannot proceed further. Returning error.", "error", pErr)
    return nil, fmt.Errorf("Failed to fetch permissions: %w", pErr)
  }
  if len(permissions) != len(permissionTypes) {
    found := make(map[string]struct{}, len(permissions))
    for _, p := range permissions {
      found[p.PermissionType] = struct{}{}
    }
    for _, pt := range permissionTypes {
      if _, ok := found[pt]; !ok {
        return nil, fmt.Errorf("unknown permission '%s'", pt)
      }
    }
  }
  return permissions, nil
}

func (rs *roleService) CreateRole(ctx context.Context, name string, description string, permissionTypes []string) (*types.Role, error) {
  rs.log.Info("Starting Create Role now...", "name", name)
  name = normalization.ParseInputString(name)
  if name == "" {
    return nil, fmt.Errorf("role name cannot be empty")
  }
  var created *types.Role
  err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    //1) Unique name
    exists, eErr := rs.roleRepo.NameExists(ctx, tx, name)
    if eErr != nil {
      rs.log.Warn("Failed to check role name, Cannot proceed further. Returning error.", "error", eErr)
      return fmt.Errorf("Failed to check role name: %w", eErr)
    }
    if exists {
      return fmt.Errorf("a role named '%s' already exists", name)
    }

    //2) Resolve the requested pages
    permissions, pErr := rs.resolvePermissions(ctx, tx, permissionTypes)
    if pErr != nil {
      return pErr
    }

    //3) Create the role with its avatar
    role := &types.Role{
      ID:   uuid.New(),
      Name: name,
    }
    if description != "" {
      desc := normalization.ParseInputString(description)
      role.Description = &desc
    }
    if _, cErr := rs.roleRepo.Create(ctx, tx, []*types.Role{role}); cErr != nil {
      rs.log.Warn("Failed to create role, Cannot proceed further. Returning error.", "error", cErr)
      return fmt.Errorf("Failed to create role: %w", cErr)
    }
    withAvatar, aErr := rs.avatarService.CreateAndUploadRoleAvatar(ctx, tx, role)
    if aErr != nil {
      rs.log.Warn("Failed to create role avatar, Cannot proceed further. Returning error.", "error", aErr)
      return fmt.Errorf("Failed to create role avatar: %w", aErr)
    }
    if _, uErr := rs.roleRepo.Update(ctx, tx, []*types.Role{withAvatar}); uErr != nil {
      rs.log.Warn("Failed to save role avatar details, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to save role avatar details: %w", uErr)
    }

    //4) Attach the permissions
    if len(permissions) > 0 {
      if asErr := rs.roleRepo.AssociatePermissions(ctx, tx, withAvatar, permissions); asErr != nil {
        rs.log.Warn("Failed to associate permissions, Cannot proceed further. Returning error.", "error", asErr)
        return fmt.Errorf("Failed to associate permissions: %w", asErr)
      }
    }
    reloaded, rErr := rs.roleRepo.GetByIDs(ctx, tx, []uuid.UUID{withAvatar.ID})
    if rErr != nil || len(reloaded) == 0 {
      rs.log.Warn("Failed to reload role after create, Cannot proceed further. Returning error.", "error", rErr)
      return fmt.Errorf("Failed to reload role after create: %v", rErr)
    }
    created = reloaded[0]
    return nil
  })
  if err != nil {
    return nil, err
  }
  rs.log.Info("Successfully created role :)", "roleID", created.ID)
  return created, nil
}

func (rs *roleService) UpdateRole(ctx context.Context, roleID uuid.UUID, newName *string, newDescription *string) (*types.Role, error) {
  rs.log.Info("Starting Update Role now...", "roleID", roleID)
  if roleID == uuid.Nil {
    return nil, fmt.Errorf("invalid roleID")
  }
  var updated *types.Role
  err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    roles, rErr := rs.roleRepo.GetByIDs(ctx, tx, []uuid.UUID{roleID})
    if rErr != nil {
      rs.log.Warn("Failed to fetch role, Cannot proceed further. Returning error.", "error", rErr)
      return fmt.Errorf("Failed to fetch role: %w", rErr)
    }
    if len(roles) == 0 {
      return fmt.Errorf("No role found with id '%s'", roleID)
    }
    role := roles[0]

    if newName != nil {
      parsed := normalization.ParseInputString(*newName)
      if parsed == "" {
        return fmt.Errorf("role name cannot be empty")
      }
      if role.Name == seed.AdminRoleName && parsed != role.Name {
        rs.log.Warn("Attempt to rename the built-in admin role, Cannot proceed further.", "roleID", roleID)
        return fmt.Errorf("the '%s' role cannot be renamed", seed.AdminRoleName)
      }
      if !strings.EqualFold(parsed, role.Name) {
        exists, eErr := rs.roleRepo.NameExists(ctx, tx, parsed)
        if eErr != nil {
          rs.log.Warn("Failed to check role name, Cannot proceed further. Returning error.", "error", eErr)
          return fmt.Errorf("Failed to check role name: %w", eErr)
        }
        if exists {
          return fmt.Errorf("a role named '%s' already exists", parsed)
        }
      }
      role.Name = parsed
    }
    if newDescription != nil {
      desc := normalization.ParseInputString(*newDescription)
      role.Description = &desc
    }

    updatedSlice, uErr := rs.roleRepo.Update(ctx, tx, []*types.Role{role})
    if uErr != nil {
      rs.log.Warn("Failed to update role, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to update role: %w", uErr)
    }
    if len(updatedSlice) == 0 {
      return fmt.Errorf("No updated role returned")
    }
    updated = updatedSlice[0]
    return nil
  })
  if err != nil {
    return nil, err
  }
  rs.log.Info("Successfully updated role :)", "roleID", roleID)
  return updated, nil
}

// ReplacePermissions swaps the role's permission set wholesale. Removing the
// wildcard from the last role that carries it would lock every admin page, so
// that is refused.
func (rs *roleService) ReplacePermissions(ctx context.Context, roleID uuid.UUID, permissionTypes []string) (*types.Role, error) {
  rs.log.Info("Starting Replace Permissions now...", "roleID", roleID)
  if roleID == uuid.Nil {
    return nil, fmt.Errorf("invalid roleID")
  }
  var updated *types.Role
  err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    roles, rErr := rs.roleRepo.GetByIDs(ctx, tx, []uuid.UUID{roleID})
    if rErr != nil {
      rs.log.Warn("Failed to fetch role, Cannot proceed further. Returning error.", "error", rErr)
      return fmt.Errorf("Failed to fetch role: %w", rErr)
    }
    if len(roles) == 0 {
      return fmt.Errorf("No role found with id '%s'", roleID)
    }
    role := roles[0]

    losesWildcard := hasWildcard(role.PermissionTypes()) && !hasWildcard(permissionTypes)
    if losesWildcard {
      if gErr := rs.ensureAnotherWildcardRole(ctx, tx, role); gErr != nil {
        return gErr
      }
    }

    permissions, pErr := rs.resolvePermissions(ctx, tx, permissionTypes)
    if pErr != nil {
      return pErr
    }
    if repErr := rs.roleRepo.ReplacePermissions(ctx, tx, role, permissions); repErr != nil {
      rs.log.Warn("Failed to replace permissions, Cannot proceed further. Returning error.", "error", repErr)
      return fmt.Errorf("Failed to replace permissions: %w", repErr)
    }
    reloaded, reErr := rs.roleRepo.GetByIDs(ctx, tx, []uuid.UUID{role.ID})
    if reErr != nil || len(reloaded) == 0 {
      rs.log.Warn("Failed to reload role after permission change, Cannot proceed further. Returning error.", "error", reErr)
      return fmt.Errorf("Failed to reload role after permission change: %v", reErr)
    }
    updated = reloaded[0]
    return nil
  })
  if err != nil {
    return nil, err
  }
  rs.log.Info("Successfully replaced role permissions :)", "roleID", roleID)
  return updated, nil
}

func (rs *roleService) DeleteRole(ctx context.Context, roleID uuid.UUID) error {
  rs.log.Info("Starting Delete Role now...", "roleID", roleID)
  if roleID == uuid.Nil {
    return fmt.Errorf("invalid roleID")
  }
  err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    roles, rErr := rs.roleRepo.GetByIDs(ctx, tx, []uuid.UUID{roleID})
    if rErr != nil {
      rs.log.Warn("Failed to fetch role, Cannot proceed further. Returning error.", "error", rErr)
      return fmt.Errorf("Failed to fetch role: %w", rErr)
    }
    if len(roles) == 0 {
      return fmt.Errorf("No role found with id '%s'", roleID)
    }
    role := roles[0]
    if role.Name == seed.AdminRoleName || role.Name == seed.DefaultRoleName {
      rs.log.Warn("Attempt to delete a built-in role, Cannot proceed further.", "roleID", roleID, "name", role.Name)
      return fmt.Errorf("the built-in '%s' role cannot be deleted", role.Name)
    }

    users, uErr := rs.userRepo.GetByRoleIDs(ctx, tx, []uuid.UUID{role.ID})
    if uErr != nil {
      rs.log.Warn("Failed to check role assignment, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to check role assignment: %w", uErr)
    }
    if len(users) > 0 {
      rs.log.Warn("Role still has users assigned, Cannot proceed further.", "roleID", roleID, "count", len(users))
      return fmt.Errorf("cannot delete a role that still has %d user(s) assigned", len(users))
    }
    if hasWildcard(role.PermissionTypes()) {
      if gErr := rs.ensureAnotherWildcardRole(ctx, tx, role); gErr != nil {
        return gErr
      }
    }
    if delErr := rs.roleRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{role.ID}); delErr != nil {
      rs.log.Warn("Failed to delete role, Cannot proceed further. Returning error.", "error", delErr)
      return fmt.Errorf("Failed to delete role: %w", delErr)
    }
    return nil
  })
  if err != nil {
    return err
  }
  rs.log.Info("Successfully deleted role :)", "roleID", roleID)
  return nil
}

// ensureAnotherWildcardRole errors unless some other role still carries the
// wildcard permission.
func (rs *roleService) ensureAnotherWildcardRole(ctx context.Context, tx *gorm.DB, role *types.Role) error {
  allRoles, aErr := rs.roleRepo.GetAll(ctx, tx)
  if aErr != nil {
    rs.log.Warn("Failed to fetch roles for wildcard check, Cannot proceed further. Returning error.", "error", aErr)
    return fmt.Errorf("Failed to fetch roles for wildcard check: %w", aErr)
  }
  for _, other := range allRoles {
    if other.ID == role.ID {
      continue
    }
    if hasWildcard(other.PermissionTypes()) {
      return nil
    }
  }
  return fmt.Errorf("'%s' is the only role with access to all pages; it cannot lose that access", role.Name)
}

func hasWildcard(permissionTypes []string) bool {
  for _, pt := range permissionTypes {
    if pt == access.Wildcard {
      return true
    }
  }
  return false
}
