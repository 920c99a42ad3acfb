package permission

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/access"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

// Catalog is the full set of page permissions the app knows about. Roles
// reference these rows through the permissions_roles pivot; the sync below
// reconciles the table against this list on every boot.
func Catalog() []*types.Permission {
  return []*types.Permission{
    {PermissionType: access.PageDashboard, Name: "Dashboard", Category: "general"},
    {PermissionType: access.PageTruckScheduling, Name: "Truck Scheduling", Category: "yard"},
    {PermissionType: access.PageApprovals, Name: "Approvals", Category: "yard"},
    {PermissionType: access.PageGateGuard, Name: "Gate Guard", Category: "yard"},
    {PermissionType: access.PageWeighbridge, Name: "Weighbridge", Category: "yard"},
    {PermissionType: access.PagePlantTracking, Name: "Plant Tracking", Category: "yard"},
    {PermissionType: access.PageDockOperations, Name: "Dock Operations", Category: "yard"},
    {PermissionType: access.PageShiftHandover, Name: "Shift Handover", Category: "yard"},
    {PermissionType: access.PageMasterData, Name: "Master Data", Category: "admin"},
    {PermissionType: access.PageRegisterTemplates, Name: "Register Templates", Category: "admin"},
    {PermissionType: access.PageUserManagement, Name: "User Management", Category: "admin"},
    {PermissionType: access.PageRoleManagement, Name: "Role Management", Category: "admin"},
    {PermissionType: access.PageAuditLogs, Name: "Audit Logs", Category: "admin"},
    {PermissionType: access.PageReports, Name: "Reports", Category: "admin"},
    {PermissionType: access.Wildcard, Name: "All Pages", Category: "admin"},
  }
}

// SyncPermissions reconciles the permission table against Catalog inside one
// transaction: stale rows are deleted, renamed rows updated, missing rows
// created. Any role that already held every pre-existing permission is treated
// as an "everything" role and gets the newly created permissions appended.
func SyncPermissions(
  db             *gorm.DB,
  permissionRepo repos.PermissionRepo,
  roleRepo       repos.RoleRepo,
) error {
  catalog := Catalog()
  return db.Transaction(func(tx *gorm.DB) error {
    existing, err := permissionRepo.GetAll(context.Background(), tx)
    if err != nil {
      return fmt.Errorf("failed fetching existing permissions: %w", err)
    }
    catalogMap := make(map[string]*types.Permission)
    for _, cp := range catalog {
      catalogMap[cp.PermissionType] = cp
    }
    existingMap := make(map[string]*types.Permission)
    for _, ep := range existing {
      existingMap[ep.PermissionType] = ep
    }
    var toDelete []*types.Permission
    for _, ep := range existing {
      if _, ok := catalogMap[ep.PermissionType]; !ok {
        toDelete = append(toDelete, ep)
      }
    }
    var toCreate []*types.Permission
    for _, cp := range catalog {
      if _, ok := existingMap[cp.PermissionType]; !ok {
        toCreate = append(toCreate, cp)
      }
    }
    var toUpdate []*types.Permission
    for _, cp := range catalog {
      if ep, ok := existingMap[cp.PermissionType]; ok {
        if ep.Name != cp.Name || ep.Category != cp.Category {
          ep.Name = cp.Name
          ep.Category = cp.Category
          toUpdate = append(toUpdate, ep)
        }
      }
    }
    if len(toDelete) > 0 {
      var ids []uuid.UUID
      for _, p := range toDelete {
        ids = append(ids, p.ID)
      }
      if err := tx.Where("id IN ?", ids).Delete(&types.Permission{}).Error; err != nil {
        return fmt.Errorf("failed deleting stale permissions: %w", err)
      }
    }
    if len(toUpdate) > 0 {
      if _, err := permissionRepo.Update(context.Background(), tx, toUpdate); err != nil {
        return fmt.Errorf("failed updating changed permissions: %w", err)
      }
    }
    keptPermIDs := make(map[uuid.UUID]bool)
    for _, ep := range existing {
      if _, ok := catalogMap[ep.PermissionType]; ok {
        keptPermIDs[ep.ID] = true
      }
    }
    rolesWithAllPerms, err := findRolesWithAllPerms(tx, keptPermIDs)
    if err != nil {
      return fmt.Errorf("failed finding roles holding the full catalog: %w", err)
    }
    var createdPerms []*types.Permission
    if len(toCreate) > 0 {
      createdPerms, err = permissionRepo.Create(context.Background(), tx, toCreate)
      if err != nil {
        return fmt.Errorf("failed creating new permissions: %w", err)
      }
    }
    if len(rolesWithAllPerms) > 0 && len(createdPerms) > 0 {
      for _, r := range rolesWithAllPerms {
        if err := roleRepo.AssociatePermissions(context.Background(), tx, r, createdPerms); err != nil {
          return fmt.Errorf("failed associating new permissions with roles: %w", err)
        }
      }
    }
    return nil
  })
}

func findRolesWithAllPerms(tx *gorm.DB, keptPermIDs map[uuid.UUID]bool) ([]*types.Role, error) {
  if len(keptPermIDs) == 0 {
    var roles []*types.Role
    if err := tx.Find(&roles).Error; err != nil {
      return nil, err
    }
    return roles, nil
  }
  var permIDs []uuid.UUID
  for id := range keptPermIDs {
    permIDs = append(permIDs, id)
  }
  type roleCount struct {
    RoleID uuid.UUID
    Ct     int64
  }
  var results []roleCount
  numPermsNeeded := int64(len(permIDs))
  err := tx.Raw(`
    SELECT role_id, COUNT(DISTINCT permission_id) as ct
      FROM permissions_roles
    WHERE permission_id IN ?
    GROUP BY role_id
    HAVING COUNT(DISTINCT permission_id) = ?
  `, permIDs, numPermsNeeded).Scan(&results).Error
  if err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  var roleIDs []uuid.UUID
  for _, rc := range results {
    roleIDs = append(roleIDs, rc.RoleID)
  }
  var roles []*types.Role
  if err := tx.Where("id IN ?", roleIDs).Find(&roles).Error; err != nil {
    return nil, err
  }
  return roles, nil
}
