package seed

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/access"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/seed/permission"
  "github.com/yardsync-org/yardsync-backend/internal/types"
  "github.com/yardsync-org/yardsync-backend/internal/utils"
)

const (
  AdminRoleName   = "Administrator"
  DefaultRoleName = "Yard Operator"
)

// SeedAll runs on every boot: it reconciles the permission catalog, makes sure
// the built-in roles exist, and creates any docks or weighbridges named in the
// environment that are not in the database yet.
func SeedAll(
  db              *gorm.DB,
  log             *logger.Logger,
  permissionRepo  repos.PermissionRepo,
  roleRepo        repos.RoleRepo,
  dockRepo        repos.DockRepo,
  weighbridgeRepo repos.WeighbridgeRepo,
) error {
  log.Info("Running SeedAll... syncing permission catalog")
  if err := permission.SyncPermissions(db, permissionRepo, roleRepo); err != nil {
    return fmt.Errorf("failed to sync permissions: %w", err)
  }
  if err := seedBuiltinRoles(db, roleRepo, permissionRepo); err != nil {
    return fmt.Errorf("failed to seed builtin roles: %w", err)
  }
  if err := seedDocks(db, log, dockRepo); err != nil {
    return fmt.Errorf("failed to seed docks: %w", err)
  }
  if err := seedWeighbridges(db, log, weighbridgeRepo); err != nil {
    return fmt.Errorf("failed to seed weighbridges: %w", err)
  }
  log.Info("SeedAll Complete! :)")
  return nil
}

func seedBuiltinRoles(db *gorm.DB, roleRepo repos.RoleRepo, permissionRepo repos.PermissionRepo) error {
  ctx := context.Background()
  return db.Transaction(func(tx *gorm.DB) error {
    //1) Administrator gets the wildcard permission.
    adminExists, err := roleRepo.NameExists(ctx, tx, AdminRoleName)
    if err != nil {
      return err
    }
    if !adminExists {
      wildcard, err := permissionRepo.GetByPermissionTypes(ctx, tx, []string{access.Wildcard})
      if err != nil {
        return err
      }
      desc := "Full access to every page"
      created, err := roleRepo.Create(ctx, tx, []*types.Role{{Name: AdminRoleName, Description: &desc}})
      if err != nil {
        return err
      }
      if err := roleRepo.AssociatePermissions(ctx, tx, created[0], wildcard); err != nil {
        return err
      }
    }
    //2) Yard Operator starts with just the dashboard; admins grant the rest.
    defaultExists, err := roleRepo.NameExists(ctx, tx, DefaultRoleName)
    if err != nil {
      return err
    }
    if !defaultExists {
      dashboard, err := permissionRepo.GetByPermissionTypes(ctx, tx, []string{access.PageDashboard})
      if err != nil {
        return err
      }
      desc := "Default role for newly registered users"
      created, err := roleRepo.Create(ctx, tx, []*types.Role{{Name: DefaultRoleName, Description: &desc}})
      if err != nil {
        return err
      }
      if err := roleRepo.AssociatePermissions(ctx, tx, created[0], dashboard); err != nil {
        return err
      }
    }
    return nil
  })
}

func seedDocks(db *gorm.DB, log *logger.Logger, dockRepo repos.DockRepo) error {
  ctx := context.Background()
  names := utils.GetEnvAsList("SEED_DOCK_NAMES", log)
  if len(names) == 0 {
    names = []string{"Dock 1", "Dock 2", "Dock 3", "Dock 4"}
  }
  return db.Transaction(func(tx *gorm.DB) error {
    for _, name := range names {
      exists, err := dockRepo.NameExists(ctx, tx, name)
      if err != nil {
        return err
      }
      if exists {
        continue
      }
      if _, err := dockRepo.Create(ctx, tx, []*types.Dock{{Name: name, IsActive: true}}); err != nil {
        return err
      }
      log.Info("Seeded dock", "name", name)
    }
    return nil
  })
}

func seedWeighbridges(db *gorm.DB, log *logger.Logger, weighbridgeRepo repos.WeighbridgeRepo) error {
  ctx := context.Background()
  names := utils.GetEnvAsList("SEED_WEIGHBRIDGE_NAMES", log)
  if len(names) == 0 {
    names = []string{"Weighbridge A", "Weighbridge B"}
  }
  return db.Transaction(func(tx *gorm.DB) error {
    for _, name := range names {
      exists, err := weighbridgeRepo.NameExists(ctx, tx, name)
      if err != nil {
        return err
      }
      if exists {
        continue
      }
      if _, err := weighbridgeRepo.Create(ctx, tx, []*types.Weighbridge{{Name: name, IsActive: true}}); err != nil {
        return err
      }
      log.Info("Seeded weighbridge", "name", name)
    }
    return nil
  })
}
