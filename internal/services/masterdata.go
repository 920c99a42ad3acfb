package services

import (
  "context"
  "errors"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/normalization"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

// MasterDataService covers the docks and weighbridges admin screens.
type MasterDataService interface {
  CreateDock(ctx context.Context, name string, dockType string) (*types.Dock, error)
  UpdateDock(ctx context.Context, dockID uuid.UUID, name *string, dockType *string, isActive *bool) (*types.Dock, error)
  ActivateDock(ctx context.Context, dockID uuid.UUID) ([]*types.Dock, error)
  DeleteDock(ctx context.Context, dockID uuid.UUID) error
  GetDocks(ctx context.Context) ([]*types.Dock, error)

  CreateWeighbridge(ctx context.Context, name string, capacityKg int) (*types.Weighbridge, error)
  UpdateWeighbridge(ctx context.Context, weighbridgeID uuid.UUID, name *string, capacityKg *int, isActive *bool) (*types.Weighbridge, error)
  DeleteWeighbridge(ctx context.Context, weighbridgeID uuid.UUID) error
  GetWeighbridges(ctx context.Context) ([]*types.Weighbridge, error)
}

type masterDataService struct {
  db                *gorm.DB
  log               *logger.Logger
  dockRepo          repos.DockRepo
  weighbridgeRepo   repos.WeighbridgeRepo
  dockOperationRepo repos.DockOperationRepo
}

func NewMasterDataService(
  db                *gorm.DB,
  log               *logger.Logger,
  dockRepo          repos.DockRepo,
  weighbridgeRepo   repos.WeighbridgeRepo,
  dockOperationRepo repos.DockOperationRepo,
) MasterDataService {
  serviceLog := log.With("service", "MasterDataService")
  return &masterDataService{
    db:                db,
    log:               serviceLog,
    dockRepo:          dockRepo,
    weighbridgeRepo:   weighbridgeRepo,
    dockOperationRepo: dockOperationRepo,
  }
}

func (mds *masterDataService) CreateDock(ctx context.Context, name string, dockType string) (*types.Dock, error) {
  mds.log.Info("Starting Create Dock now...", "name", name)
  name = normalization.ParseInputString(name)
  if name == "" {
    return nil, fmt.Errorf("dock name cannot be empty")
  }
  var created *types.Dock
  err := mds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    exists, eErr := mds.dockRepo.NameExists(ctx, tx, name)
    if eErr != nil {
      mds.log.Warn("Failed to check dock name, Cannot proceed further. Returning error.", "error", eErr)
      return fmt.Errorf("Failed to check dock name: %w", eErr)
    }
    if exists {
      return fmt.Errorf("a dock named '%s' already exists", name)
    }
    dock := &types.Dock{
      ID:       uuid.New(),
      Name:     name,
      DockType: dockType,
      IsActive: true,
    }
    if _, cErr := mds.dockRepo.Create(ctx, tx, []*types.Dock{dock}); cErr != nil {
      mds.log.Warn("Failed to create dock, Cannot proceed further. Returning error.", "error", cErr)
      return fmt.Errorf("Failed to create dock: %w", cErr)
    }
    created = dock
    return nil
  })
  if err != nil {
    return nil, err
  }
  mds.log.Info("Successfully created dock :)", "dockID", created.ID)
  return created, nil
}

func (mds *masterDataService) UpdateDock(ctx context.Context, dockID uuid.UUID, name *string, dockType *string, isActive *bool) (*types.Dock, error) {
  mds.log.Info("Starting Update Dock now...", "dockID", dockID)
  var updated *types.Dock
  err := mds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    docks, dErr := mds.dockRepo.GetByIDs(ctx, tx, []uuid.UUID{dockID})
    if dErr != nil {
      mds.log.Warn("Failed to fetch dock, Cannot proceed further. Returning error.", "error", dErr)
      return fmt.Errorf("Failed to fetch dock: %w", dErr)
    }
    if len(docks) == 0 {
      return fmt.Errorf("No dock found with id '%s'", dockID)
    }
    dock := docks[0]

    if name != nil {
      parsed := normalization.ParseInputString(*name)
      if parsed == "" {
        return fmt.Errorf("dock name cannot be empty")
      }
      if parsed != dock.Name {
        exists, eErr := mds.dockRepo.NameExists(ctx, tx, parsed)
        if eErr != nil {
          mds.log.Warn("Failed to check dock name, Cannot proceed further. Returning error.", "error", eErr)
          return fmt.Errorf("Failed to check dock name: %w", eErr)
        }
        if exists {
          return fmt.Errorf("a dock named '%s' already exists", parsed)
        }
        dock.Name = parsed
      }
    }
    if dockType != nil {
      dock.DockType = *dockType
    }
    if isActive != nil {
      // Deactivating a dock with a truck on it would strand the operation.
      if !*isActive && dock.IsActive {
        if _, oErr := mds.dockOperationRepo.GetOpenByDockID(ctx, tx, dockID); oErr == nil {
          mds.log.Warn("Dock has an open operation, Cannot proceed further.", "dockID", dockID)
          return fmt.Errorf("dock '%s' has an open operation and cannot be deactivated", dock.Name)
        } else if !errors.Is(oErr, gorm.ErrRecordNotFound) {
          mds.log.Warn("Failed to check dock occupancy, Cannot proceed further. Returning error.", "error", oErr)
          return fmt.Errorf("Failed to check dock occupancy: %w", oErr)
        }
      }
      dock.IsActive = *isActive
    }

    if _, uErr := mds.dockRepo.Update(ctx, tx, []*types.Dock{dock}); uErr != nil {
      mds.log.Warn("Failed to update dock, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to update dock: %w", uErr)
    }
    updated = dock
    return nil
  })
  if err != nil {
    return nil, err
  }
  mds.log.Info("Successfully updated dock :)", "dockID", dockID)
  return updated, nil
}

// applyExclusiveActivation flips the target dock active and every sibling
// inactive, returning only the docks whose flag actually changed. The flag
// only gates new assignments; an in-flight operation on a deactivated
// sibling still runs to completion.
func applyExclusiveActivation(docks []*types.Dock, target uuid.UUID) ([]*types.Dock, error) {
  var changed []*types.Dock
  found := false
  for _, dock := range docks {
    want := dock.ID == target
    if want {
      found = true
    }
    if dock.IsActive != want {
      dock.IsActive = want
      changed = append(changed, dock)
    }
  }
  if !found {
    return nil, fmt.Errorf("No dock found with id '%s'", target)
  }
  return changed, nil
}

// ActivateDock makes the target the only active dock. All flag flips land in
// one transaction so a reader never sees zero or two active docks.
func (mds *masterDataService) ActivateDock(ctx context.Context, dockID uuid.UUID) ([]*types.Dock, error) {
  mds.log.Info("Starting Activate Dock now...", "dockID", dockID)
  var docks []*types.Dock
  err := mds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    all, dErr := mds.dockRepo.GetAll(ctx, tx)
    if dErr != nil {
      mds.log.Warn("Failed to fetch docks, Cannot proceed further. Returning error.", "error", dErr)
      return fmt.Errorf("Failed to fetch docks: %w", dErr)
    }
    changed, cErr := applyExclusiveActivation(all, dockID)
    if cErr != nil {
      mds.log.Warn("No dock found with that id, Cannot proceed further.", "dockID", dockID)
      return cErr
    }
    if len(changed) > 0 {
      if _, uErr := mds.dockRepo.Update(ctx, tx, changed); uErr != nil {
        mds.log.Warn("Failed to update docks, Cannot proceed further. Returning error.", "error", uErr)
        return fmt.Errorf("Failed to update docks: %w", uErr)
      }
    }
    docks = all
    return nil
  })
  if err != nil {
    return nil, err
  }
  mds.log.Info("Successfully activated dock :)", "dockID", dockID)
  return docks, nil
}

func (mds *masterDataService) DeleteDock(ctx context.Context, dockID uuid.UUID) error {
  mds.log.Info("Starting Delete Dock now...", "dockID", dockID)
  err := mds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    docks, dErr := mds.dockRepo.GetByIDs(ctx, tx, []uuid.UUID{dockID})
    if dErr != nil {
      mds.log.Warn("Failed to fetch dock, Cannot proceed further. Returning error.", "error", dErr)
      return fmt.Errorf("Failed to fetch dock: %w", dErr)
    }
    if len(docks) == 0 {
      return fmt.Errorf("No dock found with id '%s'", dockID)
    }
    if _, oErr := mds.dockOperationRepo.GetOpenByDockID(ctx, tx, dockID); oErr == nil {
      mds.log.Warn("Dock has an open operation, Cannot proceed further.", "dockID", dockID)
      return fmt.Errorf("dock '%s' has an open operation and cannot be deleted", docks[0].Name)
    } else if !errors.Is(oErr, gorm.ErrRecordNotFound) {
      mds.log.Warn("Failed to check dock occupancy, Cannot proceed further. Returning error.", "error", oErr)
      return fmt.Errorf("Failed to check dock occupancy: %w", oErr)
    }
    if delErr := mds.dockRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{dockID}); delErr != nil {
      mds.log.Warn("Failed to delete dock, Cannot proceed further. Returning error.", "error", delErr)
      return fmt.Errorf("Failed to delete dock: %w", delErr)
    }
    return nil
  })
  if err != nil {
    return err
  }
  mds.log.Info("Successfully deleted dock :)", "dockID", dockID)
  return nil
}

func (mds *masterDataService) GetDocks(ctx context.Context) ([]*types.Dock, error) {
  return mds.dockRepo.GetAll(ctx, nil)
}

func (mds *masterDataService) CreateWeighbridge(ctx context.Context, name string, capacityKg int) (*types.Weighbridge, error) {
  mds.log.Info("Starting Create Weighbridge now...", "name", name)
  name = normalization.ParseInputString(name)
  if name == "" {
    return nil, fmt.Errorf("weighbridge name cannot be empty")
  }
  if capacityKg < 0 {
    return nil, fmt.Errorf("weighbridge capacity cannot be negative")
  }
  var created *types.Weighbridge
  err := mds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    exists, eErr := mds.weighbridgeRepo.NameExists(ctx, tx, name)
    if eErr != nil {
      mds.log.Warn("Failed to check weighbridge name, Cannot proceed further. Returning error.", "error", eErr)
      return fmt.Errorf("Failed to check weighbridge name: %w", eErr)
    }
    if exists {
      return fmt.Errorf("a weighbridge named '%s' already exists", name)
    }
    weighbridge := &types.Weighbridge{
      ID:         uuid.New(),
      Name:       name,
      CapacityKg: capacityKg,
      IsActive:   true,
    }
    if _, cErr := mds.weighbridgeRepo.Create(ctx, tx, []*types.Weighbridge{weighbridge}); cErr != nil {
      mds.log.Warn("Failed to create weighbridge, Cannot proceed further. Returning error.", "error", cErr)
      return fmt.Errorf("Failed to create weighbridge: %w", cErr)
    }
    created = weighbridge
    return nil
  })
  if err != nil {
    return nil, err
  }
  mds.log.Info("Successfully created weighbridge :)", "weighbridgeID", created.ID)
  return created, nil
}

func (mds *masterDataService) UpdateWeighbridge(ctx context.Context, weighbridgeID uuid.UUID, name *string, capacityKg *int, isActive *bool) (*types.Weighbridge, error) {
  mds.log.Info("Starting Update Weighbridge now...", "weighbridgeID", weighbridgeID)
  var updated *types.Weighbridge
  err := mds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    weighbridges, wErr := mds.weighbridgeRepo.GetByIDs(ctx, tx, []uuid.UUID{weighbridgeID})
    if wErr != nil {
      mds.log.Warn("Failed to fetch weighbridge, Cannot proceed further. Returning error.", "error", wErr)
      return fmt.Errorf("Failed to fetch weighbridge: %w", wErr)
    }
    if len(weighbridges) == 0 {
      return fmt.Errorf("No weighbridge found with id '%s'", weighbridgeID)
    }
    weighbridge := weighbridges[0]

    if name != nil {
      parsed := normalization.ParseInputString(*name)
      if parsed == "" {
        return fmt.Errorf("weighbridge name cannot be empty")
      }
      if parsed != weighbridge.Name {
        exists, eErr := mds.weighbridgeRepo.NameExists(ctx, tx, parsed)
        if eErr != nil {
          mds.log.Warn("Failed to check weighbridge name, Cannot proceed further. Returning error.", "error", eErr)
          return fmt.Errorf("Failed to check weighbridge name: %w", eErr)
        }
        if exists {
          return fmt.Errorf("a weighbridge named '%s' already exists", parsed)
        }
        weighbridge.Name = parsed
      }
    }
    if capacityKg != nil {
      if *capacityKg < 0 {
        return fmt.Errorf("weighbridge capacity cannot be negative")
      }
      weighbridge.CapacityKg = *capacityKg
    }
    if isActive != nil {
      weighbridge.IsActive = *isActive
    }

    if _, uErr := mds.weighbridgeRepo.Update(ctx, tx, []*types.Weighbridge{weighbridge}); uErr != nil {
      mds.log.Warn("Failed to update weighbridge, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to update weighbridge: %w", uErr)
    }
    updated = weighbridge
    return nil
  })
  if err != nil {
    return nil, err
  }
  mds.log.Info("Successfully updated weighbridge :)", "weighbridgeID", weighbridgeID)
  return updated, nil
}

func (mds *masterDataService) DeleteWeighbridge(ctx context.Context, weighbridgeID uuid.UUID) error {
  mds.log.Info("Starting Delete Weighbridge now...", "weighbridgeID", weighbridgeID)
  err := mds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    weighbridges, wErr := mds.weighbridgeRepo.GetByIDs(ctx, tx, []uuid.UUID{weighbridgeID})
    if wErr != nil {
      mds.log.Warn("Failed to fetch weighbridge, Cannot proceed further. Returning error.", "error", wErr)
      return fmt.Errorf("Failed to fetch weighbridge: %w", wErr)
    }
    if len(weighbridges) == 0 {
      return fmt.Errorf("No weighbridge found with id '%s'", weighbridgeID)
    }
    if delErr := mds.weighbridgeRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{weighbridgeID}); delErr != nil {
      mds.log.Warn("Failed to delete weighbridge, Cannot proceed further. Returning error.", "error", delErr)
      return fmt.Errorf("Failed to delete weighbridge: %w", delErr)
    }
    return nil
  })
  if err != nil {
    return err
  }
  mds.log.Info("Successfully deleted weighbridge :)", "weighbridgeID", weighbridgeID)
  return nil
}

func (mds *masterDataService) GetWeighbridges(ctx context.Context) ([]*types.Weighbridge, error) {
  return mds.weighbridgeRepo.GetAll(ctx, nil)
}
