package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/requestdata"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type MeService interface {
  GetMe(ctx context.Context, tx *gorm.DB) (*types.User, error)
  GetMyRole(ctx context.Context, tx *gorm.DB) (*types.Role, error)
  GetMyPermissions(ctx context.Context, tx *gorm.DB) ([]string, error)
}

type meService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
  roleRepo repos.RoleRepo
}

func NewMeService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, roleRepo repos.RoleRepo) MeService {
  serviceLog := log.With("service", "MeService")
  return &meService{
    db:       db,
    log:      serviceLog,
    userRepo: userRepo,
    roleRepo: roleRepo,
  }
}

func (ms *meService) GetMe(ctx context.Context, tx *gorm.DB) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    ms.log.Warn("Request Data is not set in context.")
    return nil, fmt.Errorf("Request Data is not set in context")
  }
  if rd.UserID == uuid.Nil {
    ms.log.Warn("User ID not set in Request Data.")
    return nil, fmt.Errorf("User ID not set in Request Data")
  }
  foundUsers, fErr := ms.userRepo.GetByIDs(ctx, tx, []uuid.UUID{rd.UserID})
  if fErr != nil {
    ms.log.Warn("Error fetching user.", "error", fErr)
    return nil, fmt.Errorf("Failed to fetch user: %w", fErr)
  }
  if len(foundUsers) == 0 {
    return nil, fmt.Errorf("user does not exist")
  }
  return foundUsers[0], nil
}

func (ms *meService) GetMyRole(ctx context.Context, tx *gorm.DB) (*types.Role, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    ms.log.Warn("Request Data is not set in context.")
    return nil, fmt.Errorf("Request Data is not set in context")
  }
  if rd.RoleID == uuid.Nil {
    ms.log.Warn("Role ID not set in Request Data.")
    return nil, fmt.Errorf("Role ID not set in Request Data")
  }
  foundRoles, rErr := ms.roleRepo.GetByIDs(ctx, tx, []uuid.UUID{rd.RoleID})
  if rErr != nil {
    ms.log.Warn("Error fetching role.", "error", rErr)
    return nil, fmt.Errorf("Failed to fetch role: %w", rErr)
  }
  if len(foundRoles) == 0 {
    return nil, fmt.Errorf("role does not exist")
  }
  return foundRoles[0], nil
}

// GetMyPermissions resolves the page identifiers for the caller's role. A
// missing role yields an empty set, not an error, so the gate denies
// everything but never breaks the session.
func (ms *meService) GetMyPermissions(ctx context.Context, tx *gorm.DB) ([]string, error) {
  role, rErr := ms.GetMyRole(ctx, tx)
  if rErr != nil {
    ms.log.Warn("Could not resolve role for permissions; returning empty set.", "error", rErr)
    return []string{}, nil
  }
  return role.PermissionTypes(), nil
}
