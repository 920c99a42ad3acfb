package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/eventdata"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

// UserAdminService backs the user-management screen.
type UserAdminService interface {
  ListUsers(ctx context.Context, page, pageSize int) ([]*types.User, int64, error)
  AssignRole(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) (*types.User, error)
}

type userAdminService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  roleRepo      repos.RoleRepo
  userTokenRepo repos.UserTokenRepo
}

func NewUserAdminService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, roleRepo repos.RoleRepo, userTokenRepo repos.UserTokenRepo) UserAdminService {
  serviceLog := log.With("service", "UserAdminService")
  return &userAdminService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    roleRepo:      roleRepo,
    userTokenRepo: userTokenRepo,
  }
}

func (uas *userAdminService) ListUsers(ctx context.Context, page, pageSize int) ([]*types.User, int64, error) {
  if page < 1 {
    page = 1
  }
  if pageSize < 1 || pageSize > 100 {
    pageSize = 25
  }
  offset := (page - 1) * pageSize
  users, total, err := uas.userRepo.GetPage(ctx, nil, pageSize, offset)
  if err != nil {
    uas.log.Warn("Failed to fetch user page, Cannot proceed further. Returning error.", "error", err)
    return nil, 0, fmt.Errorf("Failed to fetch users: %w", err)
  }
  for _, user := range users {
    user.Password = ""
  }
  return users, total, nil
}

// AssignRole moves a user onto a different role. The user's active sessions
// are revoked so the change cannot be dodged by holding an old token.
func (uas *userAdminService) AssignRole(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) (*types.User, error) {
  uas.log.Info("Starting Assign Role now...", "userID", userID, "roleID", roleID)
  if userID == uuid.Nil || roleID == uuid.Nil {
    return nil, fmt.Errorf("userID and roleID are both required")
  }
  var updated *types.User
  err := uas.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    users, uErr := uas.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
    if uErr != nil {
      uas.log.Warn("Failed to fetch user, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to fetch user: %w", uErr)
    }
    if len(users) == 0 {
      return fmt.Errorf("No user found with id '%s'", userID)
    }
    user := users[0]

    roles, rErr := uas.roleRepo.GetByIDs(ctx, tx, []uuid.UUID{roleID})
    if rErr != nil {
      uas.log.Warn("Failed to fetch role, Cannot proceed further. Returning error.", "error", rErr)
      return fmt.Errorf("Failed to fetch role: %w", rErr)
    }
    if len(roles) == 0 {
      return fmt.Errorf("No role found with id '%s'", roleID)
    }

    user.RoleID = &roleID
    if _, upErr := uas.userRepo.Update(ctx, tx, []*types.User{user}); upErr != nil {
      uas.log.Warn("Failed to update user's role, Cannot proceed further. Returning error.", "error", upErr)
      return fmt.Errorf("Failed to update user's role: %w", upErr)
    }
    if dErr := uas.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); dErr != nil {
      uas.log.Warn("Failed to revoke user's sessions, Cannot proceed further. Returning error.", "error", dErr)
      return fmt.Errorf("Failed to revoke user's sessions: %w", dErr)
    }
    updated = user
    return nil
  })
  if err != nil {
    return nil, err
  }
  updated.Password = ""
  if ed := eventdata.GetEventData(ctx); ed != nil {
    ed.AppendMessage(socket.Message{Channel: socket.UserChannel(updated.ID), Payload: updated})
  }
  uas.log.Info("Successfully assigned role to user :)", "userID", userID, "roleID", roleID)
  return updated, nil
}
