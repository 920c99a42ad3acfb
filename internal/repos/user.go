package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type UserRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)

  // READ
  GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error)
  GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error)
  EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error)
  PhoneNumberExists(ctx context.Context, tx *gorm.DB, userPhoneNumber string) (bool, error)
  GetByRoleIDs(ctx context.Context, tx *gorm.DB, roleIDs []uuid.UUID) ([]*types.User, error)
  GetPage(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.User, int64, error)
  CountAll(ctx context.Context, tx *gorm.DB) (int64, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)

  // FULL (HARD) DELETE
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type userRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
  repoLog := baseLog.With("repo", "UserRepo")
  return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
  ur.log.Info("Starting Create Users now...")
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  if len(users) == 0 {
    ur.log.Debug("Users array is empty, returning empty slice", "count", 0)
    return []*types.User{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&users).Error; err != nil {
    ur.log.Error("Failed to create users", "error", err)
    return nil, err
  }
  ur.log.Info("Successfully created users", "count", len(users))
  return users, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  var results []*types.User
  if len(userIDs) == 0 {
    ur.log.Debug("No userIDs provided, returning empty slice")
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", userIDs).
    Find(&results).Error; err != nil {
    ur.log.Error("Failed to fetch users by IDs", "error", err)
    return nil, err
  }
  ur.log.Debug("Fetched users by IDs", "count", len(results))
  return results, nil
}

func (ur *userRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  var results []*types.User
  if len(userEmails) == 0 {
    ur.log.Debug("No userEmails provided, returning empty slice")
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("email IN ?", userEmails).
    Find(&results).Error; err != nil {
    ur.log.Error("Failed to fetch users by emails", "error", err)
    return nil, err
  }
  ur.log.Debug("Fetched users by emails", "count", len(results))
  return results, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.User{}).
    Where("email = ?", userEmail).
    Count(&count).Error; err != nil {
    ur.log.Error("Failed to count users by email", "error", err)
    return false, err
  }
  exists := count > 0
  ur.log.Debug("EmailExists check complete", "email", userEmail, "exists", exists)
  return exists, nil
}

func (ur *userRepo) PhoneNumberExists(ctx context.Context, tx *gorm.DB, userPhoneNumber string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.User{}).
    Where("phone_number = ?", userPhoneNumber).
    Count(&count).Error; err != nil {
    ur.log.Error("Failed to count users by phoneNumber", "error", err)
    return false, err
  }
  return count > 0, nil
}

func (ur *userRepo) GetByRoleIDs(ctx context.Context, tx *gorm.DB, roleIDs []uuid.UUID) ([]*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  var results []*types.User
  if len(roleIDs) == 0 {
    ur.log.Debug("No roleIDs provided, returning empty slice")
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("role_id IN ?", roleIDs).
    Find(&results).Error; err != nil {
    ur.log.Error("Failed to fetch users by roleIDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (ur *userRepo) GetPage(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.User, int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  total, err := ur.CountAll(ctx, transaction)
  if err != nil {
    return nil, 0, err
  }
  var results []*types.User
  if err := transaction.WithContext(ctx).
    Preload("Role").
    Order("created_at ASC").
    Limit(limit).
    Offset(offset).
    Find(&results).Error; err != nil {
    ur.log.Error("Failed to fetch user page", "error", err)
    return nil, 0, err
  }
  ur.log.Debug("Fetched user page", "count", len(results), "total", total)
  return results, total, nil
}

func (ur *userRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.User{}).
    Count(&count).Error; err != nil {
    ur.log.Error("Failed to count users", "error", err)
    return 0, err
  }
  return count, nil
}

func (ur *userRepo) Update(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  if len(users) == 0 {
    ur.log.Debug("No users provided, returning empty slice")
    return []*types.User{}, nil
  }
  for _, u := range users {
    if err := transaction.WithContext(ctx).Save(u).Error; err != nil {
      ur.log.Error("Failed to update user", "userID", u.ID, "error", err)
      return nil, err
    }
  }
  ur.log.Info("Successfully updated users", "count", len(users))
  return users, nil
}

func (ur *userRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  if len(userIDs) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("id IN ?", userIDs).
    Delete(&types.User{}).Error; err != nil {
    ur.log.Error("Failed to hard delete users", "error", err)
    return err
  }
  return nil
}
