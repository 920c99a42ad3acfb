package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type UserTokenRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, tokens []*types.UserToken) ([]*types.UserToken, error)

  // READ
  GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.UserToken, error)
  GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error)

  // FULL (HARD) DELETE
  FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
  FullDeleteByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) error
  FullDeleteExpired(ctx context.Context, tx *gorm.DB, now time.Time) error
}

type userTokenRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
  repoLog := baseLog.With("repo", "UserTokenRepo")
  return &userTokenRepo{db: db, log: repoLog}
}

func (utr *userTokenRepo) Create(ctx context.Context, tx *gorm.DB, tokens []*types.UserToken) ([]*types.UserToken, error) {
  transaction := tx
  if transaction == nil {
    transaction = utr.db
  }
  if len(tokens) == 0 {
    return []*types.UserToken{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&tokens).Error; err != nil {
    utr.log.Error("Failed to create user tokens", "error", err)
    return nil, err
  }
  utr.log.Debug("Created user tokens", "count", len(tokens))
  return tokens, nil
}

func (utr *userTokenRepo) GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.UserToken, error) {
  transaction := tx
  if transaction == nil {
    transaction = utr.db
  }
  var result types.UserToken
  if err := transaction.WithContext(ctx).
    Where("access_token = ?", accessToken).
    First(&result).Error; err != nil {
    utr.log.Debug("Failed to fetch user token by access token", "error", err)
    return nil, err
  }
  return &result, nil
}

func (utr *userTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error) {
  transaction := tx
  if transaction == nil {
    transaction = utr.db
  }
  var result types.UserToken
  if err := transaction.WithContext(ctx).
    Where("refresh_token = ?", refreshToken).
    First(&result).Error; err != nil {
    utr.log.Debug("Failed to fetch user token by refresh token", "error", err)
    return nil, err
  }
  return &result, nil
}

func (utr *userTokenRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = utr.db
  }
  if len(userIDs) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("user_id IN ?", userIDs).
    Delete(&types.UserToken{}).Error; err != nil {
    utr.log.Error("Failed to hard delete user tokens by userIDs", "error", err)
    return err
  }
  return nil
}

func (utr *userTokenRepo) FullDeleteByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) error {
  transaction := tx
  if transaction == nil {
    transaction = utr.db
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("access_token = ?", accessToken).
    Delete(&types.UserToken{}).Error; err != nil {
    utr.log.Error("Failed to hard delete user token by access token", "error", err)
    return err
  }
  return nil
}

func (utr *userTokenRepo) FullDeleteExpired(ctx context.Context, tx *gorm.DB, now time.Time) error {
  transaction := tx
  if transaction == nil {
    transaction = utr.db
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("expires_at < ?", now).
    Delete(&types.UserToken{}).Error; err != nil {
    utr.log.Error("Failed to hard delete expired user tokens", "error", err)
    return err
  }
  return nil
}
