package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type ContactSubmissionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, submissions []*types.ContactSubmission) ([]*types.ContactSubmission, error)
  GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.ContactSubmission, error)
}

type contactSubmissionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewContactSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) ContactSubmissionRepo {
  repoLog := baseLog.With("repo", "ContactSubmissionRepo")
  return &contactSubmissionRepo{db: db, log: repoLog}
}

func (csr *contactSubmissionRepo) Create(ctx context.Context, tx *gorm.DB, submissions []*types.ContactSubmission) ([]*types.ContactSubmission, error) {
  transaction := tx
  if transaction == nil {
    transaction = csr.db
  }
  if len(submissions) == 0 {
    return []*types.ContactSubmission{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&submissions).Error; err != nil {
    csr.log.Error("Failed to create contact submissions", "error", err)
    return nil, err
  }
  csr.log.Info("Successfully created contact submissions", "count", len(submissions))
  return submissions, nil
}

func (csr *contactSubmissionRepo) GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.ContactSubmission, error) {
  transaction := tx
  if transaction == nil {
    transaction = csr.db
  }
  var results []*types.ContactSubmission
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    csr.log.Error("Failed to fetch recent contact submissions", "error", err)
    return nil, err
  }
  return results, nil
}
