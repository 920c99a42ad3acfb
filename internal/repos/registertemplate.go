package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type RegisterTemplateRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, templates []*types.RegisterTemplate) ([]*types.RegisterTemplate, error)
  CreateEntries(ctx context.Context, tx *gorm.DB, entries []*types.RegisterEntry) ([]*types.RegisterEntry, error)

  // READ
  GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.RegisterTemplate, error)
  NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.RegisterTemplate, error)
  GetEntriesByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, from, to time.Time) ([]*types.RegisterEntry, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, templates []*types.RegisterTemplate) ([]*types.RegisterTemplate, error)

  // FULL (HARD) DELETE
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error
}

type registerTemplateRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRegisterTemplateRepo(db *gorm.DB, baseLog *logger.Logger) RegisterTemplateRepo {
  repoLog := baseLog.With("repo", "RegisterTemplateRepo")
  return &registerTemplateRepo{db: db, log: repoLog}
}

func (rtr *registerTemplateRepo) Create(ctx context.Context, tx *gorm.DB, templates []*types.RegisterTemplate) ([]*types.RegisterTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = rtr.db
  }
  if len(templates) == 0 {
    rtr.log.Debug("Templates array is empty, returning empty slice")
    return []*types.RegisterTemplate{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&templates).Error; err != nil {
    rtr.log.Error("Failed to create register templates", "error", err)
    return nil, err
  }
  rtr.log.Info("Successfully created register templates", "count", len(templates))
  return templates, nil
}

func (rtr *registerTemplateRepo) CreateEntries(ctx context.Context, tx *gorm.DB, entries []*types.RegisterEntry) ([]*types.RegisterEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = rtr.db
  }
  if len(entries) == 0 {
    return []*types.RegisterEntry{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
    rtr.log.Error("Failed to create register entries", "error", err)
    return nil, err
  }
  rtr.log.Debug("Created register entries", "count", len(entries))
  return entries, nil
}

func (rtr *registerTemplateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.RegisterTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = rtr.db
  }
  var results []*types.RegisterTemplate
  if len(templateIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", templateIDs).
    Find(&results).Error; err != nil {
    rtr.log.Error("Failed to fetch register templates by IDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (rtr *registerTemplateRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = rtr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.RegisterTemplate{}).
    Where("name = ?", name).
    Count(&count).Error; err != nil {
    rtr.log.Error("Failed to count register templates by name", "error", err)
    return false, err
  }
  return count > 0, nil
}

func (rtr *registerTemplateRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.RegisterTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = rtr.db
  }
  var results []*types.RegisterTemplate
  if err := transaction.WithContext(ctx).
    Order("name ASC").
    Find(&results).Error; err != nil {
    rtr.log.Error("Failed to fetch all register templates", "error", err)
    return nil, err
  }
  return results, nil
}

func (rtr *registerTemplateRepo) GetEntriesByTemplateID(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, from, to time.Time) ([]*types.RegisterEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = rtr.db
  }
  var results []*types.RegisterEntry
  if err := transaction.WithContext(ctx).
    Where("template_id = ? AND created_at >= ? AND created_at < ?", templateID, from, to).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    rtr.log.Error("Failed to fetch register entries for template", "templateID", templateID, "error", err)
    return nil, err
  }
  return results, nil
}

func (rtr *registerTemplateRepo) Update(ctx context.Context, tx *gorm.DB, templates []*types.RegisterTemplate) ([]*types.RegisterTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = rtr.db
  }
  if len(templates) == 0 {
    return []*types.RegisterTemplate{}, nil
  }
  for _, t := range templates {
    if err := transaction.WithContext(ctx).Save(t).Error; err != nil {
      rtr.log.Error("Failed to update register template", "templateID", t.ID, "error", err)
      return nil, err
    }
  }
  return templates, nil
}

func (rtr *registerTemplateRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = rtr.db
  }
  if len(templateIDs) == 0 {
    return nil
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("id IN ?", templateIDs).
    Delete(&types.RegisterTemplate{}).Error; err != nil {
    rtr.log.Error("Failed to hard delete register templates", "error", err)
    return err
  }
  return nil
}
