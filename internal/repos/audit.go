package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type AuditRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, records []*types.AuditRecord) ([]*types.AuditRecord, error)

  // READ
  GetByTruckIDs(ctx context.Context, tx *gorm.DB, truckIDs []uuid.UUID) ([]*types.AuditRecord, error)
  GetByDomainBetween(ctx context.Context, tx *gorm.DB, domain types.AuditDomain, from, to time.Time) ([]*types.AuditRecord, error)
  GetBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.AuditRecord, error)
  GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.AuditRecord, error)
}

type auditRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAuditRepo(db *gorm.DB, baseLog *logger.Logger) AuditRepo {
  repoLog := baseLog.With("repo", "AuditRepo")
  return &auditRepo{db: db, log: repoLog}
}

func (ar *auditRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.AuditRecord) ([]*types.AuditRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  if len(records) == 0 {
    ar.log.Debug("Records array is empty, returning empty slice")
    return []*types.AuditRecord{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
    ar.log.Error("Failed to create audit records", "error", err)
    return nil, err
  }
  ar.log.Debug("Created audit records", "count", len(records))
  return records, nil
}

func (ar *auditRepo) GetByTruckIDs(ctx context.Context, tx *gorm.DB, truckIDs []uuid.UUID) ([]*types.AuditRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var results []*types.AuditRecord
  if len(truckIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("truck_id IN ?", truckIDs).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    ar.log.Error("Failed to fetch audit records by truckIDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (ar *auditRepo) GetByDomainBetween(ctx context.Context, tx *gorm.DB, domain types.AuditDomain, from, to time.Time) ([]*types.AuditRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var results []*types.AuditRecord
  if err := transaction.WithContext(ctx).
    Where("domain = ? AND created_at >= ? AND created_at < ?", domain, from, to).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    ar.log.Error("Failed to fetch audit records by domain", "domain", domain, "error", err)
    return nil, err
  }
  ar.log.Debug("Fetched audit records by domain", "domain", domain, "count", len(results))
  return results, nil
}

func (ar *auditRepo) GetBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.AuditRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var results []*types.AuditRecord
  if err := transaction.WithContext(ctx).
    Where("created_at >= ? AND created_at < ?", from, to).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    ar.log.Error("Failed to fetch audit records between", "error", err)
    return nil, err
  }
  return results, nil
}

func (ar *auditRepo) GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.AuditRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var results []*types.AuditRecord
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    ar.log.Error("Failed to fetch recent audit records", "error", err)
    return nil, err
  }
  return results, nil
}
