package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type ApprovalRequestRepo interface {
  // CREATE
  Create(ctx context.Context, tx *gorm.DB, requests []*types.ApprovalRequest) ([]*types.ApprovalRequest, error)

  // READ
  GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.ApprovalRequest, error)
  GetPendingByTruckID(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) (*types.ApprovalRequest, error)
  GetPending(ctx context.Context, tx *gorm.DB) ([]*types.ApprovalRequest, error)
  GetByRequestedByID(ctx context.Context, tx *gorm.DB, requestedByID uuid.UUID) ([]*types.ApprovalRequest, error)

  // UPDATE
  Update(ctx context.Context, tx *gorm.DB, requests []*types.ApprovalRequest) ([]*types.ApprovalRequest, error)
}

type approvalRequestRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewApprovalRequestRepo(db *gorm.DB, baseLog *logger.Logger) ApprovalRequestRepo {
  repoLog := baseLog.With("repo", "ApprovalRequestRepo")
  return &approvalRequestRepo{db: db, log: repoLog}
}

func (arr *approvalRequestRepo) Create(ctx context.Context, tx *gorm.DB, requests []*types.ApprovalRequest) ([]*types.ApprovalRequest, error) {
  transaction := tx
  if transaction == nil {
    transaction = arr.db
  }
  if len(requests) == 0 {
    arr.log.Debug("Requests array is empty, returning empty slice")
    return []*types.ApprovalRequest{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&requests).Error; err != nil {
    arr.log.Error("Failed to create approval requests", "error", err)
    return nil, err
  }
  arr.log.Info("Successfully created approval requests", "count", len(requests))
  return requests, nil
}

func (arr *approvalRequestRepo) GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.ApprovalRequest, error) {
  transaction := tx
  if transaction == nil {
    transaction = arr.db
  }
  var results []*types.ApprovalRequest
  if len(requestIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", requestIDs).
    Find(&results).Error; err != nil {
    arr.log.Error("Failed to fetch approval requests by IDs", "error", err)
    return nil, err
  }
  return results, nil
}

func (arr *approvalRequestRepo) GetPendingByTruckID(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) (*types.ApprovalRequest, error) {
  transaction := tx
  if transaction == nil {
    transaction = arr.db
  }
  var result types.ApprovalRequest
  if err := transaction.WithContext(ctx).
    Where("truck_id = ? AND status = ?", truckID, types.ApprovalStatusPending).
    Order("created_at DESC").
    First(&result).Error; err != nil {
    arr.log.Debug("Failed to fetch pending approval request by truckID", "truckID", truckID, "error", err)
    return nil, err
  }
  return &result, nil
}

func (arr *approvalRequestRepo) GetPending(ctx context.Context, tx *gorm.DB) ([]*types.ApprovalRequest, error) {
  transaction := tx
  if transaction == nil {
    transaction = arr.db
  }
  var results []*types.ApprovalRequest
  if err := transaction.WithContext(ctx).
    Where("status = ?", types.ApprovalStatusPending).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    arr.log.Error("Failed to fetch pending approval requests", "error", err)
    return nil, err
  }
  arr.log.Debug("Fetched pending approval requests", "count", len(results))
  return results, nil
}

func (arr *approvalRequestRepo) GetByRequestedByID(ctx context.Context, tx *gorm.DB, requestedByID uuid.UUID) ([]*types.ApprovalRequest, error) {
  transaction := tx
  if transaction == nil {
    transaction = arr.db
  }
  var results []*types.ApprovalRequest
  if err := transaction.WithContext(ctx).
    Where("requested_by_id = ?", requestedByID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    arr.log.Error("Failed to fetch approval requests by requestedByID", "error", err)
    return nil, err
  }
  return results, nil
}

func (arr *approvalRequestRepo) Update(ctx context.Context, tx *gorm.DB, requests []*types.ApprovalRequest) ([]*types.ApprovalRequest, error) {
  transaction := tx
  if transaction == nil {
    transaction = arr.db
  }
  if len(requests) == 0 {
    return []*types.ApprovalRequest{}, nil
  }
  for _, r := range requests {
    if err := transaction.WithContext(ctx).Save(r).Error; err != nil {
      arr.log.Error("Failed to update approval request", "requestID", r.ID, "error", err)
      return nil, err
    }
  }
  return requests, nil
}
