package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/requestdata"
  "github.com/yardsync-org/yardsync-backend/internal/templates"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type ApprovalService interface {
  ListPending(ctx context.Context) ([]*types.ApprovalRequest, error)
  Decide(ctx context.Context, requestID uuid.UUID, approve bool, reason string) (*types.ApprovalRequest, error)
}

type approvalService struct {
  db                  *gorm.DB
  log                 *logger.Logger
  approvalRequestRepo repos.ApprovalRequestRepo
  truckRepo           repos.TruckRepo
  userRepo            repos.UserRepo
  yardService         YardService
  emailService        EmailService
  textService         TextService
}

func NewApprovalService(
  db                  *gorm.DB,
  log                 *logger.Logger,
  approvalRequestRepo repos.ApprovalRequestRepo,
  truckRepo           repos.TruckRepo,
  userRepo            repos.UserRepo,
  yardService         YardService,
  emailService        EmailService,
  textService         TextService,
) ApprovalService {
  serviceLog := log.With("service", "ApprovalService")
  return &approvalService{
    db:                  db,
    log:                 serviceLog,
    approvalRequestRepo: approvalRequestRepo,
    truckRepo:           truckRepo,
    userRepo:            userRepo,
    yardService:         yardService,
    emailService:        emailService,
    textService:         textService,
  }
}

func (as *approvalService) ListPending(ctx context.Context) ([]*types.ApprovalRequest, error) {
  return as.approvalRequestRepo.GetPending(ctx, nil)
}

// Decide closes the approval request and moves the truck out of
// pending_approval in the same transaction. Notifications go out afterwards
// and never fail the decision.
func (as *approvalService) Decide(ctx context.Context, requestID uuid.UUID, approve bool, reason string) (*types.ApprovalRequest, error) {
  as.log.Info("Starting Decide Approval Request now...", "requestID", requestID, "approve", approve)
  var decided *types.ApprovalRequest
  var truck *types.Truck
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    //1) Load the pending request
    requests, fRErr := as.approvalRequestRepo.GetByIDs(ctx, tx, []uuid.UUID{requestID})
    if fRErr != nil {
      as.log.Warn("Failed to fetch approval request, Cannot proceed further. Returning error.", "error", fRErr)
      return fmt.Errorf("Failed to fetch approval request: %w", fRErr)
    }
    if len(requests) == 0 {
      as.log.Warn("No approval request found with that id, Cannot proceed further.", "requestID", requestID)
      return fmt.Errorf("No approval request found with id '%s'", requestID)
    }
    request := requests[0]
    if request.Status != types.ApprovalStatusPending {
      as.log.Warn("Approval request has already been decided, Cannot proceed further.", "requestID", requestID, "status", request.Status)
      return fmt.Errorf("approval request is already '%s'", request.Status)
    }

    //2) Record the decision
    now := time.Now()
    if approve {
      request.Status = types.ApprovalStatusApproved
    } else {
      request.Status = types.ApprovalStatusRejected
    }
    request.Reason = reason
    request.DecidedAt = &now
    if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
      uid := rd.UserID
      request.DecidedByID = &uid
    }
    if _, uRErr := as.approvalRequestRepo.Update(ctx, tx, []*types.ApprovalRequest{request}); uRErr != nil {
      as.log.Warn("Failed to update approval request, Cannot proceed further. Returning error.", "error", uRErr)
      return fmt.Errorf("Failed to update approval request: %w", uRErr)
    }

    //3) Flip the truck in the same transaction
    target := lifecycle.StatusScheduled
    action := "schedule_approved"
    if !approve {
      target = lifecycle.StatusRejected
      action = "schedule_rejected"
    }
    var tErr error
    truck, tErr = as.yardService.ApplyTransition(ctx, tx, request.TruckID, target, types.AuditDomainTruckScheduling, action, reason)
    if tErr != nil {
      return tErr
    }
    decided = request
    return nil
  })
  if err != nil {
    return nil, err
  }

  //4) Notify, best effort only
  as.notifyDecision(ctx, decided, truck)
  as.log.Info("Successfully decided approval request :)", "requestID", requestID, "status", decided.Status)
  return decided, nil
}

func (as *approvalService) notifyDecision(ctx context.Context, request *types.ApprovalRequest, truck *types.Truck) {
  verdict := "approved"
  if request.Status == types.ApprovalStatusRejected {
    verdict = "rejected"
  }
  if truck.DriverPhone != nil && *truck.DriverPhone != "" {
    msg := fmt.Sprintf("Your visit scheduled for %s has been %s.", truck.ScheduledAt.Format("Jan 2 15:04"), verdict)
    if request.Reason != "" {
      msg = fmt.Sprintf("%s Reason: %s", msg, request.Reason)
    }
    if tErr := as.textService.SendDriverStatusText(ctx, *truck.DriverPhone, truck.VehicleNumber, msg); tErr != nil {
      as.log.Warn("Failed to text driver about approval decision", "error", tErr)
    }
  }
  if request.RequestedByID != nil {
    requesters, fUErr := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{*request.RequestedByID})
    if fUErr != nil || len(requesters) == 0 {
      as.log.Warn("Failed to fetch requester for approval notification", "error", fUErr)
      return
    }
    subject := fmt.Sprintf("Truck %s schedule %s", truck.VehicleNumber, verdict)
    plain := fmt.Sprintf("The schedule request for truck %s (%s) has been %s.", truck.VehicleNumber, truck.ScheduledAt.Format(time.RFC1123), verdict)
    if request.Reason != "" {
      plain = fmt.Sprintf("%s Reason: %s", plain, request.Reason)
    }
    html, hErr := templates.RenderNotificationHTML(templates.NotificationEmailData{
      RecipientName:    requesters[0].FirstName,
      NotificationType: templates.NotificationTypeApproval,
      Heading:          subject,
      Lines:            []string{plain},
    })
    if hErr != nil {
      as.log.Warn("Failed to render approval notification email", "error", hErr)
      html = fmt.Sprintf("<p>%s</p>", plain)
    }
    if eErr := as.emailService.SendEmail(ctx, requesters[0].Email, subject, plain, html, "approval"); eErr != nil {
      as.log.Warn("Failed to email requester about approval decision", "error", eErr)
    }
  }
}
