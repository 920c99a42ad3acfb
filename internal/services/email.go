package services

import (
  "context"
  "fmt"
  "os"

  "github.com/sendgrid/sendgrid-go"
  "github.com/sendgrid/sendgrid-go/helpers/mail"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
)

type EmailService interface {
  SendEmail(ctx context.Context, toEmail string, subject string, plainText string, htmlContent string, emailType string) error
}

type emailService struct {
  log               *logger.Logger
  client            *sendgrid.Client
  fromSupportEmail  string
  fromApprovalEmail string
  fromHandoverEmail string
}

func NewEmailService(log *logger.Logger) (EmailService, error) {
  serviceLog := log.With("Service", "EmailService")
  apiKey := os.Getenv("SENDGRID_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("Missing SENDGRID_API_KEY environment variable")
  }
  fromSupport := os.Getenv("SENDGRID_SUPPORT_EMAIL")
  if fromSupport == "" {
    serviceLog.Warn("SENDGRID_SUPPORT_EMAIL not set; using fallback no-reply@yardsync.io")
    fromSupport = "no-reply@yardsync.io"
  }
  fromApproval := os.Getenv("SENDGRID_APPROVAL_EMAIL")
  if fromApproval == "" {
    serviceLog.Warn("SENDGRID_APPROVAL_EMAIL not set; using fallback approvals@yardsync.io")
    fromApproval = "approvals@yardsync.io"
  }
  fromHandover := os.Getenv("SENDGRID_HANDOVER_EMAIL")
  if fromHandover == "" {
    serviceLog.Warn("SENDGRID_HANDOVER_EMAIL not set; using fallback handovers@yardsync.io")
    fromHandover = "handovers@yardsync.io"
  }
  client := sendgrid.NewSendClient(apiKey)

  return &emailService{
    log:               serviceLog,
    client:            client,
    fromSupportEmail:  fromSupport,
    fromApprovalEmail: fromApproval,
    fromHandoverEmail: fromHandover,
  }, nil
}

func (es *emailService) SendEmail(ctx context.Context, toEmail string, subject string, plainText string, htmlContent string, emailType string) error {
  var fromName = "YardSync"
  var fromEmail = es.fromSupportEmail
  switch emailType {
  case "approval":
    fromName = "YardSync Approvals"
    fromEmail = es.fromApprovalEmail
  case "handover":
    fromName = "YardSync Handovers"
    fromEmail = es.fromHandoverEmail
  case "support":
    fromName = "YardSync Support"
    fromEmail = es.fromSupportEmail
  default:

  }
  from := mail.NewEmail(fromName, fromEmail)
  to := mail.NewEmail("", toEmail)
  message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
  response, err := es.client.SendWithContext(ctx, message)
  if err != nil {
    es.log.Warn("Sendgrid email send failed", "error", err)
    return err
  }
  es.log.Info("Email sent", "to", toEmail, "statusCode", response.StatusCode)
  return nil
}
