package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/normalization"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/templates"
  "github.com/yardsync-org/yardsync-backend/internal/types"
  "github.com/yardsync-org/yardsync-backend/internal/utils"
)

type ContactService interface {
  SubmitContactForm(ctx context.Context, name, email, subject, message string) (*types.ContactSubmission, error)
  GetRecentSubmissions(ctx context.Context, limit int) ([]*types.ContactSubmission, error)
}

type contactService struct {
  db                    *gorm.DB
  log                   *logger.Logger
  contactSubmissionRepo repos.ContactSubmissionRepo
  emailService          EmailService
  supportInboxEmail     string
}

func NewContactService(db *gorm.DB, log *logger.Logger, contactSubmissionRepo repos.ContactSubmissionRepo, emailService EmailService) ContactService {
  serviceLog := log.With("service", "ContactService")
  supportInbox := utils.GetEnv("SUPPORT_INBOX_EMAIL", "support@yardsync.io", serviceLog)
  return &contactService{
    db:                    db,
    log:                   serviceLog,
    contactSubmissionRepo: contactSubmissionRepo,
    emailService:          emailService,
    supportInboxEmail:     supportInbox,
  }
}

// SubmitContactForm is for the unauthenticated contact page. The row is the
// source of truth; forwarding to the support inbox is best effort.
func (cs *contactService) SubmitContactForm(ctx context.Context, name, email, subject, message string) (*types.ContactSubmission, error) {
  cs.log.Info("Starting Submit Contact Form now...")
  name = normalization.ParseInputString(name)
  email = strings.ToLower(normalization.ParseInputString(email))
  subject = normalization.ParseInputString(subject)
  message = strings.TrimSpace(message)
  if name == "" || email == "" || message == "" {
    return nil, fmt.Errorf("name, email and message are all required")
  }
  if !strings.Contains(email, "@") {
    return nil, fmt.Errorf("'%s' is not a valid email address", email)
  }

  submission := &types.ContactSubmission{
    ID:      uuid.New(),
    Name:    name,
    Email:   email,
    Subject: subject,
    Message: message,
  }
  if _, cErr := cs.contactSubmissionRepo.Create(ctx, nil, []*types.ContactSubmission{submission}); cErr != nil {
    cs.log.Warn("Failed to create contact submission, Cannot proceed further. Returning error.", "error", cErr)
    return nil, fmt.Errorf("Failed to create contact submission: %w", cErr)
  }

  forwardSubject := subject
  if forwardSubject == "" {
    forwardSubject = "New contact form submission"
  }
  plain := fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message)
  html, hErr := templates.RenderNotificationHTML(templates.NotificationEmailData{
    NotificationType: templates.NotificationTypeSupport,
    Heading:          forwardSubject,
    Lines: []string{
      fmt.Sprintf("From: %s <%s>", name, email),
      message,
    },
  })
  if hErr != nil {
    cs.log.Warn("Failed to render contact notification email.", "error", hErr)
    html = fmt.Sprintf("<p>From: %s &lt;%s&gt;</p><p>%s</p>", name, email, message)
  }
  if sErr := cs.emailService.SendEmail(ctx, cs.supportInboxEmail, forwardSubject, plain, html, "support"); sErr != nil {
    cs.log.Warn("Failed to forward contact submission to support.", "error", sErr)
  }

  cs.log.Info("Successfully recorded contact submission :)", "submissionID", submission.ID)
  return submission, nil
}

func (cs *contactService) GetRecentSubmissions(ctx context.Context, limit int) ([]*types.ContactSubmission, error) {
  if limit <= 0 || limit > 200 {
    limit = 50
  }
  return cs.contactSubmissionRepo.GetRecent(ctx, nil, limit)
}
