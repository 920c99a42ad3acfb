package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/eventdata"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/normalization"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/requestdata"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
  "github.com/yardsync-org/yardsync-backend/internal/templates"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

// handoverOpenItems is the snapshot stored in a handover's OpenItems column.
type handoverOpenItems struct {
  ActiveTrucks       []handoverTruckItem `json:"activeTrucks"`
  OpenWeighments     int                 `json:"openWeighments"`
  OpenDockOperations int                 `json:"openDockOperations"`
}

type handoverTruckItem struct {
  TruckID         uuid.UUID `json:"truckID"`
  VehicleNumber   string    `json:"vehicleNumber"`
  Status          string    `json:"status"`
  CurrentLocation string    `json:"currentLocation"`
}

type ShiftHandoverService interface {
  CreateHandover(ctx context.Context, shiftName string, notes string, incomingUserID *uuid.UUID) (*types.ShiftHandover, error)
  AcknowledgeHandover(ctx context.Context, handoverID uuid.UUID) (*types.ShiftHandover, error)
  GetMyPendingHandovers(ctx context.Context) ([]*types.ShiftHandover, error)
  GetRecentHandovers(ctx context.Context, limit int) ([]*types.ShiftHandover, error)
}

type shiftHandoverService struct {
  db                *gorm.DB
  log               *logger.Logger
  shiftHandoverRepo repos.ShiftHandoverRepo
  truckRepo         repos.TruckRepo
  weighbridgeEntryRepo repos.WeighbridgeEntryRepo
  dockOperationRepo repos.DockOperationRepo
  userRepo          repos.UserRepo
  emailService      EmailService
}

func NewShiftHandoverService(
  db                *gorm.DB,
  log               *logger.Logger,
  shiftHandoverRepo repos.ShiftHandoverRepo,
  truckRepo         repos.TruckRepo,
  weighbridgeEntryRepo repos.WeighbridgeEntryRepo,
  dockOperationRepo repos.DockOperationRepo,
  userRepo          repos.UserRepo,
  emailService      EmailService,
) ShiftHandoverService {
  serviceLog := log.With("service", "ShiftHandoverService")
  return &shiftHandoverService{
    db:                db,
    log:               serviceLog,
    shiftHandoverRepo: shiftHandoverRepo,
    truckRepo:         truckRepo,
    weighbridgeEntryRepo: weighbridgeEntryRepo,
    dockOperationRepo: dockOperationRepo,
    userRepo:          userRepo,
    emailService:      emailService,
  }
}

// CreateHandover snapshots the yard's open work into OpenItems so the
// incoming operator sees the state the shift was left in even after the
// trucks move on.
func (shs *shiftHandoverService) CreateHandover(ctx context.Context, shiftName string, notes string, incomingUserID *uuid.UUID) (*types.ShiftHandover, error) {
  shs.log.Info("Starting Create Handover now...", "shiftName", shiftName)
  shiftName = normalization.ParseInputString(shiftName)
  if shiftName == "" {
    return nil, fmt.Errorf("shift name cannot be empty")
  }
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("no signed-in user on the request")
  }

  var created *types.ShiftHandover
  err := shs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    //1) Validate the incoming user if one was named.
    if incomingUserID != nil {
      users, uErr := shs.userRepo.GetByIDs(ctx, tx, []uuid.UUID{*incomingUserID})
      if uErr != nil {
        shs.log.Warn("Failed to fetch incoming user, Cannot proceed further. Returning error.", "error", uErr)
        return fmt.Errorf("Failed to fetch incoming user: %w", uErr)
      }
      if len(users) == 0 {
        return fmt.Errorf("No user found with id '%s'", *incomingUserID)
      }
    }

    //2) Snapshot the open work.
    activeTrucks, tErr := shs.truckRepo.GetActive(ctx, tx)
    if tErr != nil {
      shs.log.Warn("Failed to fetch active trucks, Cannot proceed further. Returning error.", "error", tErr)
      return fmt.Errorf("Failed to fetch active trucks: %w", tErr)
    }
    openEntries, eErr := shs.weighbridgeEntryRepo.GetOpen(ctx, tx)
    if eErr != nil {
      shs.log.Warn("Failed to fetch open weighbridge entries, Cannot proceed further. Returning error.", "error", eErr)
      return fmt.Errorf("Failed to fetch open weighbridge entries: %w", eErr)
    }
    openOperations, oErr := shs.dockOperationRepo.GetOpen(ctx, tx)
    if oErr != nil {
      shs.log.Warn("Failed to fetch open dock operations, Cannot proceed further. Returning error.", "error", oErr)
      return fmt.Errorf("Failed to fetch open dock operations: %w", oErr)
    }
    snapshot := handoverOpenItems{
      ActiveTrucks:       make([]handoverTruckItem, 0, len(activeTrucks)),
      OpenWeighments:     len(openEntries),
      OpenDockOperations: len(openOperations),
    }
    for _, truck := range activeTrucks {
      snapshot.ActiveTrucks = append(snapshot.ActiveTrucks, handoverTruckItem{
        TruckID:         truck.ID,
        VehicleNumber:   truck.VehicleNumber,
        Status:          string(truck.Status),
        CurrentLocation: truck.CurrentLocation,
      })
    }
    openItems, mErr := json.Marshal(snapshot)
    if mErr != nil {
      shs.log.Warn("Failed to marshal open items, Cannot proceed further. Returning error.", "error", mErr)
      return fmt.Errorf("Failed to marshal open items: %w", mErr)
    }

    //3) Create the handover.
    handover := &types.ShiftHandover{
      ID:             uuid.New(),
      OutgoingUserID: rd.UserID,
      IncomingUserID: incomingUserID,
      ShiftName:      shiftName,
      Notes:          notes,
      OpenItems:      datatypes.JSON(openItems),
    }
    if _, cErr := shs.shiftHandoverRepo.Create(ctx, tx, []*types.ShiftHandover{handover}); cErr != nil {
      shs.log.Warn("Failed to create shift handover, Cannot proceed further. Returning error.", "error", cErr)
      return fmt.Errorf("Failed to create shift handover: %w", cErr)
    }
    created = handover
    return nil
  })
  if err != nil {
    return nil, err
  }

  if ed := eventdata.GetEventData(ctx); ed != nil {
    ed.AppendMessage(socket.Message{Channel: socket.ChannelHandovers, Payload: created})
    if incomingUserID != nil {
      ed.AppendMessage(socket.Message{Channel: socket.UserChannel(*incomingUserID), Payload: created})
    }
  }
  shs.notifyIncomingUser(ctx, created)
  shs.log.Info("Successfully created shift handover :)", "handoverID", created.ID)
  return created, nil
}

// notifyIncomingUser is best effort. The handover is already committed; a
// failed email only gets logged.
func (shs *shiftHandoverService) notifyIncomingUser(ctx context.Context, handover *types.ShiftHandover) {
  if handover.IncomingUserID == nil {
    return
  }
  users, uErr := shs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{*handover.IncomingUserID})
  if uErr != nil || len(users) == 0 {
    shs.log.Warn("Failed to fetch incoming user for handover notification.", "error", uErr)
    return
  }
  incoming := users[0]
  subject := fmt.Sprintf("Shift handover: %s", handover.ShiftName)
  plain := fmt.Sprintf("Hi %s,\n\nA shift handover for '%s' is waiting for your acknowledgement.\n\nNotes:\n%s\n", incoming.FirstName, handover.ShiftName, handover.Notes)
  lines := []string{fmt.Sprintf("A shift handover for '%s' is waiting for your acknowledgement.", handover.ShiftName)}
  if handover.Notes != "" {
    lines = append(lines, fmt.Sprintf("Notes: %s", handover.Notes))
  }
  html, hErr := templates.RenderNotificationHTML(templates.NotificationEmailData{
    RecipientName:    incoming.FirstName,
    NotificationType: templates.NotificationTypeHandover,
    Heading:          subject,
    Lines:            lines,
  })
  if hErr != nil {
    shs.log.Warn("Failed to render handover notification email.", "error", hErr)
    html = fmt.Sprintf("<p>%s</p>", plain)
  }
  if sErr := shs.emailService.SendEmail(ctx, incoming.Email, subject, plain, html, "handover"); sErr != nil {
    shs.log.Warn("Failed to send handover notification email.", "error", sErr)
  }
}

func (shs *shiftHandoverService) AcknowledgeHandover(ctx context.Context, handoverID uuid.UUID) (*types.ShiftHandover, error) {
  shs.log.Info("Starting Acknowledge Handover now...", "handoverID", handoverID)
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("no signed-in user on the request")
  }
  var acknowledged *types.ShiftHandover
  err := shs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    handovers, hErr := shs.shiftHandoverRepo.GetByIDs(ctx, tx, []uuid.UUID{handoverID})
    if hErr != nil {
      shs.log.Warn("Failed to fetch shift handover, Cannot proceed further. Returning error.", "error", hErr)
      return fmt.Errorf("Failed to fetch shift handover: %w", hErr)
    }
    if len(handovers) == 0 {
      return fmt.Errorf("No shift handover found with id '%s'", handoverID)
    }
    handover := handovers[0]
    if handover.Acknowledged {
      return fmt.Errorf("shift handover has already been acknowledged")
    }
    if handover.IncomingUserID != nil && *handover.IncomingUserID != rd.UserID {
      shs.log.Warn("Handover is addressed to a different user, Cannot proceed further.", "handoverID", handoverID, "userID", rd.UserID)
      return fmt.Errorf("this handover is addressed to a different user")
    }

    now := time.Now()
    handover.Acknowledged = true
    handover.AcknowledgedAt = &now
    if handover.IncomingUserID == nil {
      uid := rd.UserID
      handover.IncomingUserID = &uid
    }
    if _, uErr := shs.shiftHandoverRepo.Update(ctx, tx, []*types.ShiftHandover{handover}); uErr != nil {
      shs.log.Warn("Failed to update shift handover, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to update shift handover: %w", uErr)
    }
    acknowledged = handover
    return nil
  })
  if err != nil {
    return nil, err
  }
  if ed := eventdata.GetEventData(ctx); ed != nil {
    ed.AppendMessage(socket.Message{Channel: socket.ChannelHandovers, Payload: acknowledged})
  }
  shs.log.Info("Successfully acknowledged shift handover :)", "handoverID", handoverID)
  return acknowledged, nil
}

func (shs *shiftHandoverService) GetMyPendingHandovers(ctx context.Context) ([]*types.ShiftHandover, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("no signed-in user on the request")
  }
  return shs.shiftHandoverRepo.GetUnacknowledgedByIncomingUserID(ctx, nil, rd.UserID)
}

func (shs *shiftHandoverService) GetRecentHandovers(ctx context.Context, limit int) ([]*types.ShiftHandover, error) {
  if limit <= 0 || limit > 200 {
    limit = 50
  }
  return shs.shiftHandoverRepo.GetRecent(ctx, nil, limit)
}
