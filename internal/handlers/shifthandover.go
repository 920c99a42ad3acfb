package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yardsync-org/yardsync-backend/internal/services"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
)

type ShiftHandoverHandler struct {
  shiftHandoverService services.ShiftHandoverService
  hub                  *socket.Hub
}

func NewShiftHandoverHandler(shiftHandoverService services.ShiftHandoverService, hub *socket.Hub) *ShiftHandoverHandler {
  return &ShiftHandoverHandler{shiftHandoverService: shiftHandoverService, hub: hub}
}

func (sh *ShiftHandoverHandler) Create(c *gin.Context) {
  var req struct {
    ShiftName      string `json:"shift_name" binding:"required"`
    Notes          string `json:"notes,omitempty"`
    IncomingUserID string `json:"incoming_user_id,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "shift_name is required"})
    return
  }
  var incomingUserID *uuid.UUID
  if req.IncomingUserID != "" {
    parsed, err := uuid.Parse(req.IncomingUserID)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incoming_user_id"})
      return
    }
    incomingUserID = &parsed
  }
  handover, err := sh.shiftHandoverService.CreateHandover(c.Request.Context(), req.ShiftName, req.Notes, incomingUserID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, sh.hub)
  c.JSON(http.StatusOK, gin.H{"handover": handover})
}

func (sh *ShiftHandoverHandler) Acknowledge(c *gin.Context) {
  handoverID, err := parseUUIDParam(c, "handoverID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  handover, err := sh.shiftHandoverService.AcknowledgeHandover(c.Request.Context(), handoverID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, sh.hub)
  c.JSON(http.StatusOK, gin.H{"handover": handover})
}

func (sh *ShiftHandoverHandler) GetMine(c *gin.Context) {
  handovers, err := sh.shiftHandoverService.GetMyPendingHandovers(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"handovers": handovers})
}

func (sh *ShiftHandoverHandler) GetRecent(c *gin.Context) {
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
  handovers, err := sh.shiftHandoverService.GetRecentHandovers(c.Request.Context(), limit)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"handovers": handovers})
}
