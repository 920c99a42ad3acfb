package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
  "github.com/yardsync-org/yardsync-backend/internal/services"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
)

type WeighbridgeHandler struct {
  weighbridgeService services.WeighbridgeService
  hub                *socket.Hub
}

func NewWeighbridgeHandler(weighbridgeService services.WeighbridgeService, hub *socket.Hub) *WeighbridgeHandler {
  return &WeighbridgeHandler{weighbridgeService: weighbridgeService, hub: hub}
}

func (wh *WeighbridgeHandler) GetQueue(c *gin.Context) {
  entries, err := wh.weighbridgeService.GetQueue(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (wh *WeighbridgeHandler) MoveToWeighbridge(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    WeighbridgeID string `json:"weighbridge_id,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  var weighbridgeID *uuid.UUID
  if req.WeighbridgeID != "" {
    parsed, pErr := uuid.Parse(req.WeighbridgeID)
    if pErr != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weighbridge_id"})
      return
    }
    weighbridgeID = &parsed
  }
  truck, err := wh.weighbridgeService.MoveToWeighbridge(c.Request.Context(), truckID, weighbridgeID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, wh.hub)
  c.JSON(http.StatusOK, gin.H{"truck": truck})
}

func (wh *WeighbridgeHandler) CaptureWeight(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Kind     string `json:"kind" binding:"required"`
    WeightKg int    `json:"weight_kg" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "kind and weight_kg are required"})
    return
  }
  entry, err := wh.weighbridgeService.CaptureWeight(c.Request.Context(), truckID, services.WeightKind(req.Kind), req.WeightKg)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, wh.hub)
  c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (wh *WeighbridgeHandler) Release(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    To string `json:"to" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "to is required"})
    return
  }
  to := lifecycle.Status(req.To)
  if !lifecycle.Valid(to) {
    c.JSON(http.StatusBadRequest, gin.H{"error": "unknown target status"})
    return
  }
  truck, err := wh.weighbridgeService.ReleaseFromWeighbridge(c.Request.Context(), truckID, to)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, wh.hub)
  c.JSON(http.StatusOK, gin.H{"truck": truck})
}
