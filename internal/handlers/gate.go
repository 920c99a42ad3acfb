package handlers

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/services"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
)

type GateHandler struct {
  gateService services.GateService
  hub         *socket.Hub
}

func NewGateHandler(gateService services.GateService, hub *socket.Hub) *GateHandler {
  return &GateHandler{gateService: gateService, hub: hub}
}

func (gh *GateHandler) GetExpectedTrucks(c *gin.Context) {
  trucks, err := gh.gateService.GetExpectedTrucks(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"trucks": trucks})
}

func (gh *GateHandler) Lookup(c *gin.Context) {
  vehicleNumber := strings.TrimSpace(c.Query("vehicle_number"))
  if vehicleNumber == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle_number is required"})
    return
  }
  truck, err := gh.gateService.LookupByVehicleNumber(c.Request.Context(), vehicleNumber)
  if err != nil {
    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"truck": truck})
}

func (gh *GateHandler) Verify(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Notes string `json:"notes,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  truck, err := gh.gateService.VerifyTruck(c.Request.Context(), truckID, req.Notes)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, gh.hub)
  c.JSON(http.StatusOK, gin.H{"truck": truck})
}

func (gh *GateHandler) Reject(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Reason string `json:"reason" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
    return
  }
  truck, err := gh.gateService.RejectTruck(c.Request.Context(), truckID, req.Reason)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, gh.hub)
  c.JSON(http.StatusOK, gin.H{"truck": truck})
}

func (gh *GateHandler) SendToParking(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  truck, err := gh.gateService.SendToParking(c.Request.Context(), truckID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, gh.hub)
  c.JSON(http.StatusOK, gin.H{"truck": truck})
}

func (gh *GateHandler) GateOut(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  truck, err := gh.gateService.GateOutTruck(c.Request.Context(), truckID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, gh.hub)
  c.JSON(http.StatusOK, gin.H{"truck": truck})
}
