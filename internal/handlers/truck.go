package handlers

import (
  "net/http"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/services"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type TruckHandler struct {
  truckService services.TruckService
  hub          *socket.Hub
}

func NewTruckHandler(truckService services.TruckService, hub *socket.Hub) *TruckHandler {
  return &TruckHandler{truckService: truckService, hub: hub}
}

func (th *TruckHandler) Schedule(c *gin.Context) {
  var req struct {
    VehicleNumber    string    `json:"vehicle_number"`
    ScheduledAt      time.Time `json:"scheduled_at"`
    Transporter      string    `json:"transporter,omitempty"`
    DriverName       string    `json:"driver_name"`
    DriverPhone      string    `json:"driver_phone,omitempty"`
    LicenseNumber    string    `json:"license_number,omitempty"`
    CargoDirection   string    `json:"cargo_direction"`
    CargoDescription string    `json:"cargo_description,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  truck := types.Truck{
    VehicleNumber:    req.VehicleNumber,
    ScheduledAt:      req.ScheduledAt,
    Transporter:      req.Transporter,
    DriverName:       req.DriverName,
    LicenseNumber:    req.LicenseNumber,
    CargoDirection:   types.CargoDirection(req.CargoDirection),
    CargoDescription: req.CargoDescription,
  }
  if req.DriverPhone != "" {
    truck.DriverPhone = &req.DriverPhone
  }
  created, err := th.truckService.ScheduleTruck(c.Request.Context(), &truck)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, th.hub)
  c.JSON(http.StatusOK, gin.H{"truck": created})
}

func (th *TruckHandler) UpdateSchedule(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    ScheduledAt      *time.Time `json:"scheduled_at,omitempty"`
    Transporter      *string    `json:"transporter,omitempty"`
    DriverName       *string    `json:"driver_name,omitempty"`
    DriverPhone      *string    `json:"driver_phone,omitempty"`
    LicenseNumber    *string    `json:"license_number,omitempty"`
    CargoDirection   *string    `json:"cargo_direction,omitempty"`
    CargoDescription *string    `json:"cargo_description,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  update := services.ScheduleUpdate{
    ScheduledAt:      req.ScheduledAt,
    Transporter:      req.Transporter,
    DriverName:       req.DriverName,
    DriverPhone:      req.DriverPhone,
    LicenseNumber:    req.LicenseNumber,
    CargoDescription: req.CargoDescription,
  }
  if req.CargoDirection != nil {
    direction := types.CargoDirection(*req.CargoDirection)
    update.CargoDirection = &direction
  }
  updated, err := th.truckService.UpdateSchedule(c.Request.Context(), truckID, update)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, th.hub)
  c.JSON(http.StatusOK, gin.H{"truck": updated})
}

func (th *TruckHandler) CancelSchedule(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Reason string `json:"reason,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  cancelled, err := th.truckService.CancelSchedule(c.Request.Context(), truckID, req.Reason)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, th.hub)
  c.JSON(http.StatusOK, gin.H{"truck": cancelled})
}

func (th *TruckHandler) GetScheduleForDay(c *gin.Context) {
  day := time.Now()
  if raw := c.Query("day"); raw != "" {
    parsed, err := parseTimeParam(raw)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'day'"})
      return
    }
    day = parsed
  }
  trucks, err := th.truckService.GetScheduleForDay(c.Request.Context(), day)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"trucks": trucks})
}

func (th *TruckHandler) GetTruck(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  truck, err := th.truckService.GetTruckByID(c.Request.Context(), truckID)
  if err != nil {
    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"truck": truck})
}

func (th *TruckHandler) GetAllTrucks(c *gin.Context) {
  trucks, err := th.truckService.GetAllTrucks(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  if status := c.Query("status"); status != "" {
    filtered := make([]*types.Truck, 0, len(trucks))
    for _, truck := range trucks {
      if string(truck.Status) == status {
        filtered = append(filtered, truck)
      }
    }
    trucks = filtered
  }
  c.JSON(http.StatusOK, gin.H{"trucks": trucks})
}
