package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/lifecycle"
  "github.com/yardsync-org/yardsync-backend/internal/services"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
)

type DockHandler struct {
  dockService services.DockService
  hub         *socket.Hub
}

func NewDockHandler(dockService services.DockService, hub *socket.Hub) *DockHandler {
  return &DockHandler{dockService: dockService, hub: hub}
}

func (dh *DockHandler) GetDocks(c *gin.Context) {
  docks, err := dh.dockService.GetDocks(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"docks": docks})
}

func (dh *DockHandler) GetOpenOperations(c *gin.Context) {
  operations, err := dh.dockService.GetOpenOperations(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"operations": operations})
}

func (dh *DockHandler) Assign(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    DockID string `json:"dock_id" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "dock_id is required"})
    return
  }
  dockID, err := parseUUID(req.DockID, "dock_id")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  operation, err := dh.dockService.AssignToDock(c.Request.Context(), truckID, dockID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, dh.hub)
  c.JSON(http.StatusOK, gin.H{"operation": operation})
}

func (dh *DockHandler) Start(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  operation, err := dh.dockService.StartOperation(c.Request.Context(), truckID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, dh.hub)
  c.JSON(http.StatusOK, gin.H{"operation": operation})
}

func (dh *DockHandler) Complete(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Next  string `json:"next" binding:"required"`
    Notes string `json:"notes,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "next is required"})
    return
  }
  next := lifecycle.Status(req.Next)
  if !lifecycle.Valid(next) {
    c.JSON(http.StatusBadRequest, gin.H{"error": "unknown target status"})
    return
  }
  operation, err := dh.dockService.CompleteOperation(c.Request.Context(), truckID, next, req.Notes)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, dh.hub)
  c.JSON(http.StatusOK, gin.H{"operation": operation})
}
