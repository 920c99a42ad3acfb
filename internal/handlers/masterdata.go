package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/services"
)

type MasterDataHandler struct {
  masterDataService services.MasterDataService
}

func NewMasterDataHandler(masterDataService services.MasterDataService) *MasterDataHandler {
  return &MasterDataHandler{masterDataService: masterDataService}
}

func (mh *MasterDataHandler) GetDocks(c *gin.Context) {
  docks, err := mh.masterDataService.GetDocks(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"docks": docks})
}

func (mh *MasterDataHandler) CreateDock(c *gin.Context) {
  var req struct {
    Name     string `json:"name" binding:"required"`
    DockType string `json:"dock_type" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "name and dock_type are required"})
    return
  }
  dock, err := mh.masterDataService.CreateDock(c.Request.Context(), req.Name, req.DockType)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"dock": dock})
}

func (mh *MasterDataHandler) UpdateDock(c *gin.Context) {
  dockID, err := parseUUIDParam(c, "dockID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Name     *string `json:"name,omitempty"`
    DockType *string `json:"dock_type,omitempty"`
    IsActive *bool   `json:"is_active,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  dock, err := mh.masterDataService.UpdateDock(c.Request.Context(), dockID, req.Name, req.DockType, req.IsActive)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"dock": dock})
}

// ActivateDock makes the chosen dock the single active one and returns the
// refreshed dock list so the admin screen can redraw every toggle at once.
func (mh *MasterDataHandler) ActivateDock(c *gin.Context) {
  dockID, err := parseUUIDParam(c, "dockID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  docks, err := mh.masterDataService.ActivateDock(c.Request.Context(), dockID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"docks": docks})
}

func (mh *MasterDataHandler) DeleteDock(c *gin.Context) {
  dockID, err := parseUUIDParam(c, "dockID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  if err := mh.masterDataService.DeleteDock(c.Request.Context(), dockID); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"message": "dock deleted"})
}

func (mh *MasterDataHandler) GetWeighbridges(c *gin.Context) {
  weighbridges, err := mh.masterDataService.GetWeighbridges(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"weighbridges": weighbridges})
}

func (mh *MasterDataHandler) CreateWeighbridge(c *gin.Context) {
  var req struct {
    Name       string `json:"name" binding:"required"`
    CapacityKg int    `json:"capacity_kg"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
    return
  }
  weighbridge, err := mh.masterDataService.CreateWeighbridge(c.Request.Context(), req.Name, req.CapacityKg)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"weighbridge": weighbridge})
}

func (mh *MasterDataHandler) UpdateWeighbridge(c *gin.Context) {
  weighbridgeID, err := parseUUIDParam(c, "weighbridgeID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Name       *string `json:"name,omitempty"`
    CapacityKg *int    `json:"capacity_kg,omitempty"`
    IsActive   *bool   `json:"is_active,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  weighbridge, err := mh.masterDataService.UpdateWeighbridge(c.Request.Context(), weighbridgeID, req.Name, req.CapacityKg, req.IsActive)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"weighbridge": weighbridge})
}

func (mh *MasterDataHandler) DeleteWeighbridge(c *gin.Context) {
  weighbridgeID, err := parseUUIDParam(c, "weighbridgeID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  if err := mh.masterDataService.DeleteWeighbridge(c.Request.Context(), weighbridgeID); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"message": "weighbridge deleted"})
}
