package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/services"
)

type YardHandler struct {
  yardService services.YardService
}

func NewYardHandler(yardService services.YardService) *YardHandler {
  return &YardHandler{yardService: yardService}
}

func (yh *YardHandler) GetActiveTrucks(c *gin.Context) {
  trucks, err := yh.yardService.GetActiveTrucks(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"trucks": trucks})
}

func (yh *YardHandler) GetTruckTimeline(c *gin.Context) {
  truckID, err := parseUUIDParam(c, "truckID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  records, err := yh.yardService.GetTruckTimeline(c.Request.Context(), truckID)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"records": records})
}

func (yh *YardHandler) GetOpenTrackingRecords(c *gin.Context) {
  records, err := yh.yardService.GetOpenTrackingRecords(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"records": records})
}

func (yh *YardHandler) GetClosedTrackingRecords(c *gin.Context) {
  from, to, err := parseWindow(c)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  records, err := yh.yardService.GetClosedTrackingRecordsBetween(c.Request.Context(), from, to)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"records": records})
}
