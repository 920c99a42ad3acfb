package handlers

import (
  "fmt"
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/services"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

type ReportHandler struct {
  reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
  return &ReportHandler{reportService: reportService}
}

func parseDomainQuery(c *gin.Context) (*types.AuditDomain, error) {
  raw := c.Query("domain")
  if raw == "" {
    return nil, nil
  }
  domain := types.AuditDomain(raw)
  switch domain {
  case types.AuditDomainGateGuard, types.AuditDomainWeighbridge,
    types.AuditDomainTruckScheduling, types.AuditDomainDockOperations:
    return &domain, nil
  }
  return nil, fmt.Errorf("unknown domain '%s'", raw)
}

func (rh *ReportHandler) GetAuditRecords(c *gin.Context) {
  domain, err := parseDomainQuery(c)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  from, to, err := parseWindow(c)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  records, err := rh.reportService.GetAuditRecords(c.Request.Context(), domain, from, to)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"records": records})
}

func (rh *ReportHandler) GetRecentAuditRecords(c *gin.Context) {
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
  records, err := rh.reportService.GetRecentAuditRecords(c.Request.Context(), limit)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"records": records})
}

func (rh *ReportHandler) writeCSV(c *gin.Context, data []byte, filename string) {
  if c.Query("upload") == "true" {
    url, err := rh.reportService.UploadExport(c.Request.Context(), filename, data)
    if err != nil {
      c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
      return
    }
    c.JSON(http.StatusOK, gin.H{"url": url, "filename": filename})
    return
  }
  c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
  c.Data(http.StatusOK, "text/csv", data)
}

func (rh *ReportHandler) ExportAuditCSV(c *gin.Context) {
  domain, err := parseDomainQuery(c)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  from, to, err := parseWindow(c)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  data, filename, err := rh.reportService.ExportAuditCSV(c.Request.Context(), domain, from, to)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  rh.writeCSV(c, data, filename)
}

func (rh *ReportHandler) ExportWeighbridgeRegisterCSV(c *gin.Context) {
  from, to, err := parseWindow(c)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  data, filename, err := rh.reportService.ExportWeighbridgeRegisterCSV(c.Request.Context(), from, to)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  rh.writeCSV(c, data, filename)
}

func (rh *ReportHandler) ExportPlantTrackingCSV(c *gin.Context) {
  from, to, err := parseWindow(c)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  data, filename, err := rh.reportService.ExportPlantTrackingCSV(c.Request.Context(), from, to)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  rh.writeCSV(c, data, filename)
}
