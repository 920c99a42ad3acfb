package services

import (
  "bytes"
  "context"
  "encoding/csv"
  "fmt"
  "strconv"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/types"
)

const exportTimeLayout = "2006-01-02 15:04:05"

type ReportService interface {
  GetAuditRecords(ctx context.Context, domain *types.AuditDomain, from, to time.Time) ([]*types.AuditRecord, error)
  GetRecentAuditRecords(ctx context.Context, limit int) ([]*types.AuditRecord, error)
  ExportAuditCSV(ctx context.Context, domain *types.AuditDomain, from, to time.Time) ([]byte, string, error)
  ExportWeighbridgeRegisterCSV(ctx context.Context, from, to time.Time) ([]byte, string, error)
  ExportPlantTrackingCSV(ctx context.Context, from, to time.Time) ([]byte, string, error)
  UploadExport(ctx context.Context, filename string, data []byte) (string, error)
}

type reportService struct {
  db                   *gorm.DB
  log                  *logger.Logger
  auditRepo            repos.AuditRepo
  weighbridgeEntryRepo repos.WeighbridgeEntryRepo
  plantTrackingRepo    repos.PlantTrackingRepo
  bucketService        BucketService
}

func NewReportService(
  db                   *gorm.DB,
  log                  *logger.Logger,
  auditRepo            repos.AuditRepo,
  weighbridgeEntryRepo repos.WeighbridgeEntryRepo,
  plantTrackingRepo    repos.PlantTrackingRepo,
  bucketService        BucketService,
) ReportService {
  serviceLog := log.With("service", "ReportService")
  return &reportService{
    db:                   db,
    log:                  serviceLog,
    auditRepo:            auditRepo,
    weighbridgeEntryRepo: weighbridgeEntryRepo,
    plantTrackingRepo:    plantTrackingRepo,
    bucketService:        bucketService,
  }
}

func (rs *reportService) GetAuditRecords(ctx context.Context, domain *types.AuditDomain, from, to time.Time) ([]*types.AuditRecord, error) {
  if domain != nil {
    return rs.auditRepo.GetByDomainBetween(ctx, nil, *domain, from, to)
  }
  return rs.auditRepo.GetBetween(ctx, nil, from, to)
}

func (rs *reportService) GetRecentAuditRecords(ctx context.Context, limit int) ([]*types.AuditRecord, error) {
  if limit <= 0 || limit > 500 {
    limit = 100
  }
  return rs.auditRepo.GetRecent(ctx, nil, limit)
}

// ExportAuditCSV renders the audit trail for a window as CSV and returns the
// bytes plus a suggested filename.
func (rs *reportService) ExportAuditCSV(ctx context.Context, domain *types.AuditDomain, from, to time.Time) ([]byte, string, error) {
  rs.log.Info("Starting Export Audit CSV now...", "from", from, "to", to)
  records, rErr := rs.GetAuditRecords(ctx, domain, from, to)
  if rErr != nil {
    rs.log.Warn("Failed to fetch audit records, Cannot proceed further. Returning error.", "error", rErr)
    return nil, "", fmt.Errorf("Failed to fetch audit records: %w", rErr)
  }

  var buf bytes.Buffer
  w := csv.NewWriter(&buf)
  if err := w.Write([]string{"Time", "Domain", "Vehicle Number", "Action", "From Status", "To Status", "Actor ID", "Details"}); err != nil {
    return nil, "", fmt.Errorf("Failed to write CSV header: %w", err)
  }
  for _, record := range records {
    actor := ""
    if record.ActorID != nil {
      actor = record.ActorID.String()
    }
    row := []string{
      record.CreatedAt.Format(exportTimeLayout),
      string(record.Domain),
      record.VehicleNumber,
      record.Action,
      string(record.FromStatus),
      string(record.ToStatus),
      actor,
      record.Details,
    }
    if err := w.Write(row); err != nil {
      return nil, "", fmt.Errorf("Failed to write CSV row: %w", err)
    }
  }
  w.Flush()
  if err := w.Error(); err != nil {
    return nil, "", fmt.Errorf("Failed to flush CSV: %w", err)
  }

  scope := "all"
  if domain != nil {
    scope = string(*domain)
  }
  filename := fmt.Sprintf("audit_%s_%s_%s.csv", scope, from.Format("20060102"), to.Format("20060102"))
  rs.log.Info("Successfully exported audit CSV :)", "rows", len(records), "filename", filename)
  return buf.Bytes(), filename, nil
}

// ExportWeighbridgeRegisterCSV renders the completed weighments for a window.
func (rs *reportService) ExportWeighbridgeRegisterCSV(ctx context.Context, from, to time.Time) ([]byte, string, error) {
  rs.log.Info("Starting Export Weighbridge Register CSV now...", "from", from, "to", to)
  entries, eErr := rs.weighbridgeEntryRepo.GetWeighedBetween(ctx, nil, from, to)
  if eErr != nil {
    rs.log.Warn("Failed to fetch weighed entries, Cannot proceed further. Returning error.", "error", eErr)
    return nil, "", fmt.Errorf("Failed to fetch weighed entries: %w", eErr)
  }

  var buf bytes.Buffer
  w := csv.NewWriter(&buf)
  if err := w.Write([]string{"Vehicle Number", "Gross (kg)", "Gross At", "Tare (kg)", "Tare At", "Net (kg)", "Operator ID", "Status"}); err != nil {
    return nil, "", fmt.Errorf("Failed to write CSV header: %w", err)
  }
  for _, entry := range entries {
    row := []string{
      entry.VehicleNumber,
      formatWeight(entry.GrossWeightKg),
      formatExportTime(entry.GrossCapturedAt),
      formatWeight(entry.TareWeightKg),
      formatExportTime(entry.TareCapturedAt),
      formatWeight(entry.NetWeightKg),
      formatExportID(entry.OperatorID),
      string(entry.Status),
    }
    if err := w.Write(row); err != nil {
      return nil, "", fmt.Errorf("Failed to write CSV row: %w", err)
    }
  }
  w.Flush()
  if err := w.Error(); err != nil {
    return nil, "", fmt.Errorf("Failed to flush CSV: %w", err)
  }

  filename := fmt.Sprintf("weighbridge_register_%s_%s.csv", from.Format("20060102"), to.Format("20060102"))
  rs.log.Info("Successfully exported weighbridge register CSV :)", "rows", len(entries), "filename", filename)
  return buf.Bytes(), filename, nil
}

// ExportPlantTrackingCSV renders the closed plant tracking records (gate-in to
// gate-out) for a window, with each milestone timestamp.
func (rs *reportService) ExportPlantTrackingCSV(ctx context.Context, from, to time.Time) ([]byte, string, error) {
  rs.log.Info("Starting Export Plant Tracking CSV now...", "from", from, "to", to)
  records, rErr := rs.plantTrackingRepo.GetClosedBetween(ctx, nil, from, to)
  if rErr != nil {
    rs.log.Warn("Failed to fetch plant tracking records, Cannot proceed further. Returning error.", "error", rErr)
    return nil, "", fmt.Errorf("Failed to fetch plant tracking records: %w", rErr)
  }

  var buf bytes.Buffer
  w := csv.NewWriter(&buf)
  if err := w.Write([]string{"Vehicle Number", "Gate In", "Parking In", "Weighbridge In", "Dock In", "Operation Start", "Operation End", "Exit"}); err != nil {
    return nil, "", fmt.Errorf("Failed to write CSV header: %w", err)
  }
  for _, record := range records {
    row := []string{
      record.VehicleNumber,
      formatExportTime(record.GateInAt),
      formatExportTime(record.ParkingInAt),
      formatExportTime(record.WeighbridgeInAt),
      formatExportTime(record.DockInAt),
      formatExportTime(record.OperationStartAt),
      formatExportTime(record.OperationEndAt),
      formatExportTime(record.ExitAt),
    }
    if err := w.Write(row); err != nil {
      return nil, "", fmt.Errorf("Failed to write CSV row: %w", err)
    }
  }
  w.Flush()
  if err := w.Error(); err != nil {
    return nil, "", fmt.Errorf("Failed to flush CSV: %w", err)
  }

  filename := fmt.Sprintf("plant_tracking_%s_%s.csv", from.Format("20060102"), to.Format("20060102"))
  rs.log.Info("Successfully exported plant tracking CSV :)", "rows", len(records), "filename", filename)
  return buf.Bytes(), filename, nil
}

// UploadExport stores an export in the bucket under exports/ and returns its
// public URL.
func (rs *reportService) UploadExport(ctx context.Context, filename string, data []byte) (string, error) {
  key := fmt.Sprintf("exports/%s", filename)
  if err := rs.bucketService.UploadFile(ctx, nil, key, bytes.NewReader(data)); err != nil {
    rs.log.Warn("Failed to upload export, Cannot proceed further. Returning error.", "error", err)
    return "", fmt.Errorf("Failed to upload export: %w", err)
  }
  url := rs.bucketService.GetPublicURL(key)
  rs.log.Info("Successfully uploaded export :)", "key", key)
  return url, nil
}

func formatWeight(kg *int) string {
  if kg == nil {
    return ""
  }
  return strconv.Itoa(*kg)
}

func formatExportTime(t *time.Time) string {
  if t == nil {
    return ""
  }
  return t.Format(exportTimeLayout)
}

func formatExportID(id *uuid.UUID) string {
  if id == nil {
    return ""
  }
  return id.String()
}
