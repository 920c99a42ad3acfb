package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/requestdata"
  "github.com/yardsync-org/yardsync-backend/internal/types"
  "github.com/yardsync-org/yardsync-backend/internal/normalization"
)

// RegisterFieldDef is one column definition inside a template's Fields JSON.
type RegisterFieldDef struct {
  Key      string `json:"key"`
  Label    string `json:"label"`
  DataType string `json:"dataType"`
  Required bool   `json:"required"`
}

type RegisterTemplateService interface {
  CreateTemplate(ctx context.Context, name string, registerType string, fields []RegisterFieldDef) (*types.RegisterTemplate, error)
  UpdateTemplate(ctx context.Context, templateID uuid.UUID, name *string, registerType *string, fields []RegisterFieldDef) (*types.RegisterTemplate, error)
  DeleteTemplate(ctx context.Context, templateID uuid.UUID) error
  GetTemplates(ctx context.Context) ([]*types.RegisterTemplate, error)
  RecordEntry(ctx context.Context, templateID uuid.UUID, values map[string]interface{}) (*types.RegisterEntry, error)
  GetEntries(ctx context.Context, templateID uuid.UUID, from, to time.Time) ([]*types.RegisterEntry, error)
}

type registerTemplateService struct {
  db                   *gorm.DB
  log                  *logger.Logger
  registerTemplateRepo repos.RegisterTemplateRepo
}

func NewRegisterTemplateService(db *gorm.DB, log *logger.Logger, registerTemplateRepo repos.RegisterTemplateRepo) RegisterTemplateService {
  serviceLog := log.With("service", "RegisterTemplateService")
  return &registerTemplateService{
    db:                   db,
    log:                  serviceLog,
    registerTemplateRepo: registerTemplateRepo,
  }
}

func validateRegisterFields(fields []RegisterFieldDef) error {
  if len(fields) == 0 {
    return fmt.Errorf("a register template needs at least one field")
  }
  seen := make(map[string]struct{}, len(fields))
  for _, field := range fields {
    if field.Key == "" || field.Label == "" {
      return fmt.Errorf("every register field needs a key and a label")
    }
    switch field.DataType {
    case "text", "number", "date", "boolean":
    default:
      return fmt.Errorf("unknown field data type '%s'", field.DataType)
    }
    if _, dup := seen[field.Key]; dup {
      return fmt.Errorf("duplicate field key '%s'", field.Key)
    }
    seen[field.Key] = struct{}{}
  }
  return nil
}

func (rts *registerTemplateService) CreateTemplate(ctx context.Context, name string, registerType string, fields []RegisterFieldDef) (*types.RegisterTemplate, error) {
  rts.log.Info("Starting Create Template now...", "name", name)
  name = normalization.ParseInputString(name)
  if name == "" {
    return nil, fmt.Errorf("template name cannot be empty")
  }
  if err := validateRegisterFields(fields); err != nil {
    return nil, err
  }

  var created *types.RegisterTemplate
  err := rts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    exists, eErr := rts.registerTemplateRepo.NameExists(ctx, tx, name)
    if eErr != nil {
      rts.log.Warn("Failed to check template name, Cannot proceed further. Returning error.", "error", eErr)
      return fmt.Errorf("Failed to check template name: %w", eErr)
    }
    if exists {
      return fmt.Errorf("a register template named '%s' already exists", name)
    }

    fieldsJSON, mErr := json.Marshal(fields)
    if mErr != nil {
      rts.log.Warn("Failed to marshal template fields, Cannot proceed further. Returning error.", "error", mErr)
      return fmt.Errorf("Failed to marshal template fields: %w", mErr)
    }
    template := &types.RegisterTemplate{
      ID:           uuid.New(),
      Name:         name,
      RegisterType: registerType,
      Fields:       datatypes.JSON(fieldsJSON),
    }
    if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
      uid := rd.UserID
      template.CreatedBy = &uid
    }
    if _, cErr := rts.registerTemplateRepo.Create(ctx, tx, []*types.RegisterTemplate{template}); cErr != nil {
      rts.log.Warn("Failed to create register template, Cannot proceed further. Returning error.", "error", cErr)
      return fmt.Errorf("Failed to create register template: %w", cErr)
    }
    created = template
    return nil
  })
  if err != nil {
    return nil, err
  }
  rts.log.Info("Successfully created register template :)", "templateID", created.ID)
  return created, nil
}

func (rts *registerTemplateService) UpdateTemplate(ctx context.Context, templateID uuid.UUID, name *string, registerType *string, fields []RegisterFieldDef) (*types.RegisterTemplate, error) {
  rts.log.Info("Starting Update Template now...", "templateID", templateID)
  var updated *types.RegisterTemplate
  err := rts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    templates, tErr := rts.registerTemplateRepo.GetByIDs(ctx, tx, []uuid.UUID{templateID})
    if tErr != nil {
      rts.log.Warn("Failed to fetch register template, Cannot proceed further. Returning error.", "error", tErr)
      return fmt.Errorf("Failed to fetch register template: %w", tErr)
    }
    if len(templates) == 0 {
      return fmt.Errorf("No register template found with id '%s'", templateID)
    }
    template := templates[0]

    if name != nil {
      parsed := normalization.ParseInputString(*name)
      if parsed == "" {
        return fmt.Errorf("template name cannot be empty")
      }
      if parsed != template.Name {
        exists, eErr := rts.registerTemplateRepo.NameExists(ctx, tx, parsed)
        if eErr != nil {
          rts.log.Warn("Failed to check template name, Cannot proceed further. Returning error.", "error", eErr)
          return fmt.Errorf("Failed to check template name: %w", eErr)
        }
        if exists {
          return fmt.Errorf("a register template named '%s' already exists", parsed)
        }
        template.Name = parsed
      }
    }
    if registerType != nil {
      template.RegisterType = *registerType
    }
    if fields != nil {
      if vErr := validateRegisterFields(fields); vErr != nil {
        return vErr
      }
      fieldsJSON, mErr := json.Marshal(fields)
      if mErr != nil {
        rts.log.Warn("Failed to marshal template fields, Cannot proceed further. Returning error.", "error", mErr)
        return fmt.Errorf("Failed to marshal template fields: %w", mErr)
      }
      template.Fields = datatypes.JSON(fieldsJSON)
    }

    if _, uErr := rts.registerTemplateRepo.Update(ctx, tx, []*types.RegisterTemplate{template}); uErr != nil {
      rts.log.Warn("Failed to update register template, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to update register template: %w", uErr)
    }
    updated = template
    return nil
  })
  if err != nil {
    return nil, err
  }
  rts.log.Info("Successfully updated register template :)", "templateID", templateID)
  return updated, nil
}

func (rts *registerTemplateService) DeleteTemplate(ctx context.Context, templateID uuid.UUID) error {
  rts.log.Info("Starting Delete Template now...", "templateID", templateID)
  err := rts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    templates, tErr := rts.registerTemplateRepo.GetByIDs(ctx, tx, []uuid.UUID{templateID})
    if tErr != nil {
      rts.log.Warn("Failed to fetch register template, Cannot proceed further. Returning error.", "error", tErr)
      return fmt.Errorf("Failed to fetch register template: %w", tErr)
    }
    if len(templates) == 0 {
      return fmt.Errorf("No register template found with id '%s'", templateID)
    }
    if dErr := rts.registerTemplateRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{templateID}); dErr != nil {
      rts.log.Warn("Failed to delete register template, Cannot proceed further. Returning error.", "error", dErr)
      return fmt.Errorf("Failed to delete register template: %w", dErr)
    }
    return nil
  })
  if err != nil {
    return err
  }
  rts.log.Info("Successfully deleted register template :)", "templateID", templateID)
  return nil
}

func (rts *registerTemplateService) GetTemplates(ctx context.Context) ([]*types.RegisterTemplate, error) {
  return rts.registerTemplateRepo.GetAll(ctx, nil)
}

// RecordEntry validates the submitted values against the template's field
// definitions before writing the row.
func (rts *registerTemplateService) RecordEntry(ctx context.Context, templateID uuid.UUID, values map[string]interface{}) (*types.RegisterEntry, error) {
  rts.log.Info("Starting Record Entry now...", "templateID", templateID)
  var created *types.RegisterEntry
  err := rts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    templates, tErr := rts.registerTemplateRepo.GetByIDs(ctx, tx, []uuid.UUID{templateID})
    if tErr != nil {
      rts.log.Warn("Failed to fetch register template, Cannot proceed further. Returning error.", "error", tErr)
      return fmt.Errorf("Failed to fetch register template: %w", tErr)
    }
    if len(templates) == 0 {
      return fmt.Errorf("No register template found with id '%s'", templateID)
    }
    template := templates[0]

    var fields []RegisterFieldDef
    if uErr := json.Unmarshal(template.Fields, &fields); uErr != nil {
      rts.log.Warn("Failed to unmarshal template fields, Cannot proceed further. Returning error.", "error", uErr)
      return fmt.Errorf("Failed to unmarshal template fields: %w", uErr)
    }
    known := make(map[string]struct{}, len(fields))
    for _, field := range fields {
      known[field.Key] = struct{}{}
      if field.Required {
        if _, ok := values[field.Key]; !ok {
          return fmt.Errorf("missing required field '%s'", field.Key)
        }
      }
    }
    for key := range values {
      if _, ok := known[key]; !ok {
        return fmt.Errorf("unknown field '%s' for template '%s'", key, template.Name)
      }
    }

    valuesJSON, mErr := json.Marshal(values)
    if mErr != nil {
      rts.log.Warn("Failed to marshal entry values, Cannot proceed further. Returning error.", "error", mErr)
      return fmt.Errorf("Failed to marshal entry values: %w", mErr)
    }
    entry := &types.RegisterEntry{
      ID:         uuid.New(),
      TemplateID: templateID,
      Values:     datatypes.JSON(valuesJSON),
    }
    if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
      uid := rd.UserID
      entry.RecordedBy = &uid
    }
    if _, cErr := rts.registerTemplateRepo.CreateEntries(ctx, tx, []*types.RegisterEntry{entry}); cErr != nil {
      rts.log.Warn("Failed to create register entry, Cannot proceed further. Returning error.", "error", cErr)
      return fmt.Errorf("Failed to create register entry: %w", cErr)
    }
    created = entry
    return nil
  })
  if err != nil {
    return nil, err
  }
  rts.log.Info("Successfully recorded register entry :)", "templateID", templateID)
  return created, nil
}

func (rts *registerTemplateService) GetEntries(ctx context.Context, templateID uuid.UUID, from, to time.Time) ([]*types.RegisterEntry, error) {
  return rts.registerTemplateRepo.GetEntriesByTemplateID(ctx, nil, templateID, from, to)
}
