package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/types"
  "github.com/yardsync-org/yardsync-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  //1) Get and Set Environment Variables
  log.Info("Attempting to load environment variables for Postgres now...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "yardsync", log)
  log.Info("Environment variables loaded for Postgres :)")

  //2) Construct DSN From Environment Variables
  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  //3) Attempt DB Connection
  log.Info("Attempting to connect to Postgres DB now...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres DB", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres DB: %w", err)
  }
  log.Info("Successfully Connected to Postgres DB :)")

  //4) Enable uuid-ossp Extension
  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    log.Error("Failed to enable uuid-ossp extension :(", "error", err)
    return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
  }
  log.Info("uuid-ossp extension enabled or already exists :)")

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Starting AutoMigrateAll for all GORM models now...")

  err := s.db.AutoMigrate(
    &types.User{},
    &types.Role{},
    &types.Permission{},
    &types.UserToken{},
    &types.Truck{},
    &types.Weighbridge{},
    &types.WeighbridgeEntry{},
    &types.PlantTrackingRecord{},
    &types.Dock{},
    &types.DockOperation{},
    &types.ShiftHandover{},
    &types.ApprovalRequest{},
    &types.AuditRecord{},
    &types.RegisterTemplate{},
    &types.RegisterEntry{},
    &types.ContactSubmission{},
  )
  if err != nil {
    s.log.Error("AutoMigrateAll failed for Base Tables :(", "error", err)
    return err
  }
  s.log.Info("AutoMigrateAll completed successfully for Base Tables :)")

  s.log.Info("Configuring Foreign Key Relationships for Base Tables now...")
  // -- User.role_id => role.id (ON DELETE SET NULL)
  if err := s.db.Exec(`
      ALTER TABLE "user"
      ADD CONSTRAINT "fk_user_role_id"
      FOREIGN KEY ("role_id")
      REFERENCES "role"("id")
      ON DELETE SET NULL
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_user_role_id: %w", err)
  }
  // -- UserToken.user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "user_token"
      ADD CONSTRAINT "fk_user_token_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_user_token_user_id: %w", err)
  }
  // -- Pivot table FKs for the many2many permissions_roles join.
  if err := s.db.Exec(`
      ALTER TABLE "permissions_roles"
      ADD CONSTRAINT "fk_permissions_roles_role_id"
      FOREIGN KEY ("role_id")
      REFERENCES "role"("id")
      ON DELETE CASCADE,
      ADD CONSTRAINT "fk_permissions_roles_permission_id"
      FOREIGN KEY ("permission_id")
      REFERENCES "permission"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add FK constraints to permissions_roles pivot: %w", err)
  }
  // -- Truck.dock_id => dock.id (ON DELETE SET NULL)
  if err := s.db.Exec(`
      ALTER TABLE "truck"
      ADD CONSTRAINT "fk_truck_dock_id"
      FOREIGN KEY ("dock_id")
      REFERENCES "dock"("id")
      ON DELETE SET NULL
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_truck_dock_id: %w", err)
  }
  // -- WeighbridgeEntry.truck_id => truck.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "weighbridge_entry"
      ADD CONSTRAINT "fk_weighbridge_entry_truck_id"
      FOREIGN KEY ("truck_id")
      REFERENCES "truck"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_weighbridge_entry_truck_id: %w", err)
  }
  // -- WeighbridgeEntry.weighbridge_id => weighbridge.id (ON DELETE SET NULL)
  if err := s.db.Exec(`
      ALTER TABLE "weighbridge_entry"
      ADD CONSTRAINT "fk_weighbridge_entry_weighbridge_id"
      FOREIGN KEY ("weighbridge_id")
      REFERENCES "weighbridge"("id")
      ON DELETE SET NULL
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_weighbridge_entry_weighbridge_id: %w", err)
  }
  // -- PlantTrackingRecord.truck_id => truck.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "plant_tracking_record"
      ADD CONSTRAINT "fk_plant_tracking_record_truck_id"
      FOREIGN KEY ("truck_id")
      REFERENCES "truck"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_plant_tracking_record_truck_id: %w", err)
  }
  // -- DockOperation.truck_id => truck.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "dock_operation"
      ADD CONSTRAINT "fk_dock_operation_truck_id"
      FOREIGN KEY ("truck_id")
      REFERENCES "truck"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_dock_operation_truck_id: %w", err)
  }
  // -- DockOperation.dock_id => dock.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "dock_operation"
      ADD CONSTRAINT "fk_dock_operation_dock_id"
      FOREIGN KEY ("dock_id")
      REFERENCES "dock"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_dock_operation_dock_id: %w", err)
  }
  // -- ShiftHandover.outgoing_user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "shift_handover"
      ADD CONSTRAINT "fk_shift_handover_outgoing_user_id"
      FOREIGN KEY ("outgoing_user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_shift_handover_outgoing_user_id: %w", err)
  }
  // -- ShiftHandover.incoming_user_id => user.id (ON DELETE SET NULL)
  if err := s.db.Exec(`
      ALTER TABLE "shift_handover"
      ADD CONSTRAINT "fk_shift_handover_incoming_user_id"
      FOREIGN KEY ("incoming_user_id")
      REFERENCES "user"("id")
      ON DELETE SET NULL
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_shift_handover_incoming_user_id: %w", err)
  }
  // -- ApprovalRequest.truck_id => truck.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "approval_request"
      ADD CONSTRAINT "fk_approval_request_truck_id"
      FOREIGN KEY ("truck_id")
      REFERENCES "truck"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_approval_request_truck_id: %w", err)
  }
  // -- RegisterEntry.template_id => register_template.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "register_entry"
      ADD CONSTRAINT "fk_register_entry_template_id"
      FOREIGN KEY ("template_id")
      REFERENCES "register_template"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_register_entry_template_id: %w", err)
  }
  s.log.Info("Successfully Added Foreign Key Relationships to Base Tables :)")

  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
