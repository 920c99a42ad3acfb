package main

import (
  "fmt"
  "os"
  "time"

  "github.com/yardsync-org/yardsync-backend/internal/db"
  "github.com/yardsync-org/yardsync-backend/internal/handlers"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/middleware"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/seed"
  "github.com/yardsync-org/yardsync-backend/internal/server"
  "github.com/yardsync-org/yardsync-backend/internal/services"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
  "github.com/yardsync-org/yardsync-backend/internal/utils"
)

func main() {
  // Logger Setup
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Environment Variables
  log.Info("Attempting to load environment variables for Main now...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  redisAddress := utils.GetEnv("REDIS_ADDRESS", "localhost:6379", log)
  redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)
  adminEmails := utils.GetEnvAsList("ADMIN_EMAILS", log)
  allowOrigins := utils.GetEnvAsList("CORS_ALLOW_ORIGINS", log)
  log.Debug("Environment variables loaded for Main :)",
    "accessTokenTTL", accessTokenTTL,
    "refreshTokenTTL", refreshTokenTTL,
    "redisAddress", redisAddress,
    "adminEmails", adminEmails,
  )

  // Postgres Setup
  log.Info("Setting Up Postgres from Main now...")
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Warn("DB init failed", "error", err)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()
  log.Info("Postgres Setup From Main Successful :)")

  // Repositories Setup
  log.Info("Setting Up Repositories from Main now...")
  userRepo := repos.NewUserRepo(thePG, log)
  permissionRepo := repos.NewPermissionRepo(thePG, log)
  roleRepo := repos.NewRoleRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  truckRepo := repos.NewTruckRepo(thePG, log)
  approvalRequestRepo := repos.NewApprovalRequestRepo(thePG, log)
  weighbridgeRepo := repos.NewWeighbridgeRepo(thePG, log)
  weighbridgeEntryRepo := repos.NewWeighbridgeEntryRepo(thePG, log)
  plantTrackingRepo := repos.NewPlantTrackingRepo(thePG, log)
  dockRepo := repos.NewDockRepo(thePG, log)
  dockOperationRepo := repos.NewDockOperationRepo(thePG, log)
  shiftHandoverRepo := repos.NewShiftHandoverRepo(thePG, log)
  auditRepo := repos.NewAuditRepo(thePG, log)
  registerTemplateRepo := repos.NewRegisterTemplateRepo(thePG, log)
  contactSubmissionRepo := repos.NewContactSubmissionRepo(thePG, log)
  log.Info("Repositories Set Up From Main Successful :)")

  // Seed Setup
  log.Info("Attempting to Seed The Postgres From Main now...")
  if err := seed.SeedAll(thePG, log, permissionRepo, roleRepo, dockRepo, weighbridgeRepo); err != nil {
    log.Warn("Failed to seed data :(", "error", err)
  }
  log.Info("Seeding of Postgres From Main Successful :)")

  // Websocket Setup
  log.Info("Setting Up Websocket Hub From Main Now :)")
  wsHub := socket.NewHub(log)
  log.Info("Websocket Hub Set Up From Main Successful :)")

  // Redis PubSub
  log.Info("Setting Up Redis PubSub From Main Now :)")
  redisChanName := "yardsync_hub_broadcast"
  redisPubSub, err := socket.NewRedisPubSub(log, redisAddress, redisPassword, redisChanName)
  if err != nil {
    log.Warn("Failed to init redis pubsub", "error", err)
  } else {
    if err := redisPubSub.StartSubscriber(wsHub); err != nil {
      log.Warn("Failed to subscribe to Redis pub/sub", "error", err)
    } else {
      wsHub.SetRedisPubSub(redisPubSub)
      log.Info("Redis pubsub is active!")
    }
  }
  log.Info("Successfully Set up Redis Pub Sub From Main :)")

  // Services Setup
  log.Info("Setting up Services from Main now...")
  emailService, err := services.NewEmailService(log)
  if err != nil {
    log.Warn("Could not init EmailService", "error", err)
  }
  textService, err := services.NewTextService(log)
  if err != nil {
    log.Warn("Could not init TextService", "error", err)
  }
  bucketService, err := services.NewBucketService(log)
  if err != nil {
    log.Warn("Could not init BucketService", "error", err)
  }
  avatarService, err := services.NewAvatarService(thePG, log, bucketService)
  if err != nil {
    log.Error("Fatal error: Cannot init AvatarService", "error", err)
    os.Exit(1)
  }
  authService := services.NewAuthService(thePG, log, userRepo, roleRepo, userTokenRepo, avatarService, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second, adminEmails)
  meService := services.NewMeService(thePG, log, userRepo, roleRepo)
  yardService := services.NewYardService(thePG, log, truckRepo, weighbridgeEntryRepo, plantTrackingRepo, auditRepo)
  truckService := services.NewTruckService(thePG, log, truckRepo, approvalRequestRepo, auditRepo, yardService)
  approvalService := services.NewApprovalService(thePG, log, approvalRequestRepo, truckRepo, userRepo, yardService, emailService, textService)
  gateService := services.NewGateService(thePG, log, truckRepo, plantTrackingRepo, yardService)
  weighbridgeService := services.NewWeighbridgeService(thePG, log, weighbridgeRepo, weighbridgeEntryRepo, auditRepo, yardService)
  dockService := services.NewDockService(thePG, log, dockRepo, dockOperationRepo, truckRepo, yardService)
  shiftHandoverService := services.NewShiftHandoverService(thePG, log, shiftHandoverRepo, truckRepo, weighbridgeEntryRepo, dockOperationRepo, userRepo, emailService)
  masterDataService := services.NewMasterDataService(thePG, log, dockRepo, weighbridgeRepo, dockOperationRepo)
  registerTemplateService := services.NewRegisterTemplateService(thePG, log, registerTemplateRepo)
  roleService := services.NewRoleService(thePG, log, roleRepo, permissionRepo, userRepo, avatarService)
  userAdminService := services.NewUserAdminService(thePG, log, userRepo, roleRepo, userTokenRepo)
  reportService := services.NewReportService(thePG, log, auditRepo, weighbridgeEntryRepo, plantTrackingRepo, bucketService)
  contactService := services.NewContactService(thePG, log, contactSubmissionRepo, emailService)
  log.Info("Services Set Up From Main Successful :)")

  // Handler Setup
  log.Info("Setting Up Handlers from Main now...")
  authHandler := handlers.NewAuthHandler(authService)
  meHandler := handlers.NewMeHandler(meService)
  truckHandler := handlers.NewTruckHandler(truckService, wsHub)
  approvalHandler := handlers.NewApprovalHandler(approvalService, wsHub)
  gateHandler := handlers.NewGateHandler(gateService, wsHub)
  weighbridgeHandler := handlers.NewWeighbridgeHandler(weighbridgeService, wsHub)
  yardHandler := handlers.NewYardHandler(yardService)
  dockHandler := handlers.NewDockHandler(dockService, wsHub)
  shiftHandoverHandler := handlers.NewShiftHandoverHandler(shiftHandoverService, wsHub)
  masterDataHandler := handlers.NewMasterDataHandler(masterDataService)
  registerTemplateHandler := handlers.NewRegisterTemplateHandler(registerTemplateService)
  userAdminHandler := handlers.NewUserAdminHandler(userAdminService, wsHub)
  roleHandler := handlers.NewRoleHandler(roleService)
  reportHandler := handlers.NewReportHandler(reportService)
  contactHandler := handlers.NewContactHandler(contactService)
  wsHandler := handlers.WsHandler(wsHub, log)
  log.Info("Handlers Set Up From Main Successful :)")

  // MiddleWare Setup
  log.Info("Setting Up Middleware from Main now...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService, roleRepo)
  log.Info("Middleware Set Up From Main Successful :)")

  // Router Setup
  log.Info("Setting Up Router from Main now...")
  router := server.NewRouter(server.RouterConfig{
    AuthMiddleware:          authMiddleware,
    AuthHandler:             authHandler,
    MeHandler:               meHandler,
    TruckHandler:            truckHandler,
    ApprovalHandler:         approvalHandler,
    GateHandler:             gateHandler,
    WeighbridgeHandler:      weighbridgeHandler,
    YardHandler:             yardHandler,
    DockHandler:             dockHandler,
    ShiftHandoverHandler:    shiftHandoverHandler,
    MasterDataHandler:       masterDataHandler,
    RegisterTemplateHandler: registerTemplateHandler,
    UserAdminHandler:        userAdminHandler,
    RoleHandler:             roleHandler,
    ReportHandler:           reportHandler,
    ContactHandler:          contactHandler,
    WsHandler:               wsHandler,
    AllowOrigins:            allowOrigins,
  })
  log.Info("Router Set Up From Main Successful :)")

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }

  // On Shutdown
  if redisPubSub != nil {
    redisPubSub.Stop()
  }
}
