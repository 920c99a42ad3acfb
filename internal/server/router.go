package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/access"
  "github.com/yardsync-org/yardsync-backend/internal/handlers"
  "github.com/yardsync-org/yardsync-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware          *middleware.AuthMiddleware
  AuthHandler             *handlers.AuthHandler
  MeHandler               *handlers.MeHandler
  TruckHandler            *handlers.TruckHandler
  ApprovalHandler         *handlers.ApprovalHandler
  GateHandler             *handlers.GateHandler
  WeighbridgeHandler      *handlers.WeighbridgeHandler
  YardHandler             *handlers.YardHandler
  DockHandler             *handlers.DockHandler
  ShiftHandoverHandler    *handlers.ShiftHandoverHandler
  MasterDataHandler       *handlers.MasterDataHandler
  RegisterTemplateHandler *handlers.RegisterTemplateHandler
  UserAdminHandler        *handlers.UserAdminHandler
  RoleHandler             *handlers.RoleHandler
  ReportHandler           *handlers.ReportHandler
  ContactHandler          *handlers.ContactHandler
  WsHandler               gin.HandlerFunc

  AllowOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  //-----------------------------------------
  // Cors Setup
  //-----------------------------------------
  allowOrigins := cfg.AllowOrigins
  if len(allowOrigins) == 0 {
    allowOrigins = []string{"http://localhost:3000"}
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))
  router.Use(middleware.AttachRequestContext())

  //-----------------------------------------
  // Health Routes
  //-----------------------------------------
  router.GET("/healthz", handlers.Healthz)

  //-----------------------------------------
  // Public Routes
  //-----------------------------------------
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
    api.POST("/contact", cfg.ContactHandler.Submit)
  }

  //------------------------------------------
  // Protected Routes
  //------------------------------------------
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  protected.GET("/ws", cfg.WsHandler)

  //Me
  protected.GET("/me", cfg.MeHandler.GetMe)
  protected.GET("/me/role", cfg.MeHandler.GetMyRole)
  protected.GET("/me/permissions", cfg.MeHandler.GetMyPermissions)

  //Truck Scheduling
  scheduling := protected.Group("/trucks")
  scheduling.Use(cfg.AuthMiddleware.RequirePage(access.PageTruckScheduling))
  scheduling.POST("/", cfg.TruckHandler.Schedule)
  scheduling.GET("/", cfg.TruckHandler.GetAllTrucks)
  scheduling.GET("/day", cfg.TruckHandler.GetScheduleForDay)
  scheduling.GET("/:truckID", cfg.TruckHandler.GetTruck)
  scheduling.PUT("/:truckID", cfg.TruckHandler.UpdateSchedule)
  scheduling.POST("/:truckID/cancel", cfg.TruckHandler.CancelSchedule)

  //Approvals
  approvals := protected.Group("/approvals")
  approvals.Use(cfg.AuthMiddleware.RequirePage(access.PageApprovals))
  approvals.GET("/", cfg.ApprovalHandler.ListPending)
  approvals.POST("/:requestID/decide", cfg.ApprovalHandler.Decide)

  //Gate Guard
  gate := protected.Group("/gate")
  gate.Use(cfg.AuthMiddleware.RequirePage(access.PageGateGuard))
  gate.GET("/expected", cfg.GateHandler.GetExpectedTrucks)
  gate.GET("/lookup", cfg.GateHandler.Lookup)
  gate.POST("/:truckID/verify", cfg.GateHandler.Verify)
  gate.POST("/:truckID/reject", cfg.GateHandler.Reject)
  gate.POST("/:truckID/parking", cfg.GateHandler.SendToParking)
  gate.POST("/:truckID/gateout", cfg.GateHandler.GateOut)

  //Weighbridge
  weighbridge := protected.Group("/weighbridge")
  weighbridge.Use(cfg.AuthMiddleware.RequirePage(access.PageWeighbridge))
  weighbridge.GET("/queue", cfg.WeighbridgeHandler.GetQueue)
  weighbridge.POST("/:truckID/move", cfg.WeighbridgeHandler.MoveToWeighbridge)
  weighbridge.POST("/:truckID/weight", cfg.WeighbridgeHandler.CaptureWeight)
  weighbridge.POST("/:truckID/release", cfg.WeighbridgeHandler.Release)

  //Plant Tracking
  tracking := protected.Group("/tracking")
  tracking.Use(cfg.AuthMiddleware.RequirePage(access.PagePlantTracking))
  tracking.GET("/active", cfg.YardHandler.GetActiveTrucks)
  tracking.GET("/open", cfg.YardHandler.GetOpenTrackingRecords)
  tracking.GET("/closed", cfg.YardHandler.GetClosedTrackingRecords)
  tracking.GET("/:truckID/timeline", cfg.YardHandler.GetTruckTimeline)

  //Dock Operations
  docks := protected.Group("/docks")
  docks.Use(cfg.AuthMiddleware.RequirePage(access.PageDockOperations))
  docks.GET("/", cfg.DockHandler.GetDocks)
  docks.GET("/operations", cfg.DockHandler.GetOpenOperations)
  docks.POST("/:truckID/assign", cfg.DockHandler.Assign)
  docks.POST("/:truckID/start", cfg.DockHandler.Start)
  docks.POST("/:truckID/complete", cfg.DockHandler.Complete)

  //Shift Handover
  handovers := protected.Group("/handovers")
  handovers.Use(cfg.AuthMiddleware.RequirePage(access.PageShiftHandover))
  handovers.POST("/", cfg.ShiftHandoverHandler.Create)
  handovers.GET("/mine", cfg.ShiftHandoverHandler.GetMine)
  handovers.GET("/recent", cfg.ShiftHandoverHandler.GetRecent)
  handovers.POST("/:handoverID/acknowledge", cfg.ShiftHandoverHandler.Acknowledge)

  //Master Data
  masterdata := protected.Group("/masterdata")
  masterdata.Use(cfg.AuthMiddleware.RequirePage(access.PageMasterData))
  masterdata.GET("/docks", cfg.MasterDataHandler.GetDocks)
  masterdata.POST("/docks", cfg.MasterDataHandler.CreateDock)
  masterdata.PUT("/docks/:dockID", cfg.MasterDataHandler.UpdateDock)
  masterdata.POST("/docks/:dockID/activate", cfg.MasterDataHandler.ActivateDock)
  masterdata.DELETE("/docks/:dockID", cfg.MasterDataHandler.DeleteDock)
  masterdata.GET("/weighbridges", cfg.MasterDataHandler.GetWeighbridges)
  masterdata.POST("/weighbridges", cfg.MasterDataHandler.CreateWeighbridge)
  masterdata.PUT("/weighbridges/:weighbridgeID", cfg.MasterDataHandler.UpdateWeighbridge)
  masterdata.DELETE("/weighbridges/:weighbridgeID", cfg.MasterDataHandler.DeleteWeighbridge)

  //Register Templates
  registers := protected.Group("/registers")
  registers.Use(cfg.AuthMiddleware.RequirePage(access.PageRegisterTemplates))
  registers.GET("/", cfg.RegisterTemplateHandler.GetTemplates)
  registers.POST("/", cfg.RegisterTemplateHandler.Create)
  registers.PUT("/:templateID", cfg.RegisterTemplateHandler.Update)
  registers.DELETE("/:templateID", cfg.RegisterTemplateHandler.Delete)
  registers.POST("/:templateID/entries", cfg.RegisterTemplateHandler.RecordEntry)
  registers.GET("/:templateID/entries", cfg.RegisterTemplateHandler.GetEntries)

  //User Management
  users := protected.Group("/users")
  users.Use(cfg.AuthMiddleware.RequirePage(access.PageUserManagement))
  users.GET("/", cfg.UserAdminHandler.ListUsers)
  users.POST("/:userID/role", cfg.UserAdminHandler.AssignRole)

  //Role Management
  roles := protected.Group("/roles")
  roles.Use(cfg.AuthMiddleware.RequirePage(access.PageRoleManagement))
  roles.GET("/", cfg.RoleHandler.GetRoles)
  roles.POST("/", cfg.RoleHandler.Create)
  roles.PUT("/:roleID", cfg.RoleHandler.Update)
  roles.PUT("/:roleID/permissions", cfg.RoleHandler.ReplacePermissions)
  roles.DELETE("/:roleID", cfg.RoleHandler.Delete)

  //Audit Logs
  audit := protected.Group("/audit")
  audit.Use(cfg.AuthMiddleware.RequirePage(access.PageAuditLogs))
  audit.GET("/", cfg.ReportHandler.GetAuditRecords)
  audit.GET("/recent", cfg.ReportHandler.GetRecentAuditRecords)

  //Reports
  reports := protected.Group("/reports")
  reports.Use(cfg.AuthMiddleware.RequirePage(access.PageReports))
  reports.GET("/audit.csv", cfg.ReportHandler.ExportAuditCSV)
  reports.GET("/weighbridge.csv", cfg.ReportHandler.ExportWeighbridgeRegisterCSV)
  reports.GET("/tracking.csv", cfg.ReportHandler.ExportPlantTrackingCSV)

  //Contact inbox (admin view of public submissions)
  contact := protected.Group("/contact")
  contact.Use(cfg.AuthMiddleware.RequirePage(access.PageMasterData))
  contact.GET("/recent", cfg.ContactHandler.GetRecent)

  return router
}
