package main

import (
	"smartrental/internal/logging"
	"smartrental/internal/metrics"
	"smartrental/internal/middleware"
	"smartrental/internal/models"

	_ "smartrental/internal/docs"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	tenant    = models.RoleTenant
	landlord  = models.RoleLandlord
	caretaker = models.RoleCaretaker
	admin     = models.RoleAdmin
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(logging.RequestLogger())
	e.Use(metrics.Middleware())

	return e
}

// registerRoutes mounts the operational endpoints at the root and the API
// under /api.
func registerRoutes(e *echo.Echo, s *server) {
	// Health endpoints (no auth required)
	e.GET("/health", s.health.HealthCheck)
	e.GET("/health/ready", s.health.ReadinessCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	versions := middleware.NewVersionMiddleware()
	api := e.Group("/api", versions.VersionHeader())
	api.GET("/versions", versions.ListVersions)

	jwt := middleware.JWTMiddleware(s.userService, s.jwt)
	audit := middleware.NewAuditMiddleware(s.auditService).LogAction()
	roles := middleware.RequireRoles

	auth := api.Group("/auth")
	auth.POST("/register", s.auth.Register)
	auth.POST("/login", s.auth.Login)
	auth.POST("/refresh", s.auth.Refresh)
	auth.POST("/logout", s.auth.Logout)

	users := api.Group("/users", jwt, audit)
	users.GET("/me", s.users.Me)
	users.PATCH("/me/deactivate", s.users.Deactivate)
	users.PATCH("/me/notification-prefs", s.users.UpdateNotificationPrefs)
	users.GET("", s.users.ListUsers, roles(admin))
	users.PATCH("/:id/suspend", s.users.Suspend, roles(admin))
	users.PATCH("/:id/unsuspend", s.users.Unsuspend, roles(admin))
	users.PATCH("/:id/role", s.users.ChangeRole, roles(admin))

	houses := api.Group("/houses", jwt, audit)
	houses.POST("", s.houses.Create, roles(landlord))
	houses.GET("/mine", s.houses.ListMine, roles(landlord))
	houses.GET("", s.houses.List)
	houses.GET("/:id", s.houses.Get)
	houses.PATCH("/:id/status", s.houses.UpdateStatus, roles(landlord, admin))
	houses.PATCH("/:id/caretaker", s.houses.AssignCaretaker, roles(landlord, admin))
	houses.DELETE("/:id", s.houses.Delete, roles(landlord, admin))

	agreements := api.Group("/agreements", jwt, audit)
	agreements.POST("/create", s.agreements.Create, roles(landlord))
	agreements.GET("/landlord", s.agreements.ListForLandlord, roles(landlord))
	agreements.GET("/tenant", s.agreements.ListForTenant, roles(tenant))
	agreements.GET("/all", s.agreements.ListAll, roles(admin, caretaker))
	agreements.GET("/house/:id", s.agreements.ListForHouse)
	agreements.GET("/:id", s.agreements.Get)
	agreements.PATCH("/sign/:id", s.agreements.Sign)
	agreements.PATCH("/mark-deposit/:id", s.agreements.MarkDepositPaid)
	agreements.PATCH("/update/:id", s.agreements.Update)
	agreements.DELETE("/terminate/:id", s.agreements.Terminate)

	payments := api.Group("/payments", jwt, audit)
	payments.POST("/pay-rent", s.payments.PayRent, roles(tenant))
	payments.GET("/mine", s.payments.ListMine, roles(tenant))
	payments.GET("/receipt/:id", s.payments.DownloadReceipt, roles(tenant))
	payments.GET("/receipt/:id/url", s.payments.ReceiptURL, roles(tenant))
	payments.POST("/receipt/:id/email", s.payments.EmailReceipt, roles(tenant))
	payments.GET("/landlord-view", s.payments.ListForLandlord, roles(landlord))
	payments.GET("/landlord-earnings", s.payments.EarningsSummary, roles(landlord))
	payments.GET("/house/:id", s.payments.ListForHouse, roles(landlord, caretaker, admin))

	relocations := api.Group("/relocations", jwt, audit)
	relocations.POST("/request", s.relocations.RequestRelocation, roles(tenant))
	relocations.GET("/mine", s.relocations.ListMine, roles(tenant))
	relocations.POST("/rate", s.relocations.Rate, roles(tenant))
	relocations.GET("/notifications", s.notifications.ListMine, roles(tenant))
	relocations.PATCH("/notifications/mark-seen", s.notifications.MarkAllSeen, roles(tenant))
	relocations.GET("/all", s.relocations.ListAll, roles(admin, caretaker))
	relocations.GET("/filtered", s.relocations.ListFiltered, roles(admin, caretaker))
	relocations.GET("/requests/:id", s.relocations.GetRequest, roles(admin, caretaker))
	relocations.PATCH("/update/:requestId", s.relocations.UpdateStatus, roles(admin, caretaker))
	relocations.PATCH("/assign-driver", s.relocations.AssignDriver, roles(admin, caretaker))
	relocations.PATCH("/complete/:requestId", s.relocations.Complete, roles(admin, caretaker))
	relocations.POST("/notify/:requestId", s.relocations.NotifyTenant, roles(admin, caretaker))
	relocations.DELETE("/:requestId", s.relocations.Delete, roles(admin, caretaker))

	maintenance := api.Group("/maintenance", jwt, audit)
	maintenance.POST("", s.maintenance.Create, roles(tenant, caretaker))
	maintenance.GET("/mine", s.maintenance.ListMine, roles(tenant))
	maintenance.GET("", s.maintenance.List, roles(caretaker, admin))
	maintenance.GET("/:id", s.maintenance.Get, roles(caretaker, admin))
	maintenance.PATCH("/:id", s.maintenance.UpdateStatus, roles(caretaker, admin))
	maintenance.DELETE("/:id", s.maintenance.Delete, roles(tenant, landlord, caretaker, admin))

	visits := api.Group("/visits", jwt, audit)
	visits.POST("/request", s.visits.Request, roles(tenant))
	visits.GET("/mine", s.visits.ListMine, roles(tenant))
	visits.GET("/for-me", s.visits.ListReceived, roles(landlord, caretaker))
	visits.PUT("/:id/respond", s.visits.Respond, roles(landlord, caretaker))

	defaulters := api.Group("/defaulters", jwt, audit, roles(landlord))
	defaulters.GET("/rent-defaulters", s.defaulters.GetDefaulters)
	defaulters.POST("/send-defaulter-sms", s.defaulters.SendReminders)
	defaulters.POST("/notify/:tenantId", s.defaulters.NotifyDefaulter)

	notifications := api.Group("/notifications", jwt, audit)
	notifications.GET("", s.notifications.ListMine)
	notifications.PATCH("/mark-seen", s.notifications.MarkAllSeen)
	notifications.DELETE("/:id", s.notifications.Delete)

	auditLogs := api.Group("/audit-logs", jwt, audit, roles(admin))
	auditLogs.GET("", s.auditLogs.ListAuditLogs)
	auditLogs.GET("/:id", s.auditLogs.GetAuditLog)
	auditLogs.DELETE("", s.auditLogs.ClearAuditLogs)

	jobs := api.Group("/admin/jobs", jwt, audit, roles(admin))
	jobs.GET("", s.jobs.ListJobs)
	jobs.POST("/:name/run", s.jobs.RunJob)
}
