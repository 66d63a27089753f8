package infra

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/fieldops/internal/handlers"
	"github.com/umalmyha/fieldops/internal/middleware"
	"github.com/umalmyha/fieldops/internal/service"
	"github.com/umalmyha/fieldops/internal/store"
	"github.com/umalmyha/fieldops/internal/validation"
)

// Router builds echo application serving s
func Router(s *store.Store, v *validation.Validator, log logrus.FieldLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.Echo(v)
	e.HTTPErrorHandler = handlers.ErrorHandler(e, log)
	e.Use(middleware.RequestLogger(log))

	// Shared store access
	syncStore := handlers.NewSyncStore(s)

	// Handlers
	customerHandler := handlers.NewCustomerHTTPHandler(syncStore)
	jobHandler := handlers.NewJobHTTPHandler(syncStore, service.NewJobService(s))
	teamHandler := handlers.NewTeamHTTPHandler(syncStore)
	invoiceHandler := handlers.NewInvoiceHTTPHandler(syncStore)
	notificationHandler := handlers.NewNotificationHTTPHandler(syncStore)
	statsHandler := handlers.NewStatsHTTPHandler(syncStore)

	// API routes
	api := e.Group("/api")

	// customers
	customersApi := api.Group("/customers")
	customersApi.GET("", customerHandler.GetAll)
	customersApi.GET("/:id", customerHandler.Get)
	customersApi.POST("", customerHandler.Post)
	customersApi.PATCH("/:id", customerHandler.Patch)
	customersApi.DELETE("/:id", customerHandler.DeleteByID)

	// jobs
	jobsApi := api.Group("/jobs")
	jobsApi.GET("", jobHandler.GetAll)
	jobsApi.GET("/recent", jobHandler.Recent)
	jobsApi.GET("/:id", jobHandler.Get)
	jobsApi.POST("", jobHandler.Post)
	jobsApi.PATCH("/:id", jobHandler.Patch)
	jobsApi.POST("/:id/complete", jobHandler.Complete)
	jobsApi.DELETE("/:id", jobHandler.DeleteByID)

	// team
	teamApi := api.Group("/team")
	teamApi.GET("", teamHandler.GetAll)
	teamApi.GET("/technicians", teamHandler.Technicians)
	teamApi.GET("/:id", teamHandler.Get)
	teamApi.POST("", teamHandler.Post)
	teamApi.PATCH("/:id", teamHandler.Patch)
	teamApi.DELETE("/:id", teamHandler.DeleteByID)

	// invoices
	invoicesApi := api.Group("/invoices")
	invoicesApi.GET("", invoiceHandler.GetAll)
	invoicesApi.GET("/:id", invoiceHandler.Get)
	invoicesApi.POST("", invoiceHandler.Post)
	invoicesApi.PATCH("/:id", invoiceHandler.Patch)

	// notifications
	notificationsApi := api.Group("/notifications")
	notificationsApi.GET("", notificationHandler.GetAll)
	notificationsApi.GET("/unread-count", notificationHandler.UnreadCount)
	notificationsApi.POST("", notificationHandler.Post)
	notificationsApi.POST("/read-all", notificationHandler.MarkAllRead)
	notificationsApi.POST("/:id/read", notificationHandler.MarkRead)
	notificationsApi.DELETE("/:id", notificationHandler.DeleteByID)

	// stats
	statsApi := api.Group("/stats")
	statsApi.GET("/customers", statsHandler.Customers)
	statsApi.GET("/dashboard", statsHandler.Dashboard)
	statsApi.GET("/views", statsHandler.Views)

	return e
}
