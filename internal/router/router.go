package router

import (
	"github.com/gin-gonic/gin"

	"boxoffice/internal/config"
	"boxoffice/internal/handler"
	"boxoffice/internal/middleware"
	"boxoffice/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	importH *handler.ImportHandler,
	reportH *handler.ReportHandler,
	eventH *handler.EventHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Protected routes - require a valid session token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Event registry
	events := protected.Group("/events")
	events.GET("", eventH.List)
	events.GET("/:city/classes", eventH.Roster)

	// Sales export imports
	imports := protected.Group("/imports")
	imports.POST("/:city", importH.Upload)
	imports.GET("/:city", importH.Latest)

	// Reports
	reports := protected.Group("/reports")
	reports.GET("/:city/classes", reportH.Classes)
	reports.GET("/:city/totals", reportH.Totals)
	reports.GET("/:city/customers", reportH.Customers)
	reports.GET("/:city/export", reportH.Export)

	return r
}
