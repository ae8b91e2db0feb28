package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "volunteerhub/docs" // swagger docs registration
	"volunteerhub/internal/config"
	"volunteerhub/internal/handler"
	"volunteerhub/internal/metrics"
	"volunteerhub/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	m *metrics.Metrics,
	extractionH *handler.ExtractionHandler,
	webhookH *handler.WebhookHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	handler.RegisterValidators()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.MaxMultipartMemory = cfg.Intake.MaxFileBytes()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(m))
	}

	r.NoMethod(handler.MethodNotAllowed)

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	v1.POST("/extract", extractionH.Extract)
	v1.POST("/extract/upload", extractionH.Upload)
	v1.POST("/attendance", extractionH.Attendance)
	v1.POST("/competencies", extractionH.Competencies)

	v1.POST("/webhooks/forward", webhookH.Forward)

	return r
}
