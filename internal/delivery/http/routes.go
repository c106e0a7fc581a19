package http

import (
	"embed"
	"html/template"

	"github.com/foodcheck/web/config"
	"github.com/foodcheck/web/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// SetupRouter creates and configures the Gin router. m and logger may be nil.
func SetupRouter(cfg *config.Config, handler *Handler, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.SetHTMLTemplate(Templates())

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(MetricsMiddleware(m))
	router.Use(RecoveryMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Pages
	router.GET("/", handler.ShowIndex)
	router.POST("/", handler.SubmitIndex)
	router.GET("/about", handler.ShowAbout)
	router.GET("/contact", handler.ShowContact)
	router.GET("/help", handler.ShowHelp)

	router.GET("/health", handler.HealthCheck)

	if cfg.Metrics.Enabled && m != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.SearchProducts)
			products.GET("/:barcode", handler.GetProduct)
		}
	}

	return router
}
