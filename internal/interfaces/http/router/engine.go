package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/parish/backend/internal/infrastructure/config"
	"github.com/parish/backend/internal/infrastructure/logger"
	"github.com/parish/backend/internal/interfaces/http/handler"
	"github.com/parish/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// EngineConfig holds everything the HTTP engine is assembled from
type EngineConfig struct {
	Config  *config.Config
	Logger  *zap.Logger
	Meter   metric.Meter // nil disables HTTP metrics
	Reports *handler.ReportHandler
	Health  *handler.HealthHandler
}

// NewEngine builds the gin engine with the middleware stack and every
// route of the report API.
func NewEngine(ec EngineConfig) (*gin.Engine, error) {
	cfg, log := ec.Config, ec.Logger

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	httpMetrics, err := middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		Meter:   ec.Meter,
		Enabled: cfg.Telemetry.MetricsEnabled,
	})
	if err != nil {
		return nil, err
	}

	// Order matters: the request ID and parish must be known before the
	// logger and span enrichment read them.
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanErrorMarker(),
		httpMetrics,
		middleware.ParishContext(),
		middleware.TracingAttributeInjector(),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig(cfg.HTTP)),
	)

	engine.GET("/health", ec.Health.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Register(ReportRoutes(ec.Reports))
	r.Setup()

	return engine, nil
}

// ReportRoutes lists the report endpoints
func ReportRoutes(h *handler.ReportHandler) *DomainGroup {
	return NewDomainGroup("report", "/reports").
		GET("/ledger", h.GetLedger).
		GET("/cash-book", h.GetCashBook).
		GET("/notice-board", h.GetNoticeBoard).
		GET("/aramana", h.GetAramana).
		GET("/family-dues", h.GetFamilyDues).
		GET("/pivot", h.GetPivot).
		GET("/pivot/head-trend", h.GetHeadTrend).
		GET("/pivot/income-expense", h.GetIncomeExpense).
		POST("/cache/invalidate", h.InvalidateCache)
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	cors.AllowCredentials = true
	cors.MaxAge = 12 * time.Hour
	return cors
}
