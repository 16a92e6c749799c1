package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	reportapp "github.com/parish/backend/internal/application/report"
	"github.com/parish/backend/internal/infrastructure/cache"
	"github.com/parish/backend/internal/infrastructure/config"
	"github.com/parish/backend/internal/infrastructure/logger"
	"github.com/parish/backend/internal/infrastructure/persistence"
	"github.com/parish/backend/internal/infrastructure/telemetry"
	"github.com/parish/backend/internal/interfaces/http/handler"
	"github.com/parish/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/parish/backend/docs"
)

//	@title			Parish Report API
//	@version		1.0
//	@description	Financial reports over the parish ledger: ledger, cash book, notice board, Aramana, family dues and fiscal-year pivots.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() { _ = lp.Shutdown(context.Background()) }()
	if lp.IsEnabled() {
		log, err = logger.New(logCfg, lp.ZapCore(logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting parish report server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
	)

	profiler, err := telemetry.NewProfiler(profilerConfig(cfg), log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() { _ = profiler.Stop() }()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()
	if cfg.Telemetry.SpanProfilesEnabled && profiler.IsEnabled() {
		if err := tp.EnableSpanProfiles(); err != nil {
			log.Fatal("Failed to enable span profiles", zap.Error(err))
		}
	}

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() { _ = mp.Shutdown(context.Background()) }()

	reportMetrics, err := telemetry.NewReportMetrics(mp.Meter("parish-backend/report"))
	if err != nil {
		log.Fatal("Failed to create report metrics", zap.Error(err))
	}

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.GormLevel), cfg.Log.SlowQueryLog)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	if cfg.Telemetry.DBTraceEnabled {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        dbSystem(db.Driver),
		}, log)
		if err := plugin.Register(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	reportCache, err := cache.NewReportCacheFactory(cfg.Redis, cfg.Report,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateCache()
	if err != nil {
		log.Fatal("Failed to create report cache", zap.Error(err))
	}
	if reportCache != nil {
		defer func() { _ = reportCache.Close() }()
	}

	opts := []reportapp.ReportServiceOption{
		reportapp.WithMetrics(reportMetrics),
		reportapp.WithLimits(reportapp.Limits{
			MaxRangeDays:  cfg.Report.MaxRangeDays,
			MaxTrendYears: cfg.Report.MaxTrendYears,
			FanOutLimit:   cfg.Report.FanOutLimit,
		}),
	}
	if reportCache != nil {
		opts = append(opts, reportapp.WithCache(reportCache))
	}
	reportService := reportapp.NewReportService(persistence.NewGormLedgerRepository(db.DB), opts...)

	engine, err := router.NewEngine(router.EngineConfig{
		Config:  cfg,
		Logger:  log,
		Meter:   mp.Meter("parish-backend/http"),
		Reports: handler.NewReportHandler(reportService),
		Health:  handler.NewHealthHandler(db, cfg.App.Version),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

func dbSystem(driver string) string {
	if driver == persistence.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}

func profilerConfig(cfg *config.Config) telemetry.ProfilerConfig {
	pc := telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilingServerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.ProfilingBasicAuthUser,
		BasicAuthPassword: cfg.Telemetry.ProfilingBasicAuthPass,
	}
	for _, t := range cfg.Telemetry.ProfilingTypes {
		switch strings.ToLower(t) {
		case "cpu":
			pc.ProfileCPU = true
		case "alloc":
			pc.ProfileAlloc = true
		case "inuse":
			pc.ProfileInuse = true
		case "goroutines":
			pc.ProfileGoroutines = true
		case "mutex":
			pc.ProfileMutex = true
		case "block":
			pc.ProfileBlock = true
		}
	}
	return pc
}
