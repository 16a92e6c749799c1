package cache

import (
	"fmt"
	"io"

	"github.com/parish/backend/internal/domain/report"
	"github.com/parish/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ReportCache is a report.Cache that owns resources released by Close
type ReportCache interface {
	report.Cache
	io.Closer
}

// ReportCacheFactory creates report caches based on configuration
type ReportCacheFactory struct {
	redisConfig           config.RedisConfig
	reportConfig          config.ReportConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ReportCacheFactoryOption is a functional option for configuring the factory
type ReportCacheFactoryOption func(*ReportCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ReportCacheFactoryOption {
	return func(f *ReportCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) ReportCacheFactoryOption {
	return func(f *ReportCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewReportCacheFactory creates a new factory
func NewReportCacheFactory(redisCfg config.RedisConfig, reportCfg config.ReportConfig, opts ...ReportCacheFactoryOption) *ReportCacheFactory {
	f := &ReportCacheFactory{
		redisConfig:           redisCfg,
		reportConfig:          reportCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache creates a Redis-backed report cache
func (f *ReportCacheFactory) CreateRedisCache() (*RedisReportCache, error) {
	c, err := NewRedisReportCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.reportConfig.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis report cache: %w", err)
	}
	return c, nil
}

// CreateInMemoryCache creates a process-local report cache.
// In-memory caches are not shared between instances, so an invalidation
// only reaches the instance that received it.
func (f *ReportCacheFactory) CreateInMemoryCache() *InMemoryReportCache {
	return NewInMemoryReportCache(f.reportConfig.CacheTTL)
}

// CreateCache returns the configured cache, or nil when caching is disabled.
// A Redis backend that cannot be reached falls back to memory when allowed.
func (f *ReportCacheFactory) CreateCache() (ReportCache, error) {
	if !f.reportConfig.CacheEnabled {
		f.logger.Info("report cache disabled")
		return nil, nil
	}

	if f.reportConfig.CacheBackend != "redis" {
		f.logger.Info("using in-memory report cache", zap.Duration("ttl", f.reportConfig.CacheTTL))
		return f.CreateInMemoryCache(), nil
	}

	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis report cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for report cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory report cache. "+
		"Invalidations will not reach other instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
