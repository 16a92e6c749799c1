package cache

import (
	"testing"
	"time"

	"github.com/parish/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCacheFactory_CreateCache(t *testing.T) {
	unreachable := config.RedisConfig{Host: "127.0.0.1", Port: 1}

	t.Run("disabled cache returns nil", func(t *testing.T) {
		f := NewReportCacheFactory(unreachable, config.ReportConfig{})
		c, err := f.CreateCache()
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("memory backend", func(t *testing.T) {
		f := NewReportCacheFactory(unreachable, config.ReportConfig{CacheEnabled: true, CacheBackend: "memory", CacheTTL: time.Minute})
		c, err := f.CreateCache()
		require.NoError(t, err)
		defer c.Close()
		assert.IsType(t, &InMemoryReportCache{}, c)
	})

	t.Run("unreachable redis falls back to memory", func(t *testing.T) {
		f := NewReportCacheFactory(unreachable, config.ReportConfig{CacheEnabled: true, CacheBackend: "redis"})
		c, err := f.CreateCache()
		require.NoError(t, err)
		defer c.Close()
		assert.IsType(t, &InMemoryReportCache{}, c)
	})

	t.Run("unreachable redis without fallback fails", func(t *testing.T) {
		f := NewReportCacheFactory(unreachable, config.ReportConfig{CacheEnabled: true, CacheBackend: "redis"},
			WithInMemoryFallback(false))
		_, err := f.CreateCache()
		assert.Error(t, err)
	})
}
