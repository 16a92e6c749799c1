package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/report"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startRedis runs a throwaway Redis container for the test.
func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisReportCache(t *testing.T) {
	client := startRedis(t)
	c := NewRedisReportCacheWithClient(client, "test:report:", time.Minute)
	ctx := context.Background()

	parish := uuid.New()
	key := report.CacheKey{ParishID: parish, Report: report.TypeCashBook, Period: "2024-02-01..2024-02-29", Params: []string{"All"}}

	var got cachedTotals
	hit, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, key, cachedTotals{Parish: "St. Thomas", Heads: []string{"SBI"}}))
	hit, err = c.Get(ctx, key, &got)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "St. Thomas", got.Parish)

	ttl, err := client.TTL(ctx, "test:report:"+parish.String()+":0:"+key.Suffix()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.InvalidateParish(ctx, parish))
	hit, err = c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	gen, err := client.Get(ctx, "test:report:gen:"+parish.String()).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}

func TestRedisReportCache_Unreachable(t *testing.T) {
	_, err := NewRedisReportCache(RedisConfig{Host: "127.0.0.1", Port: 1}, time.Minute)
	assert.Error(t, err)
}
