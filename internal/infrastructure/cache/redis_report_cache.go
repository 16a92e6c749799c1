package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/report"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "parish:report:"

// RedisReportCache implements report.Cache using Redis.
// Values are stored as JSON under a key that embeds the parish generation;
// invalidating a parish increments the generation so older entries are
// never read again and expire on their own.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisReportCache connects to Redis and returns a report cache
func NewRedisReportCache(cfg RedisConfig, ttl time.Duration) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisReportCacheWithClient(client, "", ttl), nil
}

// NewRedisReportCacheWithClient creates a cache with an existing Redis client
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisReportCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (c *RedisReportCache) generationKey(parishID uuid.UUID) string {
	return c.keyPrefix + "gen:" + parishID.String()
}

func (c *RedisReportCache) generation(ctx context.Context, parishID uuid.UUID) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey(parishID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

func (c *RedisReportCache) entryKey(ctx context.Context, key report.CacheKey) (string, error) {
	gen, err := c.generation(ctx, key.ParishID)
	if err != nil {
		return "", err
	}
	return c.keyPrefix + key.ParishID.String() + ":" + strconv.FormatInt(gen, 10) + ":" + key.Suffix(), nil
}

// Get decodes the cached report into dest. It returns false on a miss.
func (c *RedisReportCache) Get(ctx context.Context, key report.CacheKey, dest any) (bool, error) {
	k, err := c.entryKey(ctx, key)
	if err != nil {
		return false, err
	}
	data, err := c.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cached report: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return true, nil
}

// Set stores value for the configured TTL.
func (c *RedisReportCache) Set(ctx context.Context, key report.CacheKey, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	k, err := c.entryKey(ctx, key)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, k, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// InvalidateParish bumps the parish generation.
func (c *RedisReportCache) InvalidateParish(ctx context.Context, parishID uuid.UUID) error {
	if err := c.client.Incr(ctx, c.generationKey(parishID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate parish reports: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisReportCache) GetClient() *redis.Client {
	return c.client
}

var _ report.Cache = (*RedisReportCache)(nil)
