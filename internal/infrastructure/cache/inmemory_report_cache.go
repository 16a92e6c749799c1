package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parish/backend/internal/domain/report"
)

// entry is a JSON-encoded report with its expiry
type entry struct {
	parishID   uuid.UUID
	data       []byte
	generation uint64
	expiresAt  time.Time
}

// InMemoryReportCache implements report.Cache with a process-local map.
// Reports are stored JSON-encoded so readers never share memory with the
// cached value. Suitable for single-instance deployments and testing.
type InMemoryReportCache struct {
	mu          sync.RWMutex
	ttl         time.Duration
	entries     map[string]entry
	generations map[uuid.UUID]uint64
	now         func() time.Time

	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryReportCache creates a new in-memory cache and starts a
// background goroutine removing expired entries.
func NewInMemoryReportCache(ttl time.Duration) *InMemoryReportCache {
	c := &InMemoryReportCache{
		ttl:         ttl,
		entries:     make(map[string]entry),
		generations: make(map[uuid.UUID]uint64),
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

func mapKey(key report.CacheKey) string {
	return key.ParishID.String() + ":" + key.Suffix()
}

// Get decodes the cached report into dest. It returns false on a miss.
func (c *InMemoryReportCache) Get(ctx context.Context, key report.CacheKey, dest any) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[mapKey(key)]
	gen := c.generations[key.ParishID]
	c.mu.RUnlock()

	if !ok || e.generation != gen || c.now().After(e.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return true, nil
}

// Set stores value for the configured TTL.
func (c *InMemoryReportCache) Set(ctx context.Context, key report.CacheKey, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[mapKey(key)] = entry{
		parishID:   key.ParishID,
		data:       data,
		generation: c.generations[key.ParishID],
		expiresAt:  c.now().Add(c.ttl),
	}
	return nil
}

// InvalidateParish bumps the parish generation so every entry cached for
// it becomes a miss.
func (c *InMemoryReportCache) InvalidateParish(ctx context.Context, parishID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[parishID]++
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (c *InMemoryReportCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryReportCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired and superseded entries
func (c *InMemoryReportCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) || e.generation != c.generations[e.parishID] {
			delete(c.entries, k)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryReportCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ report.Cache = (*InMemoryReportCache)(nil)
