// Package cache provides a Redis-backed cache-aside store for task lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON-encoded values in Redis under a common key prefix.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  *Stats
}

// Stats tracks cache statistics.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Sets    uint64 `json:"sets"`
	Deletes uint64 `json:"deletes"`
	Errors  uint64 `json:"errors"`
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Sets      uint64  `json:"sets"`
	Deletes   uint64  `json:"deletes"`
	Errors    uint64  `json:"errors"`
	HitRate   float64 `json:"hit_rate"`
	TotalGets uint64  `json:"total_gets"`
}

// Config holds cache configuration.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
	TTL           time.Duration
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		RedisAddr: "localhost:6379",
		Prefix:    "task:",
		TTL:       5 * time.Minute,
	}
}

// New creates a new cache instance.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		stats:  &Stats{},
	}
}

// Get loads the value stored under key into dest.
// The boolean reports a cache hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			atomic.AddUint64(&c.stats.Misses, 1)
			return false, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return true, nil
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache set error: %w", err)
	}

	atomic.AddUint64(&c.stats.Sets, 1)
	return nil
}

// Delete removes key from the cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache delete error: %w", err)
	}

	atomic.AddUint64(&c.stats.Deletes, 1)
	return nil
}

// GetStats returns the current cache statistics.
func (c *Cache) GetStats() StatsSnapshot {
	hits := atomic.LoadUint64(&c.stats.Hits)
	misses := atomic.LoadUint64(&c.stats.Misses)
	totalGets := hits + misses

	var hitRate float64
	if totalGets > 0 {
		hitRate = float64(hits) / float64(totalGets) * 100
	}

	return StatsSnapshot{
		Hits:      hits,
		Misses:    misses,
		Sets:      atomic.LoadUint64(&c.stats.Sets),
		Deletes:   atomic.LoadUint64(&c.stats.Deletes),
		Errors:    atomic.LoadUint64(&c.stats.Errors),
		HitRate:   hitRate,
		TotalGets: totalGets,
	}
}

// Ping checks that Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
