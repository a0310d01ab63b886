package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/redis/go-redis/v9"
)

// Module owns the Redis connection and exposes the shared Cache.
type Module struct {
	cache  *Cache
	client *redis.Client
	cfg    Config
	logger types.Logger
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a cache module. The Redis client is created eagerly so
// Cache can be handed to other modules before the application starts; the
// connection is verified in Start.
func NewModule(cfg Config, logger types.Logger) *Module {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return &Module{
		cache:  New(client, cfg.Prefix, cfg.TTL),
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cache"
}

// Cache returns the cache instance.
func (m *Module) Cache() *Cache {
	return m.cache
}

// Start verifies the Redis connection.
func (m *Module) Start(ctx context.Context) error {
	if err := m.cache.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	m.logger.Info("Connected to Redis",
		"addr", m.cfg.RedisAddr,
		"prefix", m.cfg.Prefix,
		"ttl", m.cfg.TTL.String())
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if err := m.cache.Close(); err != nil {
		m.logger.Error("Error closing Redis connection", "error", err)
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}
	m.logger.Info("Cache module stopped")
	return nil
}

// Health reports Redis reachability and cache statistics.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	stats := m.cache.GetStats()
	details := map[string]any{
		"addr":      m.cfg.RedisAddr,
		"hits":      stats.Hits,
		"misses":    stats.Misses,
		"sets":      stats.Sets,
		"deletes":   stats.Deletes,
		"errors":    stats.Errors,
		"hit_rate":  stats.HitRate,
		"total_get": stats.TotalGets,
	}

	if err := m.cache.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis unreachable: %v", err),
			Details: details,
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}
