package task

import (
	"context"
	"strconv"

	domain "github.com/example/task-management/domain/task"
	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"
)

// TaskCache is the key-value store used by CachedGateway.
// *cache.Cache satisfies it.
type TaskCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// CachedGateway decorates a Gateway with cache-aside lookups by ID.
// Cache failures are logged and the store is used instead.
type CachedGateway struct {
	next   domain.Gateway
	cache  TaskCache
	logger types.Logger
	sf     singleflight.Group
}

var _ domain.Gateway = (*CachedGateway)(nil)

// NewCachedGateway wraps next with cache.
func NewCachedGateway(next domain.Gateway, cache TaskCache, logger types.Logger) *CachedGateway {
	return &CachedGateway{
		next:   next,
		cache:  cache,
		logger: logger,
	}
}

func cacheKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ListAll is not cached.
func (g *CachedGateway) ListAll(ctx context.Context) ([]*domain.Task, error) {
	return g.next.ListAll(ctx)
}

// FindByID serves from cache when possible. Concurrent misses for the same ID
// share a single store read.
func (g *CachedGateway) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	key := cacheKey(id)

	var cached domain.Task
	found, err := g.cache.Get(ctx, key, &cached)
	if err != nil {
		g.logger.Warn("Cache read failed", "task_id", id, "error", err)
	} else if found {
		return &cached, nil
	}

	v, err, _ := g.sf.Do(key, func() (any, error) {
		t, err := g.next.FindByID(ctx, id)
		if err != nil || t == nil {
			return t, err
		}
		if err := g.cache.Set(ctx, key, t); err != nil {
			g.logger.Warn("Cache write failed", "task_id", id, "error", err)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	t, _ := v.(*domain.Task)
	if t == nil {
		return nil, nil
	}
	// Callers mutate the returned task; singleflight shares one pointer.
	c := *t
	return &c, nil
}

// Insert persists task and drops any stale entry for its ID.
func (g *CachedGateway) Insert(ctx context.Context, task *domain.Task) error {
	if err := g.next.Insert(ctx, task); err != nil {
		return err
	}
	g.invalidate(ctx, task.ID)
	return nil
}

// Update persists task and invalidates its cache entry.
func (g *CachedGateway) Update(ctx context.Context, task *domain.Task) error {
	if err := g.next.Update(ctx, task); err != nil {
		return err
	}
	g.invalidate(ctx, task.ID)
	return nil
}

// Delete removes task and invalidates its cache entry.
func (g *CachedGateway) Delete(ctx context.Context, task *domain.Task) error {
	if err := g.next.Delete(ctx, task); err != nil {
		return err
	}
	g.invalidate(ctx, task.ID)
	return nil
}

func (g *CachedGateway) invalidate(ctx context.Context, id uint) {
	if err := g.cache.Delete(ctx, cacheKey(id)); err != nil {
		g.logger.Warn("Cache invalidation failed", "task_id", id, "error", err)
	}
}
