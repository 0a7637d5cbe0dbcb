// Package cache holds the shared job category list.
package cache

import (
	"context"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/logger"
	"ergasia-marketplace/pkg/redis"
)

const categoriesKey = "categories:all"

// CategoryLoader reads the authoritative category list.
type CategoryLoader interface {
	FetchAll(ctx context.Context) ([]domain.JobCategory, error)
}

// CategoryCache keeps a local copy of the categories for ttl. When a Redis
// client is given the list is mirrored there so several API instances share
// one load; Redis errors fall back to the loader.
type CategoryCache struct {
	loader CategoryLoader
	rdb    *goredis.Client
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	items    []domain.JobCategory
	loadedAt time.Time
	valid    bool
}

func NewCategoryCache(loader CategoryLoader, rdb *goredis.Client, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		loader: loader,
		rdb:    rdb,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the cached categories, loading them on a miss or after expiry.
// Callers get their own copy.
func (c *CategoryCache) Get(ctx context.Context) ([]domain.JobCategory, error) {
	c.mu.RLock()
	if c.fresh() {
		out := clone(c.items)
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	if c.rdb != nil {
		var shared []domain.JobCategory
		found, err := redis.GetJSON(ctx, c.rdb, categoriesKey, &shared)
		if err != nil {
			logger.Log.Warn("Category cache read from redis failed", "error", err)
		}
		if found {
			c.store(shared)
			return clone(shared), nil
		}
	}

	return c.Refresh(ctx)
}

// Refresh reloads from the loader unconditionally.
func (c *CategoryCache) Refresh(ctx context.Context) ([]domain.JobCategory, error) {
	items, err := c.loader.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.JobCategory{}
	}
	c.store(items)

	if c.rdb != nil {
		if err := redis.SetJSON(ctx, c.rdb, categoriesKey, items, c.ttl); err != nil {
			logger.Log.Warn("Category cache write to redis failed", "error", err)
		}
	}
	return clone(items), nil
}

// Invalidate drops the local copy and the shared one.
func (c *CategoryCache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.items = nil
	c.mu.Unlock()

	if c.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := redis.Delete(ctx, c.rdb, categoriesKey); err != nil {
			logger.Log.Warn("Category cache delete in redis failed", "error", err)
		}
	}
}

func (c *CategoryCache) store(items []domain.JobCategory) {
	c.mu.Lock()
	c.items = clone(items)
	c.loadedAt = c.now()
	c.valid = true
	c.mu.Unlock()
}

// fresh must be called with mu held.
func (c *CategoryCache) fresh() bool {
	if !c.valid {
		return false
	}
	return c.ttl <= 0 || c.now().Sub(c.loadedAt) < c.ttl
}

func clone(items []domain.JobCategory) []domain.JobCategory {
	out := make([]domain.JobCategory, len(items))
	copy(out, items)
	return out
}

var _ domain.CategoryProvider = (*CategoryCache)(nil)
