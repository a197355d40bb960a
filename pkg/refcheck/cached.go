package refcheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheClient is the slice of the Redis API the cached checker needs. It is
// satisfied by *redis.Client and by in-memory fakes in tests.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Cached decorates a Checker with a Redis-backed positive cache. Only
// existence is cached: a missing record stays uncached so it becomes visible
// as soon as it is created. Cache errors are ignored and fall through to the
// underlying checker.
type Cached struct {
	next   Checker
	cache  cacheClient
	prefix string
	ttl    time.Duration
}

// NewCached wraps next with a cache. The prefix namespaces the cache keys so
// several checkers can share one Redis database.
func NewCached(next Checker, cache cacheClient, prefix string, ttl time.Duration) *Cached {
	return &Cached{
		next:   next,
		cache:  cache,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *Cached) Exists(ctx context.Context, id int64) error {
	key := fmt.Sprintf("%s:%d", c.prefix, id)

	if _, err := c.cache.Get(ctx, key).Result(); err == nil {
		return nil
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return ctx.Err()
	}

	if err := c.next.Exists(ctx, id); err != nil {
		return err
	}

	// Best effort: a failed write just means the next call hits the backend.
	_ = c.cache.Set(ctx, key, "1", c.ttl).Err()
	return nil
}
