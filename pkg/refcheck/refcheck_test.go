package refcheck

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankcore/rulekit/pkg/schema"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	t.Run("known id exists", func(t *testing.T) {
		m := NewMemory(1, 2, 3)
		assert.NoError(t, m.Exists(context.Background(), 2))
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		m := NewMemory(1)
		assert.ErrorIs(t, m.Exists(context.Background(), 99), ErrNotFound)
	})

	t.Run("add and remove", func(t *testing.T) {
		m := NewMemory()
		m.Add(7)
		assert.NoError(t, m.Exists(context.Background(), 7))
		m.Remove(7)
		assert.ErrorIs(t, m.Exists(context.Background(), 7), ErrNotFound)
	})

	t.Run("cancelled context wins", func(t *testing.T) {
		m := NewMemory(1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, m.Exists(ctx, 1), context.Canceled)
	})
}

func TestAsExternalCheck(t *testing.T) {
	t.Parallel()

	check := AsExternalCheck(NewMemory(42))

	t.Run("passes through to the checker", func(t *testing.T) {
		assert.NoError(t, check(context.Background(), int64(42)))
		assert.ErrorIs(t, check(context.Background(), int64(43)), ErrNotFound)
	})

	t.Run("rejects non-integer values", func(t *testing.T) {
		assert.ErrorIs(t, check(context.Background(), "42"), schema.ErrInvalidReference)
	})
}

// fakeCache implements cacheClient in memory.
type fakeCache struct {
	entries map[string]string
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.entries[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.entries[key] = value.(string)
	f.sets++
	return redis.NewStatusResult("OK", nil)
}

func TestCached(t *testing.T) {
	t.Parallel()

	t.Run("caches positive lookups", func(t *testing.T) {
		backend := NewMemory(1)
		cache := newFakeCache()
		cached := NewCached(backend, cache, "users", time.Minute)

		require.NoError(t, cached.Exists(context.Background(), 1))
		assert.Equal(t, 1, cache.sets)

		// Second lookup is served from the cache even after the backend
		// forgets the record.
		backend.Remove(1)
		assert.NoError(t, cached.Exists(context.Background(), 1))
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("misses stay uncached", func(t *testing.T) {
		backend := NewMemory()
		cache := newFakeCache()
		cached := NewCached(backend, cache, "users", time.Minute)

		assert.ErrorIs(t, cached.Exists(context.Background(), 5), ErrNotFound)
		assert.Empty(t, cache.entries)

		// The record becomes visible as soon as it exists.
		backend.Add(5)
		assert.NoError(t, cached.Exists(context.Background(), 5))
	})

	t.Run("keys are namespaced by prefix", func(t *testing.T) {
		cache := newFakeCache()
		cached := NewCached(NewMemory(9), cache, "users", time.Minute)

		require.NoError(t, cached.Exists(context.Background(), 9))
		_, ok := cache.entries["users:9"]
		assert.True(t, ok)
	})
}
