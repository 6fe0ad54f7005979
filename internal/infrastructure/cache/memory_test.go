package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sustainabuy/backend/internal/domain"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()

	c := NewMemoryCache(time.Minute)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value []byte
	}{
		{name: "product document", key: "product:p1", value: []byte(`{"id":"p1","name":"Wool Runners"}`)},
		{name: "empty value", key: "product:p2", value: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, cache.Set(ctx, tt.key, tt.value, time.Minute))

			got, err := cache.Get(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", []byte("expires-soon"), time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, err := cache.Get(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Get(context.Background(), "non-existent")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_CopiesValues(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, cache.Set(ctx, "k", value, time.Minute))
	value[0] = 'X'

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	got[0] = 'Y'
	again, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	// Deleting a missing key is not an error
	assert.NoError(t, cache.Delete(ctx, "never-set"))
}

func TestMemoryCache_RemoveExpired(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "old", []byte("1"), time.Second))
	require.NoError(t, cache.Set(ctx, "fresh", []byte("2"), time.Hour))
	assert.Equal(t, 2, cache.Size())

	cache.removeExpired(time.Now().Add(time.Minute))

	assert.Equal(t, 1, cache.Size())
	_, err := cache.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache(0)

	assert.NoError(t, cache.Close())
	assert.NoError(t, cache.Close())
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("product:%d", id)

			assert.NoError(t, cache.Set(ctx, key, []byte(key), time.Minute))
			got, err := cache.Get(ctx, key)
			assert.NoError(t, err)
			assert.Equal(t, key, string(got))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, cache.Size())
}

var _ domain.CacheRepository = (*MemoryCache)(nil)
