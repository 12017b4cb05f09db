package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), "pulse-test"), mr
}

func TestCache_SetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "product:1:posts", []byte(`{"posts":[]}`), time.Minute)
	require.NoError(t, err)

	data, err := cache.Get(ctx, "product:1:posts")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"posts":[]}`), data)
}

func TestCache_GetMissingKey(t *testing.T) {
	cache, _ := setupTestCache(t)

	data, err := cache.Get(context.Background(), "missing")
	require.NoError(t, err, "missing key is not an error")
	assert.Nil(t, data)
}

func TestCache_TTLExpiry(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "product:1:videos", []byte("v"), time.Minute))

	// miniredis only advances TTLs manually
	mr.FastForward(2 * time.Minute)

	data, err := cache.Get(ctx, "product:1:videos")
	require.NoError(t, err)
	assert.Nil(t, data, "expired key should read as missing")
}

func TestCache_Delete(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))

	data, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Deleting a missing key is idempotent
	assert.NoError(t, cache.Delete(ctx, "k"))
}

func TestCache_ClearOnlyTouchesPrefix(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), time.Minute))

	// A key outside the namespace must survive Clear
	require.NoError(t, mr.Set("unrelated:key", "keep"))

	require.NoError(t, cache.Clear(ctx))

	data, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, data)

	kept, err := mr.Get("unrelated:key")
	require.NoError(t, err)
	assert.Equal(t, "keep", kept)
}
