package redis

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voluntree/voluntree-ui/internal/testutil"
	"github.com/voluntree/voluntree-ui/internal/token"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestTokenStorage_SetAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	storage := NewTokenStorage(client)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, token.StorageKey, `"raw-token-value"`))

	value, err := storage.Get(ctx, token.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, `"raw-token-value"`, value)
}

func TestTokenStorage_GetMissing(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	storage := NewTokenStorage(client)

	_, err := storage.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, token.ErrNotFound)
}

func TestTokenStorage_Del(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	storage := NewTokenStorage(client)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, token.StorageKey, "value"))
	require.NoError(t, storage.Del(ctx, token.StorageKey))

	_, err := storage.Get(ctx, token.StorageKey)
	assert.ErrorIs(t, err, token.ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, storage.Del(ctx, token.StorageKey))
}

func TestTokenStorage_SetAppliesTTL(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	storage := NewTokenStorage(client)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, token.StorageKey, "value"))

	ttl, err := client.TTL(ctx, "client:"+token.StorageKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Seconds(), 0.0)
	assert.LessOrEqual(t, ttl, DefaultTTL)
}

func TestTokenStorage_WorksBehindStore(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := token.NewStore(NewTokenStorage(client), nil)
	ctx := context.Background()

	require.True(t, store.Set(ctx, "opaque-token"))
	assert.Equal(t, "opaque-token", store.Get(ctx))
	require.True(t, store.Clear(ctx))
	assert.Equal(t, "", store.Get(ctx))
}
