package token

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voluntree/voluntree-ui/internal/domain/auth"
)

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(NewMemoryStorage(), nil)
	ctx := context.Background()

	raw := mintSessionToken(t, 42, auth.RoleVolunteer, time.Now().Unix()+3600)

	require.True(t, store.Set(ctx, raw))
	assert.Equal(t, raw, store.Get(ctx))
	assert.False(t, store.IsExpired(ctx))
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(NewMemoryStorage(), nil)
	ctx := context.Background()

	require.True(t, store.Set(ctx, mintSessionToken(t, 1, auth.RoleVolunteer, time.Now().Unix()+60)))

	assert.True(t, store.Clear(ctx))
	assert.Equal(t, "", store.Get(ctx))
	assert.True(t, store.IsExpired(ctx))

	// Clearing twice produces the same end state as clearing once.
	assert.True(t, store.Clear(ctx))
	assert.Equal(t, "", store.Get(ctx))
}

func TestStore_LegacyBareValue(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	// Older clients wrote the raw token without JSON encoding.
	raw := mintSessionToken(t, 3, auth.RoleOrganization, time.Now().Unix()+60)
	require.NoError(t, storage.Set(ctx, StorageKey, raw))

	store := NewStore(storage, nil)
	assert.Equal(t, raw, store.Get(ctx))
}

func TestStore_JSONEncodedValue(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	raw := mintSessionToken(t, 3, auth.RoleOrganization, time.Now().Unix()+60)
	encoded, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, storage.Set(ctx, StorageKey, string(encoded)))

	store := NewStore(storage, nil)
	assert.Equal(t, raw, store.Get(ctx))
}

func TestStore_NoStorageConfigured(t *testing.T) {
	store := NewStore(nil, nil)
	ctx := context.Background()

	// Every operation degrades instead of failing.
	assert.Equal(t, "", store.Get(ctx))
	assert.False(t, store.Set(ctx, "anything"))
	assert.True(t, store.Clear(ctx))
	assert.True(t, store.IsExpired(ctx))
}

func TestStore_IsExpiredWithStoredExpiredToken(t *testing.T) {
	store := NewStore(NewMemoryStorage(), nil)
	ctx := context.Background()

	store.Set(ctx, mintSessionToken(t, 5, auth.RoleVolunteer, time.Now().Unix()-1))
	assert.True(t, store.IsExpired(ctx))
}
