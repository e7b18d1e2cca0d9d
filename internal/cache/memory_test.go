package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetDel(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// Missing key reads as absent, not as an error
	_, found, err := store.Get(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))
	val, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", val)

	require.NoError(t, store.Del(ctx, "k"))
	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.nowFunc = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", "v", time.Hour))

	// Still alive just before the deadline
	now = now.Add(59 * time.Minute)
	_, found, _ := store.Get(ctx, "k")
	assert.True(t, found)

	// Gone after the deadline passes
	now = now.Add(2 * time.Minute)
	_, found, _ = store.Get(ctx, "k")
	assert.False(t, found)
}

func TestMemoryStoreExpireExtends(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.nowFunc = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", "v", time.Hour))

	// Extending the TTL moves the deadline forward
	now = now.Add(50 * time.Minute)
	require.NoError(t, store.Expire(ctx, "k", time.Hour))
	now = now.Add(55 * time.Minute)
	_, found, _ := store.Get(ctx, "k")
	assert.True(t, found)
}

func TestMemoryStoreKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "auth_token:a", "1", time.Minute))
	require.NoError(t, store.Set(ctx, "auth_token:b", "2", time.Minute))
	require.NoError(t, store.Set(ctx, "user_tokens:1", "[]", time.Minute))

	keys, err := store.Keys(ctx, "auth_token:*")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.NotContains(t, keys, "user_tokens:1")
}
