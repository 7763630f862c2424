package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry_Expiry(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	require.NoError(t, reg.Put(ctx, "a", 1, time.Minute))
	require.NoError(t, reg.Put(ctx, "b", 2, time.Hour))

	id, err := reg.Lookup(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	now = now.Add(2 * time.Minute)
	_, err = reg.Lookup(ctx, "a")
	assert.ErrorIs(t, err, ErrNoSession)

	id, err = reg.Lookup(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	require.NoError(t, reg.Delete(ctx, "b"))
	_, err = reg.Lookup(ctx, "b")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryRegistry_PurgeExpired(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	require.NoError(t, reg.Put(ctx, "a", 1, time.Minute))
	require.NoError(t, reg.Put(ctx, "b", 2, time.Minute))
	require.NoError(t, reg.Put(ctx, "c", 3, time.Hour))

	n, err := reg.PurgeExpired(ctx, now.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, reg.Len())
}

func TestRedisRegistry(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping Redis tests")
	}
	ctx := context.Background()

	reg, err := NewRedisRegistry(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })

	require.NoError(t, reg.Put(ctx, "test-sid", 42, time.Minute))
	id, err := reg.Lookup(ctx, "test-sid")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	require.NoError(t, reg.Delete(ctx, "test-sid"))
	_, err = reg.Lookup(ctx, "test-sid")
	assert.ErrorIs(t, err, ErrNoSession)
}
