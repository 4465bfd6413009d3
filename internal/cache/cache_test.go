package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k"))

	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), -time.Second))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, KeyPrefixDashboardStats, []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, KeyPrefixJobStats, []byte("b"), time.Minute))
	require.NoError(t, c.Set(ctx, "other:key", []byte("c"), time.Minute))

	require.NoError(t, c.DeleteByPattern(ctx, "cache:dashboard:*"))

	_, err := c.Get(ctx, KeyPrefixDashboardStats)
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, KeyPrefixJobStats)
	assert.ErrorIs(t, err, ErrCacheMiss)

	got, err := c.Get(ctx, "other:key")
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), got)
}

func TestNoOpCacheAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	c := NewNoOpCache()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
