package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPage struct {
	IDs   []int64 `json:"ids"`
	Total int64   `json:"total"`
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(16, time.Minute)

	var miss cachedPage
	found, err := c.Get(ctx, "events:list:1", &miss)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "events:list:1", cachedPage{IDs: []int64{1, 2}, Total: 2}, time.Minute))

	var hit cachedPage
	found, err = c.Get(ctx, "events:list:1", &hit)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int64{1, 2}, hit.IDs)
	assert.Equal(t, int64(2), hit.Total)
}

func TestMemoryCache_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(16, time.Minute)

	require.NoError(t, c.Set(ctx, PrefixEvents+"a", 1, 0))
	require.NoError(t, c.Set(ctx, PrefixEvents+"b", 2, 0))
	require.NoError(t, c.Set(ctx, PrefixSeries+"a", 3, 0))

	require.NoError(t, c.DeletePrefix(ctx, PrefixEvents))
	assert.Equal(t, 1, c.Len())

	var v int
	found, _ := c.Get(ctx, PrefixSeries+"a", &v)
	assert.True(t, found)
	assert.Equal(t, 3, v)
}

func TestMemoryCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(16, 20*time.Millisecond)

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	time.Sleep(60 * time.Millisecond)

	var v string
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2, time.Minute)

	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Set(ctx, "c", 3, 0))

	var v int
	found, _ := c.Get(ctx, "a", &v)
	assert.False(t, found)
	assert.Equal(t, 2, c.Len())
}
