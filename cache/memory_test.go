package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedMeta struct {
	ID       uint   `json:"id"`
	Filename string `json:"filename"`
}

// TestMemoryCache_SetGet 写入后可以按原类型读回
func TestMemoryCache_SetGet(t *testing.T) {
	c, err := NewMemoryCache()
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	original := cachedMeta{ID: 42, Filename: "report-0123456789abc.pdf"}

	require.NoError(t, c.Set(ctx, "reference_meta_42", original, time.Minute))

	var got cachedMeta
	require.NoError(t, c.Get(ctx, "reference_meta_42", &got))
	assert.Equal(t, original, got)
}

// TestMemoryCache_Miss 未写入的键返回缓存未命中
func TestMemoryCache_Miss(t *testing.T) {
	c, err := NewMemoryCache()
	require.NoError(t, err)
	defer c.Close()

	var got cachedMeta
	err = c.Get(context.Background(), "missing", &got)
	assert.True(t, IsCacheMiss(err))
}

// TestMemoryCache_Delete 删除后的键不再命中
func TestMemoryCache_Delete(t *testing.T) {
	c, err := NewMemoryCache()
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "key", cachedMeta{ID: 1}, time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	var got cachedMeta
	assert.True(t, IsCacheMiss(c.Get(ctx, "key", &got)))
}
