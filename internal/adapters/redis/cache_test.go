package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "travel_atlas/internal/adapters/redis"
	"travel_atlas/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_GetSetDel(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	var v domain.AttractionView
	ok, err := c.Get(ctx, "attraction:a1:ar", &v)
	require.NoError(t, err)
	assert.False(t, ok)

	in := domain.AttractionView{ID: "a1", Type: "متحف", TypeEn: "Museum", Language: "ar"}
	require.NoError(t, c.Set(ctx, "attraction:a1:ar", in, 60))
	ok, err = c.Get(ctx, "attraction:a1:ar", &v)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, v)

	require.NoError(t, c.Del(ctx, "attraction:a1:ar"))
	ok, _ = c.Get(ctx, "attraction:a1:ar", &v)
	assert.False(t, ok)
}

func TestCache_TTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", 1, 5))
	require.NoError(t, c.Set(ctx, "forever", 2, 0))
	assert.Equal(t, 5*time.Second, mr.TTL("short"))
	assert.Equal(t, time.Duration(0), mr.TTL("forever"))

	mr.FastForward(6 * time.Second)
	var n int
	ok, _ := c.Get(ctx, "short", &n)
	assert.False(t, ok)
	ok, _ = c.Get(ctx, "forever", &n)
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestCache_ServerDown(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()
	var n int
	_, err := c.Get(context.Background(), "k", &n)
	assert.Error(t, err)
}
