package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/studio-portfolio/internal/config"
	"github.com/magabrotheeeer/studio-portfolio/internal/models"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		DialTimeout:  time.Second,
		TimeoutRedis: time.Second,
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	link := "https://example.com"
	expected := []models.Project{
		{ID: 1, Title: "Shop", Technologies: []string{"Go"}, Link: &link, Featured: true},
		{ID: 2, Title: "Blog", Technologies: []string{"React"}},
	}
	require.NoError(t, cache.Set(ctx, "projects:all", expected, time.Minute))

	var actual []models.Project
	found, err := cache.Get(ctx, "projects:all", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out []models.Service
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "key"))

	var out string
	found, err := cache.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetExpires(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "services:all", []string{"a"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var out []string
	found, err := cache.Get(ctx, "services:all", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	err := cache.Db.Set(ctx, "bad", []byte("not-json"), time.Minute).Err()
	require.NoError(t, err)

	var out []models.Project
	found, err := cache.Get(ctx, "bad", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestSetUnmarshalableValue(t *testing.T) {
	cache, _ := setupTestCache(t)

	err := cache.Set(context.Background(), "bad", make(chan int), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.Set")
}

func TestInitServerInvalidAddr(t *testing.T) {
	cfg := config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	}

	_, err := InitServer(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c Noop
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var out int
	found, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Invalidate(ctx, "k"))
	assert.NoError(t, c.Close())
}
