package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Total int    `json:"total"`
	Label string `json:"label"`
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisCache(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRedisCache_SetGet(t *testing.T) {
	mr, c := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "dashboard", snapshot{Total: 4, Label: "x"}, time.Minute))
	assert.True(t, mr.Exists(KeyPrefix+"dashboard"))

	var got snapshot
	ok, err := c.Get(ctx, "dashboard", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, snapshot{Total: 4, Label: "x"}, got)
}

func TestRedisCache_Miss(t *testing.T) {
	_, c := setupTestRedis(t)

	var got snapshot
	ok, err := c.Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_Expiry(t *testing.T) {
	mr, c := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "dashboard", snapshot{Total: 1}, 30*time.Second))
	mr.FastForward(31 * time.Second)

	var got snapshot
	ok, err := c.Get(ctx, "dashboard", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_Delete(t *testing.T) {
	mr, c := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Delete(ctx, "a", "b", "missing"))
	require.NoError(t, c.Delete(ctx))

	assert.False(t, mr.Exists(KeyPrefix+"a"))
	assert.False(t, mr.Exists(KeyPrefix+"b"))
}

func TestRedisCache_CorruptValue(t *testing.T) {
	mr, c := setupTestRedis(t)
	require.NoError(t, mr.Set(KeyPrefix+"dashboard", "{not json"))

	var got snapshot
	ok, err := c.Get(context.Background(), "dashboard", &got)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, err := Connect(context.Background(), "redis://"+mr.Addr()+"/0", logger)
	require.NoError(t, err)
	defer c.Close()

	_, err = Connect(context.Background(), "not-a-url", logger)
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var v int
	ok, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Delete(ctx, "k"))
}
