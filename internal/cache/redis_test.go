package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestLockIsExclusiveUntilReleased(t *testing.T) {
	ctx := context.Background()
	rc, _ := newTestClient(t)

	ok, err := rc.AcquireLock(ctx, "lock:checkout:s1", "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rc.AcquireLock(ctx, "lock:checkout:s1", "b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// a foreign value must not release someone else's lock
	require.NoError(t, rc.ReleaseLock(ctx, "lock:checkout:s1", "b"))
	ok, _ = rc.AcquireLock(ctx, "lock:checkout:s1", "b", time.Minute)
	assert.False(t, ok)

	require.NoError(t, rc.ReleaseLock(ctx, "lock:checkout:s1", "a"))
	ok, err = rc.AcquireLock(ctx, "lock:checkout:s1", "b", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLockExpires(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestClient(t)

	ok, err := rc.AcquireLock(ctx, "k", "a", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	ok, err = rc.AcquireLock(ctx, "k", "b", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedisClientFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(&Config{Addr: addr})
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestClient(t)

	type entry struct {
		Name string `json:"name"`
	}

	var got entry
	hit, err := rc.GetJSON(ctx, "categories:list", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, rc.SetJSON(ctx, "categories:list", entry{Name: "Almacén"}, time.Minute))
	hit, err = rc.GetJSON(ctx, "categories:list", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Almacén", got.Name)

	mr.FastForward(2 * time.Minute)
	hit, _ = rc.GetJSON(ctx, "categories:list", &got)
	assert.False(t, hit)
}

func TestCorruptEntryIsAnError(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestClient(t)
	require.NoError(t, mr.Set("k", "{"))

	var v map[string]any
	hit, err := rc.GetJSON(ctx, "k", &v)
	assert.False(t, hit)
	assert.Error(t, err)
}

func TestDeletePattern(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestClient(t)
	require.NoError(t, mr.Set("products:list:a", "1"))
	require.NoError(t, mr.Set("products:list:b", "1"))
	require.NoError(t, mr.Set("categories:list", "1"))

	require.NoError(t, rc.DeletePattern(ctx, "products:list:*"))

	assert.False(t, mr.Exists("products:list:a"))
	assert.False(t, mr.Exists("products:list:b"))
	assert.True(t, mr.Exists("categories:list"))
}

func TestNilClientAlwaysMisses(t *testing.T) {
	var rc *RedisClient
	ctx := context.Background()

	hit, err := rc.GetJSON(ctx, "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, rc.SetJSON(ctx, "k", 1, time.Minute))
	assert.NoError(t, rc.DeletePattern(ctx, "*"))
}
