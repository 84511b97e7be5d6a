package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUGetSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRU(2)
	require.NoError(t, err)

	_, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	got, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), got)

	require.NoError(t, c.Delete(ctx, "a"))
	_, ok, _ = c.Get(ctx, "a")
	assert.False(t, ok)
}

func TestLRUExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRU(4)
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	now = now.Add(30 * time.Second)
	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(31 * time.Second)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRUEviction(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRU(2)
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	_, _, _ = c.Get(ctx, "a")
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 0))

	_, ok, _ := c.Get(ctx, "b")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestLRUCopiesValue(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRU(1)
	require.NoError(t, err)

	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, 0))
	buf[0] = 'z'

	got, _, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), got)
}

func TestNewLRUInvalidSize(t *testing.T) {
	_, err := NewLRU(0)
	assert.Error(t, err)
}

func TestRedisPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	assert.Equal(t, "fluentdb:", NewRedis(client, "").Prefix)
	assert.Equal(t, "app:", NewRedis(client, "app:").Prefix)
}

func TestRedisUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	r := NewRedis(client, "")
	_, ok, err := r.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}
