//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langkey/pkg/cache"
	"github.com/dmitrymomot/langkey/pkg/phparray"
	"github.com/dmitrymomot/langkey/pkg/redis"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestRedis_GetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewRedis(newTestRedisClient(t), cache.WithPrefix("test-getset"))
	t.Cleanup(func() { _ = c.Clear(ctx) })

	key := cache.Key{Locale: "en", File: "/app/lang/en/auth.php"}

	_, err := c.Get(ctx, key)
	require.ErrorIs(t, err, cache.ErrNotFound)

	src := `<?php return ['failed' => 'Nope.', 'empty' => '', 'group' => []];`
	modTime := time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC)
	require.NoError(t, c.Set(ctx, key, cache.Entry{
		Root: phparray.Mapping(map[string]*phparray.Node{
			"failed": phparray.Leaf("Nope."),
			"empty":  phparray.Leaf(""),
			"group":  phparray.Mapping(nil),
		}),
		Source:  src,
		ModTime: modTime,
		Size:    int64(len(src)),
	}))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, src, got.Source)
	require.True(t, got.ModTime.Equal(modTime), "stamp must survive the round-trip")
	require.Equal(t, int64(len(src)), got.Size)

	empty, ok := got.Root.Child("empty")
	require.True(t, ok)
	require.True(t, empty.IsLeaf())

	group, ok := got.Root.Child("group")
	require.True(t, ok)
	require.False(t, group.IsLeaf())
}

func TestRedis_DeleteFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewRedis(newTestRedisClient(t), cache.WithPrefix("test-deletefile"))
	t.Cleanup(func() { _ = c.Clear(ctx) })

	en := cache.Key{Locale: "en", File: "/app/lang/en/auth.php"}
	es := cache.Key{Locale: "es", File: "/app/lang/en/auth.php"}
	other := cache.Key{Locale: "en", File: "/app/lang/en/validation.php"}
	for _, k := range []cache.Key{en, es, other} {
		require.NoError(t, c.Set(ctx, k, cache.Entry{Root: phparray.Mapping(nil), Source: k.String()}))
	}

	require.NoError(t, c.DeleteFile(ctx, en.File))

	for _, k := range []cache.Key{en, es} {
		has, err := c.Has(ctx, k)
		require.NoError(t, err)
		require.False(t, has)
	}

	has, err := c.Has(ctx, other)
	require.NoError(t, err)
	require.True(t, has)
}

func TestRedis_ClearKeepsOtherPrefixes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestRedisClient(t)
	a := cache.NewRedis(client, cache.WithPrefix("test-clear-a"))
	b := cache.NewRedis(client, cache.WithPrefix("test-clear-b"))
	t.Cleanup(func() { _ = b.Clear(ctx) })

	key := cache.Key{Locale: "en", File: "/lang/en/auth.php"}
	require.NoError(t, a.Set(ctx, key, cache.Entry{Root: phparray.Mapping(nil)}))
	require.NoError(t, b.Set(ctx, key, cache.Entry{Root: phparray.Mapping(nil)}))

	require.NoError(t, a.Clear(ctx))

	has, err := a.Has(ctx, key)
	require.NoError(t, err)
	require.False(t, has)

	has, err = b.Has(ctx, key)
	require.NoError(t, err)
	require.True(t, has)
}
