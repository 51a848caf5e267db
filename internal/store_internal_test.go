package internal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langkey/pkg/cache"
	"github.com/dmitrymomot/langkey/pkg/phparray"
)

func TestStore_storeSkipsOvertakenLoads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := cache.NewMemory()
	s := NewStore(t.TempDir(), WithCache(backend))

	key := cache.Key{Locale: "en", File: "/lang/en/auth.php"}
	entry := cache.Entry{Root: phparray.Mapping(nil), Source: "<?php return [];"}

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	require.NoError(t, s.Invalidate(ctx))
	s.store(ctx, gen, key, entry)

	has, err := backend.Has(ctx, key)
	require.NoError(t, err)
	require.False(t, has, "a load that began before the invalidation must not be cached")

	s.store(ctx, gen+1, key, entry)
	has, err = backend.Has(ctx, key)
	require.NoError(t, err)
	require.True(t, has)
}
