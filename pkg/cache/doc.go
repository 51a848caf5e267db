// Package cache stores parsed translation files with in-memory and Redis implementations.
//
// Both implementations share the [Cache] interface, so a single process can
// keep entries in memory while several processes serving the same workspace
// can share them through Redis.
//
// # Interface
//
// Entries are keyed by [Key], a locale plus the absolute path of the file:
//
//   - Get(ctx, key) (Entry, error): retrieve an entry
//   - Set(ctx, key, entry) error: store an entry
//   - Delete(ctx, key) error: remove one entry
//   - DeleteFile(ctx, file) error: remove a file's entries in every locale
//   - Has(ctx, key) (bool, error): check existence
//   - Clear(ctx) error: remove all entries
//   - Close() error: release resources
//
// Entries never expire. A cached file is considered current until it is
// deleted or the cache is cleared.
//
// # In-Memory Cache
//
// Use [NewMemory] for a single process. It uses a hash map for O(1) lookups
// and a doubly-linked list for O(1) LRU eviction when bounded:
//
//	c := cache.NewMemory(cache.WithMaxEntries(512))
//	defer c.Close()
//
//	key := cache.Key{Locale: "en", File: "/app/lang/en/auth.php"}
//	_ = c.Set(ctx, key, cache.Entry{Root: root, Source: src})
//	e, err := c.Get(ctx, key)
//
// # Redis Cache
//
// Use [NewRedis] to share entries between processes. Requires a
// [github.com/redis/go-redis/v9.UniversalClient] from
// [github.com/dmitrymomot/langkey/pkg/redis]:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	c := cache.NewRedis(client, cache.WithPrefix("myapp-lang"))
//
// Entries are stored as JSON. The parsed tree keeps the difference between an
// empty mapping and an empty string through the round-trip.
//
// # Error Handling
//
//   - [ErrNotFound]: key does not exist
//   - [ErrClosed]: operation on a closed cache
//   - [ErrMarshal]: entry serialization failed
//   - [ErrUnmarshal]: entry deserialization failed
package cache
