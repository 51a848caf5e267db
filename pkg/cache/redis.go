package cache

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces the keys written by the Redis cache.
const DefaultPrefix = "langkey"

// Redis is a cache backed by Redis. Entries are stored as JSON under
// "{prefix}:{locale}:{file}" without expiration.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures the Redis cache.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix for all cache operations.
// Default: "langkey".
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRedis creates a new Redis-backed cache.
// The client should be obtained from pkg/redis.Open.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	c := cache.NewRedis(client, cache.WithPrefix("myapp-lang"))
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get retrieves an entry from Redis.
func (r *Redis) Get(ctx context.Context, key Key) (Entry, error) {
	data, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return unmarshalEntry(data)
}

// Set stores an entry in Redis without expiration.
func (r *Redis) Set(ctx context.Context, key Key, e Entry) error {
	data, err := marshalEntry(e)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.redisKey(key), data, 0).Err()
}

// Delete removes one entry.
func (r *Redis) Delete(ctx context.Context, key Key) error {
	return r.client.Del(ctx, r.redisKey(key)).Err()
}

// DeleteFile removes the entries of every locale for file.
// Keys are matched client-side so file paths never reach a SCAN pattern.
func (r *Redis) DeleteFile(ctx context.Context, file string) error {
	return r.scanDelete(ctx, func(redisKey string) bool {
		key, ok := r.parseKey(redisKey)
		return ok && key.within(file)
	})
}

// Has checks whether a key exists in Redis.
func (r *Redis) Has(ctx context.Context, key Key) (bool, error) {
	n, err := r.client.Exists(ctx, r.redisKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes every key under the configured prefix using SCAN.
func (r *Redis) Clear(ctx context.Context) error {
	return r.scanDelete(ctx, func(string) bool { return true })
}

// Close is a no-op for Redis. The client lifecycle is managed separately
// by the caller (via pkg/redis.Shutdown).
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) redisKey(key Key) string {
	return r.prefix + ":" + key.String()
}

func (r *Redis) parseKey(redisKey string) (Key, bool) {
	rest, ok := strings.CutPrefix(redisKey, r.prefix+":")
	if !ok {
		return Key{}, false
	}
	locale, file, ok := strings.Cut(rest, ":")
	if !ok {
		return Key{}, false
	}
	return Key{Locale: locale, File: file}, true
}

// scanDelete removes the prefixed keys accepted by match.
// SCAN does not block the server.
func (r *Redis) scanDelete(ctx context.Context, match func(redisKey string) bool) error {
	pattern := r.prefix + ":*"
	var cursor uint64

	for {
		keys, nextCursor, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}

		doomed := keys[:0]
		for _, k := range keys {
			if match(k) {
				doomed = append(doomed, k)
			}
		}
		if len(doomed) > 0 {
			if err := r.client.Del(ctx, doomed...).Err(); err != nil {
				return err
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			return nil
		}
	}
}

var _ Cache = (*Redis)(nil)
