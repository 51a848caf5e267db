// Package redis opens the go-redis client used by the shared translation cache.
//
// [Open] parses a redis:// or rediss:// URL, applies the pool and timeout
// options, and retries the first PING before giving up with
// [ErrConnectionFailed]:
//
//	client, err := redis.Open(ctx, os.Getenv("LANGKEY_REDIS_URL"),
//	    redis.WithRetry(5, 500*time.Millisecond),
//	    redis.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	entries := cache.NewRedis(client)
//
// [Healthcheck] adapts the client to a readiness check and [Shutdown] closes
// it from the server's shutdown hooks.
package redis
