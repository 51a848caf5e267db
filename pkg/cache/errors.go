package cache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrNotFound is returned when a key does not exist in the cache.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrClosed is returned when an operation is attempted on a closed cache.
	ErrClosed = errors.New("cache: closed")

	// ErrMarshal is returned when entry serialization fails.
	ErrMarshal = errors.New("cache: failed to marshal entry")

	// ErrUnmarshal is returned when entry deserialization fails.
	ErrUnmarshal = errors.New("cache: failed to unmarshal entry")
)
