// Package cache provides the pluggable key-value store backing badge and
// authorization memoization.
//
// The store is the only shared mutable resource in menu resolution:
// concurrent requests resolving the same cached node within a TTL window
// observe the same value. Writes are idempotent (last writer wins) since
// callbacks are assumed deterministic within a window; single-flight
// de-duplication under a stampede is deliberately not provided.
package cache

import "time"

// Store is the key-value contract shared by badge and authorization
// caching. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the cached value and whether a live entry exists.
	// Expired entries report absent.
	Get(key string) (any, bool, error)

	// Put stores value under key for the TTL duration. A non-positive
	// TTL stores the value without expiry.
	Put(key string, value any, ttl time.Duration) error

	// Forget removes the entry regardless of remaining TTL.
	Forget(key string) error
}

// PrefixForgetter is implemented by stores that can clear a whole key
// namespace at once. Used by cache administration to wipe badge or
// authorization entries without enumerating nodes and actors.
type PrefixForgetter interface {
	ForgetPrefix(prefix string) error
}
