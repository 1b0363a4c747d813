// Package interfaces defines the contracts the core packages depend on.
// Concrete implementations live under infrastructure/.
package interfaces

import (
	"context"
	"time"
)

// Cache stores serialized catalog responses under string keys.
// Implementations are go-cache (memory), Redis and SQLite.
//
// Example usage:
//
//	// Store a lookup for five minutes
//	err := cache.Set(ctx, "meal:52772", detailJSON, 5*time.Minute)
//
//	// Retrieve it; any error is a miss
//	data, err := cache.Get(ctx, "meal:52772")
type Cache interface {
	// Get retrieves a value by key. A missing or expired key is an error.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL uses the backend's
	// default expiration, which is no expiry unless configured otherwise.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
