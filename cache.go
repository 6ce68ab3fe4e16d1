package maya

import (
	"context"
	"time"
)

// Cache is a TTL key-value store for expensive lookups (search results,
// issued one-time codes). Values are opaque bytes; callers handle their
// own serialization.
type Cache interface {
	// Get returns the value for key.
	// Returns ENOTFOUND if the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for ttl. An existing entry is replaced.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
