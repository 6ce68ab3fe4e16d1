package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/rathodv/maya"
)

// Compile-time interface verification.
var _ maya.Cache = (*Cache)(nil)

// Cache implements maya.Cache on a SQLite table. Expired rows are
// purged lazily on read and in bulk via PurgeExpired.
type Cache struct {
	db *DB

	// now allows tests to control time.
	now func() time.Time
}

// NewCache creates a new Cache.
func NewCache(db *DB) *Cache {
	return &Cache{db: db, now: time.Now}
}

// Get returns the value for key. Returns ENOTFOUND if the key is absent
// or expired; an expired row is deleted on the way out.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var expiresAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT value, expires_at FROM cache_entries WHERE key = ?
	`, key).Scan(&value, &expiresAt)

	if err == sql.ErrNoRows {
		return nil, maya.Errorf(maya.ENOTFOUND, "cache key not found")
	}
	if err != nil {
		return nil, err
	}

	expiry, err := parseRFC3339(expiresAt, "expires_at")
	if err != nil {
		return nil, err
	}
	if !c.now().UTC().Before(expiry) {
		_, _ = c.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE key = ?", key)
		return nil, maya.Errorf(maya.ENOTFOUND, "cache key expired")
	}

	return value, nil
}

// Set stores value under key for ttl. An existing entry is replaced.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return maya.Errorf(maya.EINVALID, "cache key required")
	}
	if ttl <= 0 {
		return maya.Errorf(maya.EINVALID, "cache TTL must be positive")
	}

	expiresAt := c.now().UTC().Add(ttl).Format(time.RFC3339Nano)
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at
	`, key, value, expiresAt)

	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE key = ?", key)
	return err
}

// PurgeExpired removes all expired entries and returns the number
// deleted. Intended for periodic housekeeping.
func (c *Cache) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM cache_entries WHERE expires_at <= ?
	`, c.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
