// internal/cache/sql.go
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/solatis/menukeeper/internal/types"
)

/*
 * Database-backed cache store.
 *
 * Shares cached badge and authorization values across instances of a
 * clustered deployment through the cache_entries table (SQLite for
 * development, PostgreSQL for production, matching the db layer).
 *
 * Values are JSON-encoded for storage. The round-trip turns all numbers
 * into float64 on read; badge consumers treat values as opaque display
 * data, so this is acceptable.
 *
 * Expiry: reads filter expired rows in SQL against a caller-supplied
 * clock; writes opportunistically purge expired rows so the table stays
 * bounded without a sweeper process.
 */

// Queries is the named-query interface the SQL store needs. Implemented
// by *db.Queries; declared locally so this package does not depend on
// the database wiring.
type Queries interface {
	Get(name string, dest interface{}, args ...interface{}) error
	Exec(name string, args ...interface{}) (sql.Result, error)
}

// SQL is a Store persisting entries through named queries on the
// cache_entries table.
type SQL struct {
	queries Queries

	// now is swapped in tests to control expiry without sleeping.
	now func() time.Time
}

// NewSQL creates a database-backed store over the given queries.
func NewSQL(queries Queries) *SQL {
	return &SQL{queries: queries, now: time.Now}
}

// SetNow replaces the store's clock. Test hook for expiry behavior;
// not safe to call concurrently with store access.
func (s *SQL) SetNow(now func() time.Time) {
	s.now = now
}

// Get implements Store.
func (s *SQL) Get(key string) (any, bool, error) {
	var row struct {
		Value string `db:"value"`
	}
	err := s.queries.Get("cache-get", &row, key, s.now().UTC())
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %q: %w", types.ErrCacheUnavailable, key, err)
	}

	var value any
	if err := json.Unmarshal([]byte(row.Value), &value); err != nil {
		// Undecodable rows are treated as absent and dropped; a corrupt
		// entry must not wedge resolution.
		_, _ = s.queries.Exec("cache-forget", key)
		return nil, false, nil
	}
	return value, true, nil
}

// Put implements Store. A non-positive TTL stores the value without
// expiry (NULL expires_at).
func (s *SQL) Put(key string, value any, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache put %q: %w", key, err)
	}

	var expiresAt sql.NullTime
	if ttl > 0 {
		expiresAt = sql.NullTime{Time: s.now().UTC().Add(ttl), Valid: true}
	}

	if _, err := s.queries.Exec("cache-put", key, string(encoded), expiresAt); err != nil {
		return fmt.Errorf("%w: put %q: %w", types.ErrCacheUnavailable, key, err)
	}

	// Opportunistic purge keeps the table bounded without a sweeper.
	_, _ = s.queries.Exec("cache-purge-expired", s.now().UTC())
	return nil
}

// Forget implements Store.
func (s *SQL) Forget(key string) error {
	if _, err := s.queries.Exec("cache-forget", key); err != nil {
		return fmt.Errorf("%w: forget %q: %w", types.ErrCacheUnavailable, key, err)
	}
	return nil
}

// ForgetPrefix implements PrefixForgetter.
func (s *SQL) ForgetPrefix(prefix string) error {
	if _, err := s.queries.Exec("cache-forget-prefix", prefix+"%"); err != nil {
		return fmt.Errorf("%w: forget prefix %q: %w", types.ErrCacheUnavailable, prefix, err)
	}
	return nil
}
