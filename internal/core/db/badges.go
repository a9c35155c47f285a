package db

import (
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/qustavo/dotsql"
)

// BadgeQueries runs host-supplied count queries for dynamic badges.
// Queries live in an external file the host points the service at, not
// in the embedded set: badge semantics belong to the host's schema.
// Each query must select a single integer and take no parameters.
type BadgeQueries struct {
	dot *dotsql.DotSql
	db  *sqlx.DB
}

// LoadBadgeQueries loads named count queries from a .sql file on disk.
func LoadBadgeQueries(db *sqlx.DB, path string) (*BadgeQueries, error) {
	dot, err := dotsql.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load badge queries from %s: %w", path, err)
	}
	return &BadgeQueries{dot: dot, db: db}, nil
}

// Count executes the named count query. Satisfies menudef.BadgeSource.
func (b *BadgeQueries) Count(name string) (int64, error) {
	query, err := b.dot.Raw(name)
	if err != nil {
		return 0, fmt.Errorf("badge query not found: %s", name)
	}
	var n int64
	if err := b.db.Get(&n, b.db.Rebind(query)); err != nil {
		return 0, fmt.Errorf("badge query %s failed: %w", name, err)
	}
	return n, nil
}

// Names returns the loaded query names sorted, for startup logging.
func (b *BadgeQueries) Names() []string {
	queryMap := b.dot.QueryMap()
	names := make([]string, 0, len(queryMap))
	for name := range queryMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
