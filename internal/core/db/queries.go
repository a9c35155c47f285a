package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jmoiron/sqlx"
	"github.com/qustavo/dotsql"
)

//go:embed queries/*.sql
var queriesFS embed.FS

// Queries runs the service's own named statements against cache_entries
// and admin_keys. Statements are written once with ? placeholders and
// rebound per driver, so the same files serve SQLite and PostgreSQL.
type Queries struct {
	dot *dotsql.DotSql
	db  *sqlx.DB
}

// LoadQueries parses every embedded .sql file and merges their named
// queries. Each file groups one concern (cache.sql, admin_keys.sql);
// names are global across files, e.g. "cache-get", "insert-admin-key".
func LoadQueries(db *sqlx.DB) (*Queries, error) {
	paths, err := fs.Glob(queriesFS, "queries/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list query files: %w", err)
	}

	dots := make([]*dotsql.DotSql, 0, len(paths))
	for _, path := range paths {
		f, err := queriesFS.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		dot, err := dotsql.Load(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		dots = append(dots, dot)
	}

	return &Queries{dot: dotsql.Merge(dots...), db: db}, nil
}

// raw resolves a named query and rebinds its placeholders for the
// connected driver.
func (q *Queries) raw(name string) (string, error) {
	query, err := q.dot.Raw(name)
	if err != nil {
		return "", fmt.Errorf("unknown query %q", name)
	}
	return q.db.Rebind(query), nil
}

// Exec executes a named statement.
func (q *Queries) Exec(name string, args ...interface{}) (sql.Result, error) {
	query, err := q.raw(name)
	if err != nil {
		return nil, err
	}
	return q.db.Exec(query, args...)
}

// Get retrieves a single row into dest.
func (q *Queries) Get(name string, dest interface{}, args ...interface{}) error {
	query, err := q.raw(name)
	if err != nil {
		return err
	}
	return q.db.Get(dest, query, args...)
}

// Select retrieves multiple rows into the dest slice.
func (q *Queries) Select(name string, dest interface{}, args ...interface{}) error {
	query, err := q.raw(name)
	if err != nil {
		return err
	}
	return q.db.Select(dest, query, args...)
}
