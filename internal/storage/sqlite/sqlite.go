// Package sqlite opens the embedded document store used for local runs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/qustavo/sqlhooks/v2"
	"modernc.org/sqlite"

	"travel_atlas/internal/storage/docsql"
)

const driverName = "sqliteWithHooks"

var Dialect = docsql.Dialect{
	Name:        "sqlite",
	Placeholder: squirrel.Question,
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS documents (
  path        TEXT PRIMARY KEY,
  collection  TEXT NOT NULL,
  doc_id      TEXT NOT NULL,
  parent_path TEXT NOT NULL DEFAULT '',
  fields      TEXT NOT NULL,
  updated_at  TIMESTAMP NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS documents_parent ON documents (collection, parent_path, doc_id)`,
	},
	UpsertSuffix: "ON CONFLICT (path) DO UPDATE SET fields = excluded.fields, updated_at = excluded.updated_at",
}

var register sync.Once

// Open opens (or creates) the database file at path in WAL mode.
func Open(ctx context.Context, path string, slow time.Duration) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	register.Do(func() {
		sql.Register(driverName, sqlhooks.Wrap(&sqlite.Driver{}, &docsql.Hooks{Threshold: slow}))
	})
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	// one writer at a time; concurrent seed workers queue on the pool
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func NewStore(ctx context.Context, path string, slow time.Duration) (*docsql.Store, error) {
	db, err := Open(ctx, path, slow)
	if err != nil {
		return nil, err
	}
	s := docsql.New(db, Dialect)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
