// Package postgres opens the Postgres-backed document store through the
// pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/qustavo/sqlhooks/v2"

	"travel_atlas/internal/storage/docsql"
)

const driverName = "pgxWithHooks"

var Dialect = docsql.Dialect{
	Name:        "postgres",
	Placeholder: squirrel.Dollar,
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS documents (
  path        TEXT PRIMARY KEY,
  collection  TEXT NOT NULL,
  doc_id      TEXT NOT NULL,
  parent_path TEXT NOT NULL DEFAULT '',
  fields      TEXT NOT NULL,
  updated_at  TIMESTAMPTZ NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS documents_parent ON documents (collection, parent_path, doc_id)`,
	},
	UpsertSuffix: "ON CONFLICT (path) DO UPDATE SET fields = excluded.fields, updated_at = excluded.updated_at",
}

var register sync.Once

func Open(ctx context.Context, dsn string, slow time.Duration) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	register.Do(func() {
		sql.Register(driverName, sqlhooks.Wrap(&stdlib.Driver{}, &docsql.Hooks{Threshold: slow}))
	})
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(50)
	db.SetConnMaxIdleTime(10 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func NewStore(ctx context.Context, dsn string, slow time.Duration) (*docsql.Store, error) {
	db, err := Open(ctx, dsn, slow)
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
