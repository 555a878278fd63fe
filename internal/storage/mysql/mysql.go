// Package mysql opens the MySQL-backed document store.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/qustavo/sqlhooks/v2"

	"travel_atlas/internal/storage/docsql"
)

const driverName = "mysqlWithHooks"

var Dialect = docsql.Dialect{
	Name:         "mysql",
	Placeholder:  squirrel.Question,
	Schema:       []string{createDocumentsSQL},
	UpsertSuffix: upsertDocumentSuffix,
}

var register sync.Once

// Open connects to dsn, creating the database when it does not exist.
// Statements slower than slow are printed.
func Open(ctx context.Context, dsn string, slow time.Duration) (*sql.DB, error) {
	register.Do(func() {
		sql.Register(driverName, sqlhooks.Wrap(&mysql.MySQLDriver{}, &docsql.Hooks{Threshold: slow}))
	})
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql dsn: %w", err)
	}
	if name := cfg.DBName; name != "" {
		cfg.DBName = ""
		admin, err := sql.Open(driverName, cfg.FormatDSN())
		if err != nil {
			return nil, err
		}
		_, err = admin.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4", name))
		_ = admin.Close()
		if err != nil {
			return nil, fmt.Errorf("create database %s: %w", name, err)
		}
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(50)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewStore opens dsn and migrates the documents table.
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
