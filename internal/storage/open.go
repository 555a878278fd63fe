// Package storage selects the DocumentStore implementation named by the
// configuration.
package storage

import (
	"context"
	"fmt"

	"travel_atlas/internal/domain"
	"travel_atlas/internal/shared"
	"travel_atlas/internal/storage/firestore"
	"travel_atlas/internal/storage/memory"
	"travel_atlas/internal/storage/mongo"
	"travel_atlas/internal/storage/mysql"
	"travel_atlas/internal/storage/postgres"
	"travel_atlas/internal/storage/sqlite"
)

func Open(ctx context.Context, cfg shared.Config) (domain.DocumentStore, error) {
	var (
		s   domain.DocumentStore
		err error
	)
	switch cfg.StoreDriver {
	case shared.DriverMemory:
		if cfg.MemoryDump == "" {
			return memory.New(), nil
		}
		s, err = memory.Open(cfg.MemoryDump)
	case shared.DriverSQLite:
		s, err = sqlite.NewStore(ctx, cfg.SQLitePath, cfg.SlowQuery)
	case shared.DriverMySQL:
		s, err = mysql.NewStore(ctx, cfg.MySQLDSN, cfg.SlowQuery)
	case shared.DriverPostgres:
		s, err = postgres.NewStore(ctx, cfg.PostgresDSN, cfg.SlowQuery)
	case shared.DriverFirestore:
		s, err = firestore.New(ctx, firestore.Config{
			ProjectID:       cfg.FirestoreProjectID,
			CredentialsFile: cfg.FirestoreCredential,
		})
	case shared.DriverMongo:
		s, err = mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	return s, nil
}
