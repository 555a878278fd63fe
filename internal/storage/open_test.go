package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_atlas/internal/domain"
	"travel_atlas/internal/shared"
	"travel_atlas/internal/storage"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := shared.Config{StoreDriver: shared.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "nested", "atlas.db")}
	s, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(domain.ChildCounter)
	assert.True(t, ok)
	parents, err := s.ListParents(context.Background(), domain.CitiesCollection)
	require.NoError(t, err)
	assert.Empty(t, parents)
}

func TestOpen_Memory(t *testing.T) {
	s, err := storage.Open(context.Background(), shared.Config{StoreDriver: shared.DriverMemory})
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestOpen_MemoryDumpPersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	cfg := shared.Config{StoreDriver: shared.DriverMemory, MemoryDump: filepath.Join(t.TempDir(), "atlas.json")}
	rome := domain.Root(domain.CitiesCollection, "rome")

	s, err := storage.Open(ctx, cfg)
	require.NoError(t, err)
	b := s.BeginBatch()
	b.Set(rome, domain.Fields{"name": "Rome"})
	require.NoError(t, b.Commit(ctx))
	b = s.BeginBatch()
	b.Update(rome, domain.Fields{"nameAr": "روما"})
	require.NoError(t, b.Commit(ctx))
	require.NoError(t, s.Close())

	s, err = storage.Open(ctx, cfg)
	require.NoError(t, err)
	defer s.Close()
	parents, err := s.ListParents(ctx, domain.CitiesCollection)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, "روما", parents[0].Fields.Get("nameAr"))
}

func TestOpen_Unknown(t *testing.T) {
	_, err := storage.Open(context.Background(), shared.Config{StoreDriver: "oracle"})
	assert.Error(t, err)
}
