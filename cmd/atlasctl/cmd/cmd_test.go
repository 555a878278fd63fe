package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_atlas/internal/domain"
	"travel_atlas/internal/storage/memory"
	"travel_atlas/internal/storage/sqlite"
)

const fixture = `{
  "countries": [{"id": "italy", "name": "Italy", "continent": "Europe"}],
  "cities": [
    {"id": "rome", "name": "Rome", "country": "Italy", "continent": "Europe",
     "attractions": [
       {"id": "vatican-museums", "name": "Vatican Museums", "type": "Museum", "description": "Papal art collections"},
       {"id": "forum", "name": "Roman Forum", "type": "Ruins"}
     ]}
  ]
}`

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "atlas.db")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", dbPath)
	t.Setenv("METRICS_ADDR", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CRAWL_DELAY", "0s")
	t.Setenv("EXPORT_PATH", filepath.Join(dir, "dataset.json"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fixture.json"), []byte(fixture), 0o644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dryRun, batchSize, exportPath = false, 0, ""
	groupQuery, safeCrawl, viaAPI = false, false, false
	storeDriver, sqlitePath, memoryDump = "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedBackfillExport(t *testing.T) {
	dir := setup(t)

	out, err := run(t, "seed", filepath.Join(dir, "fixture.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 1 countries, 1 cities, 2 attractions")

	out, err = run(t, "backfill", "types", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Backfill completed successfully")

	out, err = run(t, "backfill", "types")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated:         2")

	_, err = run(t, "backfill", "descriptions", "--batch-size", "1")
	require.NoError(t, err)

	s, err := sqlite.NewStore(context.Background(), filepath.Join(dir, "atlas.db"), 0)
	require.NoError(t, err)
	d, err := s.Get(context.Background(), domain.Root(domain.CitiesCollection, "rome").Child(domain.AttractionsCollection, "vatican-museums"))
	require.NoError(t, err)
	assert.Equal(t, "متحف", d.Fields.Get(domain.FieldTypeAr))
	assert.NotEmpty(t, d.Fields.Get(domain.FieldDescriptionAr))
	require.NoError(t, s.Close())

	out, err = run(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "=== EXPORT COMPLETE ===")
	b, err := os.ReadFile(filepath.Join(dir, "dataset.json"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `"totalAttractions": 2`))

	out, err = run(t, "report", "types", "--group")
	require.NoError(t, err)
	assert.Contains(t, out, "=== SUMMARY ===")

	out, err = run(t, "sample")
	require.NoError(t, err)
	assert.Contains(t, out, "Total sample size: 2 attractions")
}

func TestMemoryDump_SeedThenBackfill(t *testing.T) {
	dir := setup(t)
	dump := filepath.Join(dir, "atlas.json")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("MEMORY_DUMP", dump)

	_, err := run(t, "seed", filepath.Join(dir, "fixture.json"))
	require.NoError(t, err)
	require.FileExists(t, dump)

	out, err := run(t, "backfill", "types")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated:         2")

	s, err := memory.Open(dump)
	require.NoError(t, err)
	d, err := s.Get(context.Background(), domain.Root(domain.CitiesCollection, "rome").Child(domain.AttractionsCollection, "forum"))
	require.NoError(t, err)
	assert.NotEmpty(t, d.Fields.Get(domain.FieldTypeAr))

	out, err = run(t, "backfill", "types")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated:         0")
	assert.NoFileExists(t, filepath.Join(dir, "atlas.db"))
}

func TestMemoryDumpFlagOverridesEnv(t *testing.T) {
	dir := setup(t)
	t.Setenv("STORE_DRIVER", "memory")
	dump := filepath.Join(dir, "flag.json")

	_, err := run(t, "--memory-dump", dump, "seed", filepath.Join(dir, "fixture.json"))
	require.NoError(t, err)
	b, err := os.ReadFile(dump)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"cities/rome/attractions/vatican-museums"`)
}

func TestBackfill_RejectsUnknownMode(t *testing.T) {
	setup(t)
	_, err := run(t, "backfill", "everything")
	assert.Error(t, err)
}

func TestStoreFlagOverridesEnv(t *testing.T) {
	setup(t)
	_, err := run(t, "--store", "bogus", "sample")
	assert.ErrorContains(t, err, "unsupported STORE_DRIVER")
}
