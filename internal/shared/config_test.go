package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_atlas/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := shared.Load()
	require.NoError(t, err)
	assert.Equal(t, shared.DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, 500, cfg.BatchSize)
	assert.Equal(t, 3, cfg.CommitAttempts)
	assert.Equal(t, 10, cfg.CrawlEvery)
	assert.Equal(t, 2*time.Second, cfg.CrawlDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.SlowQuery)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("BACKFILL_BATCH_SIZE", "50")
	t.Setenv("CRAWL_DELAY", "250ms")
	t.Setenv("MEMORY_DUMP", "data/atlas.json")
	cfg, err := shared.Load()
	require.NoError(t, err)
	assert.Equal(t, shared.DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "data/atlas.json", cfg.MemoryDump)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.CrawlDelay)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":      {"STORE_DRIVER": "oracle"},
		"firestore project":   {"STORE_DRIVER": "firestore", "FIRESTORE_PROJECT_ID": ""},
		"mongo uri":           {"STORE_DRIVER": "mongo", "MONGO_URI": ""},
		"batch size":          {"STORE_DRIVER": "memory", "BACKFILL_BATCH_SIZE": "0"},
		"unparseable integer": {"STORE_DRIVER": "memory", "REDIS_DB": "one"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := shared.Load()
			assert.Error(t, err)
		})
	}
}
