package shared

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMemory    = "memory"
	DriverSQLite    = "sqlite"
	DriverMySQL     = "mysql"
	DriverPostgres  = "postgres"
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
)

type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`

	StoreDriver         string        `envconfig:"STORE_DRIVER" default:"sqlite"`
	SQLitePath          string        `envconfig:"SQLITE_PATH" default:"data/atlas.db"`
	MemoryDump          string        `envconfig:"MEMORY_DUMP" default:""`
	MySQLDSN            string        `envconfig:"MYSQL_DSN" default:"root:root@tcp(localhost:3306)/atlas?charset=utf8mb4&loc=UTC"`
	PostgresDSN         string        `envconfig:"POSTGRES_DSN" default:""`
	MongoURI            string        `envconfig:"MONGO_URI" default:""`
	MongoDatabase       string        `envconfig:"MONGO_DATABASE" default:"atlas"`
	FirestoreProjectID  string        `envconfig:"FIRESTORE_PROJECT_ID" default:""`
	FirestoreCredential string        `envconfig:"FIRESTORE_CREDENTIALS_FILE" default:""`
	SlowQuery           time.Duration `envconfig:"SLOW_QUERY" default:"500ms"`

	RedisAddr string        `envconfig:"REDIS_ADDR" default:""`
	RedisPass string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB   int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"15m"`

	BatchSize      int `envconfig:"BACKFILL_BATCH_SIZE" default:"500"`
	CommitAttempts int `envconfig:"BACKFILL_COMMIT_ATTEMPTS" default:"3"`
	SeedWorkers    int `envconfig:"SEED_WORKERS" default:"4"`

	CrawlEvery int           `envconfig:"CRAWL_EVERY" default:"10"`
	CrawlDelay time.Duration `envconfig:"CRAWL_DELAY" default:"2s"`
	CrawlRPS   float64       `envconfig:"CRAWL_RPS" default:"0"`

	ExportPath  string  `envconfig:"EXPORT_PATH" default:"attractions-dataset.json"`
	AtlasAPIURL string  `envconfig:"ATLAS_API_URL" default:"http://localhost:8080"`
	AtlasAPIRPS float64 `envconfig:"ATLAS_API_RPS" default:"5"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite, DriverMySQL, DriverPostgres:
	case DriverFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("config: FIRESTORE_PROJECT_ID is required for the firestore driver")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("config: MONGO_URI is required for the mongo driver")
		}
	default:
		return fmt.Errorf("config: unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("config: BACKFILL_BATCH_SIZE must be positive")
	}
	if c.RedisAddr == "" {
		log.Debug().Msg("REDIS_ADDR is empty, using the in-process cache")
	}
	return nil
}
