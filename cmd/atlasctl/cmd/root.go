// Package cmd holds the atlasctl subcommands: the Arabic backfills, the
// dataset export, the coverage reports and the fixture seed.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"travel_atlas/internal/adapters/observability"
	redisad "travel_atlas/internal/adapters/redis"
	"travel_atlas/internal/app"
	"travel_atlas/internal/crawl"
	"travel_atlas/internal/domain"
	"travel_atlas/internal/shared"
	"travel_atlas/internal/storage"
)

var (
	storeDriver string
	sqlitePath  string
	memoryDump  string

	cfg    shared.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "atlasctl",
	Short: "Travel atlas maintenance tool",
	Long: `atlasctl runs the catalog maintenance jobs: Arabic type and description
backfills, the attractions dataset export, coverage reports and fixture seeding.
Connection settings come from the environment (STORE_DRIVER, SQLITE_PATH, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := shared.Load()
		if err != nil {
			return err
		}
		if storeDriver != "" {
			c.StoreDriver = storeDriver
		}
		if sqlitePath != "" {
			c.SQLitePath = sqlitePath
		}
		if memoryDump != "" {
			c.MemoryDump = memoryDump
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		// stdout carries the reports, logs go to stderr
		logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv, cfg.LogLevel)
		log.Logger = logger
		observability.Serve()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "store driver (memory|sqlite|mysql|postgres|firestore|mongo), overrides STORE_DRIVER")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite-path", "", "sqlite database file, overrides SQLITE_PATH")
	rootCmd.PersistentFlags().StringVar(&memoryDump, "memory-dump", "", "JSON file backing the memory store, overrides MEMORY_DUMP")
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func openStore(ctx context.Context) (domain.DocumentStore, error) {
	s, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("driver", cfg.StoreDriver).Msg("store ready")
	return s, nil
}

// closeStore closes s into *err unless the command already failed. The memory
// store writes its dump file on Close.
func closeStore(s domain.DocumentStore, err *error) {
	if cerr := s.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close store: %w", cerr)
	}
}

// openCache returns the shared API cache, or nil when REDIS_ADDR is unset.
func openCache(ctx context.Context) (*redisad.Cache, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
	}
	return c, nil
}

// invalidateCache drops the API's cached responses after a write. Failures
// are logged, not returned.
func invalidateCache(ctx context.Context) {
	c, err := openCache(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("cache invalidation skipped")
		return
	}
	if c == nil {
		return
	}
	defer c.Close()
	if err := app.Invalidate(ctx, c); err != nil {
		logger.Warn().Err(err).Msg("cache invalidation failed")
		return
	}
	logger.Info().Msg("catalog cache invalidated")
}

func newCrawler(store domain.DocumentStore, limit int) *crawl.Crawler {
	return crawl.New(store, crawl.Config{
		Every: cfg.CrawlEvery,
		Delay: cfg.CrawlDelay,
		RPS:   cfg.CrawlRPS,
		Limit: limit,
	}, logger)
}
