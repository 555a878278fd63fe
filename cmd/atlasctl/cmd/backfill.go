package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"travel_atlas/internal/backfill"
)

var (
	dryRun    bool
	batchSize int
)

var backfillCmd = &cobra.Command{
	Use:       "backfill types|descriptions",
	Short:     "Write typeAr or descriptionAr on every attraction",
	Long:      `backfill walks every city and its attractions and writes the Arabic type label (types) or the Arabic description (descriptions), committing in batches of at most 500 writes. Re-running is safe: unchanged documents are not rewritten.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(backfill.ModeTypes), string(backfill.ModeDescriptions)},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		mode := backfill.Mode(args[0])

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(store, &err)

		size := cfg.BatchSize
		if batchSize > 0 {
			size = batchSize
		}
		rep := backfill.Multi{
			backfill.NewLogReporter(logger),
			backfill.NewConsoleReporter(cmd.OutOrStdout()),
			backfill.NewMetricsReporter(mode),
		}
		d, err := backfill.NewDriver(store, backfill.Config{
			Mode:           mode,
			BatchSize:      size,
			CommitAttempts: cfg.CommitAttempts,
			DryRun:         dryRun,
		}, rep, logger)
		if err != nil {
			return err
		}

		stats, err := d.Run(ctx)
		if err != nil {
			return fmt.Errorf("backfill %s: %w", mode, err)
		}
		if !dryRun && stats.Updated > 0 {
			invalidateCache(ctx)
		}
		return nil
	},
}

func init() {
	backfillCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute and report changes without writing")
	backfillCmd.Flags().IntVar(&batchSize, "batch-size", 0, "writes per commit (max 500), overrides BACKFILL_BATCH_SIZE")
	rootCmd.AddCommand(backfillCmd)
}
