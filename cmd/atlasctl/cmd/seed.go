package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"travel_atlas/internal/app"
	"travel_atlas/internal/domain"
)

var seedCmd = &cobra.Command{
	Use:   "seed fixture.json",
	Short: "Import countries, cities, attractions and metadata from a JSON fixture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		fx, err := app.ReadFixture(f)
		if err != nil {
			return err
		}

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(store, &err)

		var cache domain.Cache
		rc, err := openCache(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("seeding without cache invalidation")
		} else if rc != nil {
			defer rc.Close()
			cache = rc
		}

		res, err := app.NewSeedService(store, cache, cfg.BatchSize, cfg.SeedWorkers, logger).Import(ctx, fx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d countries, %d cities, %d attractions, %d metadata documents\n",
			res.Countries, res.Cities, res.Attractions, res.Metadata)
		if len(res.Failed) > 0 {
			return fmt.Errorf("%d cities failed: %v", len(res.Failed), res.Failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
