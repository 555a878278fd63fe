package cmd

import (
	"github.com/spf13/cobra"

	"travel_atlas/internal/domain"
	"travel_atlas/internal/report"
)

var (
	groupQuery bool
	safeCrawl  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Read-only catalog reports",
}

var reportTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "Attraction type coverage and the types still missing an Arabic label",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		var cov report.TypeCoverage
		if groupQuery {
			cov, err = report.TypesByGroup(ctx, store, domain.AttractionsCollection, logger)
		} else {
			limit := 0
			if safeCrawl {
				limit = report.SafeLimit
			}
			cov, err = report.TypesByCrawl(ctx, newCrawler(store, limit), logger)
		}
		if err != nil {
			return err
		}
		report.PrintTypes(cmd.OutOrStdout(), cov)
		return nil
	},
}

func init() {
	reportTypesCmd.Flags().BoolVar(&groupQuery, "group", false, "read all attractions with one cross-city query")
	reportTypesCmd.Flags().BoolVar(&safeCrawl, "safe", false, "cap the attractions read per city")
	reportCmd.AddCommand(reportTypesCmd)
	rootCmd.AddCommand(reportCmd)
}
