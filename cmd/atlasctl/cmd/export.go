package cmd

import (
	"github.com/spf13/cobra"

	"travel_atlas/internal/export"
)

var exportPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every attraction with its Arabic fields to a JSON dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		snap, res, err := export.New(newCrawler(store, 0), logger).Build(ctx)
		if err != nil {
			return err
		}
		if res.FailedCities > 0 || res.SkippedRecord > 0 {
			logger.Warn().
				Int("failed_cities", res.FailedCities).
				Int("skipped_attractions", res.SkippedRecord).
				Msg("export is partial")
		}

		path := cfg.ExportPath
		if exportPath != "" {
			path = exportPath
		}
		size, err := export.WriteFile(path, snap)
		if err != nil {
			return err
		}
		export.PrintReport(cmd.OutOrStdout(), snap, path, size)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportPath, "out", "o", "", "output file, overrides EXPORT_PATH")
	rootCmd.AddCommand(exportCmd)
}
