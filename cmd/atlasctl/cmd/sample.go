package cmd

import (
	"github.com/spf13/cobra"

	"travel_atlas/internal/adapters/atlasapi"
	"travel_atlas/internal/report"
)

var viaAPI bool

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Show the first attractions of the first cities with their EN/AR fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var s report.Sampler
		if viaAPI {
			cl, err := atlasapi.New(cfg.AtlasAPIURL, cfg.AtlasAPIRPS)
			if err != nil {
				return err
			}
			s = report.APISampler{Client: cl}
		} else {
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			s = report.StoreSampler{Store: store}
		}

		samples, err := s.Sample(ctx, report.SampleCities, report.SamplePerCity)
		if err != nil {
			return err
		}
		report.PrintSample(cmd.OutOrStdout(), samples)
		return nil
	},
}

func init() {
	sampleCmd.Flags().BoolVar(&viaAPI, "api", false, "sample through the catalog API at ATLAS_API_URL")
	rootCmd.AddCommand(sampleCmd)
}
