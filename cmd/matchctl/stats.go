// cmd/matchctl/stats.go
package main

import (
	"matching-workers/internal/matching"

	"github.com/spf13/cobra"
)

type statsReport struct {
	Analytics       *matching.Analytics       `json:"analytics"`
	Stats           *matching.Stats           `json:"stats"`
	Recommendations []matching.Recommendation `json:"recommendations"`
}

var statsCmd = &cobra.Command{
	Use:   "stats <user-id>",
	Short: "Print match analytics, stats and recommendations for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context(), newLogger())
		if err != nil {
			return err
		}
		defer b.Close()

		ctx, userID := cmd.Context(), args[0]
		var report statsReport
		if report.Analytics, err = b.engine.Analytics(ctx, userID); err != nil {
			return err
		}
		if report.Stats, err = b.engine.Stats(ctx, userID); err != nil {
			return err
		}
		if report.Recommendations, err = b.engine.Recommendations(ctx, userID); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
