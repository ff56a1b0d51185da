// cmd/matchctl/generate.go
package main

import (
	"matching-workers/internal/matching"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <user-id>",
	Short: "Generate and persist matches for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		force, _ := cmd.Flags().GetBool("force")

		b, err := openBackend(cmd.Context(), newLogger())
		if err != nil {
			return err
		}
		defer b.Close()

		res, err := b.engine.GenerateMatches(cmd.Context(), args[0], matching.GenerateOptions{
			Limit:           limit,
			ForceRegenerate: force,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntP("limit", "l", 0, "number of matches to return (default from config)")
	generateCmd.Flags().BoolP("force", "f", false, "generate even if the user received matches recently")
}
