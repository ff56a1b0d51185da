// cmd/matchctl/score.go
package main

import (
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <investor-id> <startup-id>",
	Short: "Score one investor against one startup without saving a match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context(), newLogger())
		if err != nil {
			return err
		}
		defer b.Close()

		c, err := b.engine.Score(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), c)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
