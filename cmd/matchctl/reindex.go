// cmd/matchctl/reindex.go
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex <user-id>",
	Short: "Push every match of a user to the search index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context(), newLogger())
		if err != nil {
			return err
		}
		defer b.Close()

		if !b.searchEnabled {
			return errors.New("search is not enabled in the configuration")
		}

		n, err := b.engine.Reindex(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d matches\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
