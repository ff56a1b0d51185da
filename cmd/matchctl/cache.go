// cmd/matchctl/cache.go
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the profile cache",
}

var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate <user-id>...",
	Short: "Drop cached user and profile entries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context(), newLogger())
		if err != nil {
			return err
		}
		defer b.Close()

		if b.cache == nil {
			return errors.New("no profile cache when running on fixtures")
		}

		for _, userID := range args {
			if err := b.cache.Invalidate(cmd.Context(), userID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "invalidated %s\n", userID)
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheInvalidateCmd)
	rootCmd.AddCommand(cacheCmd)
}
