// cmd/matchctl/root.go
package main

import (
	"encoding/json"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "matchctl"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "matchctl scores, generates and inspects investor/startup matches",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("fixtures", "MATCHCTL_FIXTURES"); err != nil {
		log.Fatalf("binding MATCHCTL_FIXTURES environment variable: %v", err)
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is configs/config.yaml)")
	rootCmd.PersistentFlags().String("fixtures", "", "JSON fixtures to run against an in-memory store instead of PostgreSQL")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("fixtures", rootCmd.PersistentFlags().Lookup("fixtures"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
