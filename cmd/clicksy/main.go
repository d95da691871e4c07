// Package main provides the entry point for the CLICKSY API server and its offline tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/clicksy/clicksy-api/internal/config"
	"github.com/clicksy/clicksy-api/internal/logging"
)

var (
	configPath string
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "clicksy",
	Short:         "CLICKSY API server",
	Long:          "CLICKSY connects photographers and clients: peer recommendations, marketplace listings and suggested resale prices.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable summaries to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
