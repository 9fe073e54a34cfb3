// Package cmd implements the CLI commands for loss-valuation.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "loss-valuation",
	Short: "Value total-loss vehicles from market comparables",
	Long: "An API-first service that validates comparable vehicle listings, scores them against a loss vehicle, " +
		"adjusts their prices for mileage, equipment and condition, and computes a quality-weighted market value " +
		"with a confidence level.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}
