package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/loss-valuation/internal/casefile"
	"github.com/donaldgifford/loss-valuation/internal/config"
	"github.com/donaldgifford/loss-valuation/internal/notify"
	"github.com/donaldgifford/loss-valuation/internal/report"
)

func init() {
	rootCmd.AddCommand(valueCommand())
}

func valueCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "value <file>",
		Short: "Value a case file without a database",
		Long: "Reads a loss vehicle and its comparables from a JSON or YAML file,\n" +
			"runs the full valuation locally and prints the result. Valuation\n" +
			"settings come from the config file when it exists.",
		Example: `  loss-valuation value claim-1234.json
  loss-valuation value claim-1234.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "table" && output != "json" {
				return fmt.Errorf("unknown output format %q", output)
			}

			c, err := casefile.Load(args[0])
			if err != nil {
				return err
			}
			loss, err := c.RequireLossVehicle()
			if err != nil {
				return err
			}

			cfg, err := offlineConfig()
			if err != nil {
				return err
			}

			log := quietLogger()
			eng := newEngine(cfg, nil, notify.NewNoOpNotifier(log), log)

			v, err := eng.Value(context.Background(), loss, c.Comparables)
			if err != nil {
				return err
			}

			if output == "json" {
				return report.JSON(cmd.OutOrStdout(), v)
			}
			return report.Valuation(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	return cmd
}

// offlineConfig loads the config file if present and falls back to
// defaults otherwise.
func offlineConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
