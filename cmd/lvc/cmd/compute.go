package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/loss-valuation/internal/casefile"
	"github.com/donaldgifford/loss-valuation/internal/report"
)

func valueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "value <file>",
		Short: "Value a case file without saving it",
		Long: "Send a case file's loss vehicle and comparables to the API and print\n" +
			"the computed market value. Nothing is stored.",
		Example: `  lvc value claim-1234.yaml
  lvc value claim-1234.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := casefile.Load(args[0])
			if err != nil {
				return err
			}
			loss, err := c.RequireLossVehicle()
			if err != nil {
				return err
			}

			v, err := newClient().Value(context.Background(), loss, c.Comparables)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(v)
			}
			return report.Valuation(os.Stdout, v)
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a case file's comparables for data problems",
		Long: "Validate every comparable in a case file. When the file has a\n" +
			"loss_vehicle, comparables are also checked against it.",
		Example: `  lvc validate comps.yaml
  lvc validate claim-1234.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := casefile.Load(args[0])
			if err != nil {
				return err
			}

			resp, err := newClient().Validate(context.Background(), c.LossVehicle, c.Comparables)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			return report.Validation(os.Stdout, resp.Results, resp.Summary)
		},
	}
}
