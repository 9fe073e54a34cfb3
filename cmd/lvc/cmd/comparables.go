package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/loss-valuation/internal/casefile"
	"github.com/donaldgifford/loss-valuation/internal/report"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

func comparablesCmd() *cobra.Command {
	comparablesRoot := &cobra.Command{
		Use:   "comparables",
		Short: "Manage an appraisal's comparables",
		Long: "List, add and remove the comparable listings an appraisal is valued\n" +
			"against. Changing comparables marks the appraisal stale.",
	}

	comparablesRoot.AddCommand(
		comparablesListCmd(),
		comparablesAddCmd(),
		comparablesDeleteCmd(),
	)

	return comparablesRoot
}

func comparablesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <appraisal-id>",
		Short: "List comparables with scores and adjusted prices",
		Example: `  lvc comparables list 6f1c...
  lvc comparables list 6f1c... --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			comps, err := newClient().ListComparables(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(comps)
			}
			if len(comps) == 0 {
				fmt.Println("No comparables found.")
				return nil
			}
			return report.Comparables(os.Stdout, comps)
		},
	}
}

func comparablesAddCmd() *cobra.Command {
	var (
		file string
		comp domain.Comparable
		mi   int
		cond string
	)

	cmd := &cobra.Command{
		Use:   "add <appraisal-id>",
		Short: "Add comparables from a case file or flags",
		Long: "Add comparables to an appraisal. With --file every comparable in the\n" +
			"case file is added; otherwise one comparable is built from flags.\n" +
			"A comparable with an existing ID replaces it.",
		Example: `  # Add every comparable from a file
  lvc comparables add 6f1c... --file comps.yaml

  # Add one comparable by hand
  lvc comparables add 6f1c... --source dealer --year 2021 --make Honda \
    --model Accord --mileage 28000 --price 21000 --distance 12 \
    --location "Austin, TX" --equipment Sunroof --equipment Navigation`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var comps []domain.Comparable
			if file != "" {
				c, err := casefile.Load(file)
				if err != nil {
					return err
				}
				comps = c.Comparables
			} else {
				if comp.Make == "" || comp.Model == "" || comp.ListPrice == 0 {
					return fmt.Errorf("--make, --model and --price are required without --file")
				}
				if cmd.Flags().Changed("mileage") {
					comp.Mileage = &mi
				}
				comp.Condition = domain.ParseCondition(cond)
				comps = []domain.Comparable{comp}
			}

			ctx := context.Background()
			client := newClient()
			saved := make([]domain.Comparable, 0, len(comps))
			for i := range comps {
				s, err := client.AddComparable(ctx, args[0], &comps[i])
				if err != nil {
					return fmt.Errorf("adding comparable %d: %w", i, err)
				}
				saved = append(saved, *s)
			}

			if jsonOutput() {
				return outputJSON(saved)
			}
			fmt.Printf("Added %d comparables to appraisal %s.\n", len(saved), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "case file (JSON or YAML)")
	cmd.Flags().StringVar(&comp.ID, "id", "", "comparable ID (generated when empty)")
	cmd.Flags().StringVar(&comp.Source, "source", "", "listing source")
	cmd.Flags().StringVar(&comp.ListingURL, "url", "", "listing URL")
	cmd.Flags().StringVar(&comp.VIN, "vin", "", "VIN")
	cmd.Flags().IntVar(&comp.Year, "year", 0, "model year")
	cmd.Flags().StringVar(&comp.Make, "make", "", "make")
	cmd.Flags().StringVar(&comp.Model, "model", "", "model")
	cmd.Flags().StringVar(&comp.Trim, "trim", "", "trim")
	cmd.Flags().IntVar(&mi, "mileage", 0, "odometer reading")
	cmd.Flags().StringVar(&cond, "condition", "", "condition (excellent, good, fair, poor)")
	cmd.Flags().StringArrayVar(&comp.Equipment, "equipment", nil, "equipment feature (repeatable)")
	cmd.Flags().StringVar(&comp.Location, "location", "", "listing location")
	cmd.Flags().Float64Var(&comp.DistanceFromLoss, "distance", 0, "miles from the loss location")
	cmd.Flags().Float64Var(&comp.ListPrice, "price", 0, "list price in dollars")

	return cmd
}

func comparablesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <appraisal-id> <comparable-id>",
		Short:   "Remove a comparable",
		Example: `  lvc comparables delete 6f1c... c1`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := newClient().DeleteComparable(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Comparable %s deleted.\n", args[1])
			return nil
		},
	}
}
