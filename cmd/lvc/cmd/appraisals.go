package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/loss-valuation/internal/api/client"
	"github.com/donaldgifford/loss-valuation/internal/casefile"
	"github.com/donaldgifford/loss-valuation/internal/report"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

func appraisalsCmd() *cobra.Command {
	appraisalsRoot := &cobra.Command{
		Use:   "appraisals",
		Short: "Manage appraisals",
		Long: "Manage appraisals: a claim's loss vehicle, the comparables gathered\n" +
			"for it, and the latest saved valuation.",
	}

	appraisalsRoot.AddCommand(
		appraisalsListCmd(),
		appraisalsGetCmd(),
		appraisalsCreateCmd(),
		appraisalsDeleteCmd(),
		appraisalsValuateCmd(),
		appraisalsValuationCmd(),
		appraisalsStatusCmd(),
	)

	return appraisalsRoot
}

func appraisalsListCmd() *cobra.Command {
	var (
		params apiclient.ListAppraisalsParams
		stale  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appraisals with optional filters",
		Example: `  # List all appraisals
  lvc appraisals list

  # Appraisals waiting for an adjuster
  lvc appraisals list --status needs_review

  # Appraisals whose inputs changed since the last valuation
  lvc appraisals list --stale --order-by updated_at`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("stale") {
				params.Stale = &stale
			}

			resp, err := newClient().ListAppraisals(context.Background(), &params)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Appraisals) == 0 {
				fmt.Println("No appraisals found.")
				return nil
			}

			fmt.Printf("Showing %d of %d appraisals\n\n", len(resp.Appraisals), resp.Total)
			return report.Appraisals(os.Stdout, resp.Appraisals)
		},
	}

	cmd.Flags().StringVar(&params.Status, "status", "", "filter by status (draft, valued, needs_review, approved)")
	cmd.Flags().BoolVar(&stale, "stale", false, "filter by stale flag")
	cmd.Flags().StringVar(&params.ClaimNumber, "claim", "", "filter by claim number")
	cmd.Flags().StringVar(&params.Make, "make", "", "filter by loss vehicle make")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "max results (server default 50)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "results to skip")
	cmd.Flags().StringVar(&params.OrderBy, "order-by", "", "sort order (created_at, updated_at, valued_at)")

	return cmd
}

func appraisalsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show appraisal details and comparables",
		Example: `  lvc appraisals get 6f1c...
  lvc appraisals get 6f1c... --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := newClient().GetAppraisal(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(a)
			}
			return report.Appraisal(os.Stdout, a)
		},
	}
}

func appraisalsCreateCmd() *cobra.Command {
	var (
		file  string
		claim string
		notes string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an appraisal from a case file",
		Long: "Create a draft appraisal from a JSON or YAML case file. The file's\n" +
			"loss_vehicle becomes the appraisal's loss vehicle and any comparables\n" +
			"in the file are added to it. --claim overrides the file's claim_number.",
		Example: `  lvc appraisals create --file claim-1234.yaml
  lvc appraisals create --file vehicle.json --claim CLM-1234 --notes "tow yard photos pending"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			c, err := casefile.Load(file)
			if err != nil {
				return err
			}
			loss, err := c.RequireLossVehicle()
			if err != nil {
				return err
			}
			if claim == "" {
				claim = c.ClaimNumber
			}
			if claim == "" {
				return fmt.Errorf("--claim is required when the file has no claim_number")
			}

			ctx := context.Background()
			client := newClient()
			created, err := client.CreateAppraisal(ctx, claim, loss, notes)
			if err != nil {
				return err
			}
			for i := range c.Comparables {
				if _, err := client.AddComparable(ctx, created.ID, &c.Comparables[i]); err != nil {
					return fmt.Errorf("adding comparable %d: %w", i, err)
				}
			}

			if jsonOutput() {
				return outputJSON(created)
			}
			fmt.Printf("Appraisal created: %s (%s) with %d comparables\n",
				created.ClaimNumber, created.ID, len(c.Comparables))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "case file (JSON or YAML)")
	cmd.Flags().StringVar(&claim, "claim", "", "claim number")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}

func appraisalsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete an appraisal",
		Example: `  lvc appraisals delete 6f1c...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := newClient().DeleteAppraisal(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Appraisal %s deleted.\n", args[0])
			return nil
		},
	}
}

func appraisalsValuateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "valuate <id>",
		Short: "Value an appraisal and save the result",
		Long: "Validate, score and adjust the appraisal's comparables and save the\n" +
			"resulting market value. The appraisal moves to valued or needs_review.",
		Example: `  lvc appraisals valuate 6f1c...
  lvc appraisals valuate 6f1c... --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := newClient().Valuate(context.Background(), args[0])
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

func appraisalsValuationCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "valuation <id>",
		Short:   "Show the latest saved valuation",
		Example: `  lvc appraisals valuation 6f1c...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := newClient().GetValuation(context.Background(), args[0])
			if apiclient.IsNotFound(err) {
				fmt.Println("No valuation yet. Run `lvc appraisals valuate` first.")
				return nil
			}
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

func appraisalsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an appraisal to a new status",
		Long: "Set an appraisal's status (draft, valued, needs_review, approved).\n" +
			"Only valued appraisals can be approved; approved ones are locked.",
		Example: `  lvc appraisals status 6f1c... approved`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := newClient().SetAppraisalStatus(context.Background(), args[0], domain.AppraisalStatus(args[1]))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(a)
			}
			fmt.Printf("Appraisal %s is now %s.\n", a.ID, a.Status)
			return nil
		},
	}
}
