package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/loss-valuation/internal/report"
)

func jobsCmd() *cobra.Command {
	jobsRoot := &cobra.Command{
		Use:   "jobs",
		Short: "View scheduler job history",
		Long: "View the execution history of scheduled jobs (revalue_stale,\n" +
			"cache_sweep). Each run records status, rows affected and any error.",
	}

	jobsRoot.AddCommand(
		jobsListCmd(),
		jobsHistoryCmd(),
	)

	return jobsRoot
}

func jobsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List latest run per job",
		Example: `  lvc jobs list
  lvc jobs list --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			runs, err := newClient().ListJobs(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(runs)
			}
			if len(runs) == 0 {
				fmt.Println("No job runs found.")
				return nil
			}
			return report.JobRuns(os.Stdout, runs)
		},
	}
}

func jobsHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:       "history <job_name>",
		Short:     "Show run history for a job",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"revalue_stale", "cache_sweep"},
		Example: `  lvc jobs history revalue_stale
  lvc jobs history cache_sweep --limit 5 --output json`,
		RunE: func(_ *cobra.Command, args []string) error {
			runs, err := newClient().GetJobHistory(context.Background(), args[0], limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(runs)
			}
			if len(runs) == 0 {
				fmt.Printf("No runs found for job %q.\n", args[0])
				return nil
			}
			return report.JobRuns(os.Stdout, runs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum runs to show (server default 20)")
	return cmd
}
