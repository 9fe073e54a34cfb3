package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func stateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "state",
		Short:   "Show aggregate appraisal and valuation counts",
		Example: `  lvc state`,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := newClient().SystemState(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(s)
			}
			fmt.Printf("Appraisals:   %d (%d stale, %d need review)\n",
				s.AppraisalsTotal, s.AppraisalsStale, s.AppraisalsReview)
			fmt.Printf("Comparables:  %d (%d unscored)\n", s.ComparablesTotal, s.ComparablesUnscored)
			fmt.Printf("Valuations:   %d\n", s.ValuationsTotal)
			fmt.Printf("Cache:        %d entries, %.0f%% hit ratio\n", s.CacheEntries, s.CacheHitRatio*100)
			return nil
		},
	}
}
