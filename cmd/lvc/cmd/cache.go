package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func cacheCmd() *cobra.Command {
	cacheRoot := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the valuation cache",
	}

	cacheRoot.AddCommand(
		&cobra.Command{
			Use:     "stats",
			Short:   "Show cache size, hit rate and TTL",
			Example: `  lvc cache stats`,
			RunE: func(_ *cobra.Command, _ []string) error {
				stats, err := newClient().CacheStats(context.Background())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(stats)
				}
				fmt.Printf("Entries: %d\nHits:    %d\nMisses:  %d\nTTL:     %s\n",
					stats.Entries, stats.Hits, stats.Misses, stats.TTL)
				return nil
			},
		},
		&cobra.Command{
			Use:     "clear",
			Short:   "Drop every cached valuation",
			Example: `  lvc cache clear`,
			RunE: func(_ *cobra.Command, _ []string) error {
				n, err := newClient().ClearCache(context.Background())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(map[string]int{"cleared": n})
				}
				fmt.Printf("Cleared %d cache entries.\n", n)
				return nil
			},
		},
	)

	return cacheRoot
}
