package cmd

import (
	"github.com/gitglance/gitglance/core"
	"github.com/gitglance/gitglance/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd prints cached statistics without any network calls.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print cached statistics without touching the network.",
	Long: `Reduce the persisted snapshot to its aggregate metrics and print them.

This reads only the local cache file, so it works offline and never
spends API quota. Run 'gitglance update' first to populate the cache.

Examples:
  # Show cached totals
  gitglance stats --username octocat`,
	PreRunE: cacheSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(cfg); err != nil {
			contract.LogFatal("Cannot read cached statistics", err)
		}
	},
}
