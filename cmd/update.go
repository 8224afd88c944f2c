package cmd

import (
	"github.com/gitglance/gitglance/core"
	"github.com/gitglance/gitglance/internal/contract"
	"github.com/spf13/cobra"
)

// updateCmd refreshes the cache and rewrites the SVG cards.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh statistics and rewrite the SVG profile cards.",
	Long: `Fetch account statistics, reconcile the commit cache, and substitute
the new values into the configured SVG cards.

Commit counting is incremental: each branch records the head commit and
the newest commit timestamp seen, so unchanged branches cost one API
call and changed branches are walked only back to the previous head.

Examples:
  # Refresh everything with config from .gitglance.yaml
  gitglance update

  # One-off run with explicit identity
  GITGLANCE_TOKEN=... gitglance update --username octocat --birthday 1990-04-01`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteUpdate(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run update", err)
		}
	},
}
