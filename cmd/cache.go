package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gitglance/gitglance/internal/contract"
	"github.com/gitglance/gitglance/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads the minimal configuration needed for cache
// operations. Unlike sharedSetup it does not require an API token, so
// offline commands keep working without credentials.
func cacheSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if input.Username == "" {
		return fmt.Errorf("missing username: set GITGLANCE_USERNAME or the username config key")
	}
	cfg.Username = input.Username
	cfg.CacheDir = input.CacheDir
	if cfg.CacheDir == "" {
		cfg.CacheDir = contract.DefaultCacheDir
	}
	return nil
}

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the statistics snapshot cache",
	Long: `Manage the local snapshot that makes repeated updates cheap.

The snapshot stores cumulative totals plus per-branch checkpoints, so
each update only walks commits that are new since the last run.

Subcommands:
  status - Show snapshot location, size, and repository count
  clear  - Remove the snapshot (the next update recounts from scratch)

Examples:
  # Check snapshot status
  gitglance cache status

  # Force a full recount on the next update
  gitglance cache clear`,
}

// cacheStatusCmd shows snapshot status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot statistics",
	Long: `Show where the snapshot lives, how large it is, and how many
repositories it covers. The file name is a hash of the username, so the
login never appears on disk.

Examples:
  # Check snapshot status
  gitglance cache status`,
	PreRunE: cacheSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.NewSnapshotStore(cfg.CacheDir, cfg.Username)
		st := store.GetStatus()
		fmt.Printf("Snapshot: %s\n", st.Path)
		if !st.Exists {
			fmt.Println("No snapshot found. Run 'gitglance update' to create one.")
			return
		}
		fmt.Printf("  Size:         %s\n", humanize.Bytes(uint64(st.SizeBytes)))
		fmt.Printf("  Repositories: %d\n", st.Repositories)
	},
}

// cacheClearCmd clears the snapshot.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the persisted snapshot",
	Long: `Delete the snapshot file for the configured username.

Use this when history was rewritten heavily or the cache looks wrong.
The next update walks every branch from scratch, which costs more API
calls but produces exact totals again.

Examples:
  # Clear the snapshot
  gitglance cache clear`,
	PreRunE: cacheSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.NewSnapshotStore(cfg.CacheDir, cfg.Username)
		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear snapshot", err)
		}
		fmt.Println(contract.OKColor.Sprint("Snapshot cleared successfully."))
	},
}
