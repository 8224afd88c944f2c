// Package cmd defines the command-line interface for gitglance.
package cmd

import (
	"github.com/gitglance/gitglance/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("token", "", "API access token (or set GITGLANCE_TOKEN / GITHUB_TOKEN)")
	rootCmd.PersistentFlags().StringP("username", "u", "", "GitHub login of the tracked account")
	rootCmd.PersistentFlags().String("birthday", "", "Account owner's birthday in YYYY-MM-DD (enables the age metric)")
	rootCmd.PersistentFlags().String("cache-dir", contract.DefaultCacheDir, "Directory holding the statistics snapshot")
	rootCmd.PersistentFlags().String("asset-dir", contract.DefaultAssetDir, "Directory holding the SVG profile cards")
	rootCmd.PersistentFlags().StringSlice("cards", contract.DefaultCards, "Card file names within the asset directory")
	rootCmd.PersistentFlags().String("salt", "", "Secret salt for cache key derivation")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL override (for GitHub Enterprise)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
