package contract

import (
	"fmt"
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultCacheDir    = "cache"
	DefaultAssetDir    = "assets"
	DefaultAffiliation = "owner,collaborator,organization_member"
)

// DefaultCards are the SVG profile cards updated when none are
// configured explicitly.
var DefaultCards = []string{"dark_mode.svg", "light_mode.svg"}

// BirthdayFormat is the accepted layout for the birthday setting.
const BirthdayFormat = "2006-01-02"

// ConfigRawInput holds the raw, unvalidated configuration from all
// sources (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Token       string   `mapstructure:"token"`
	Username    string   `mapstructure:"username"`
	BirthdayStr string   `mapstructure:"birthday"`
	CacheDir    string   `mapstructure:"cache-dir"`
	AssetDir    string   `mapstructure:"asset-dir"`
	Cards       []string `mapstructure:"cards"`
	Salt        string   `mapstructure:"salt"`
	APIURL      string   `mapstructure:"api-url"`
	Color       string   `mapstructure:"color"`
	Width       int      `mapstructure:"width"`
}

// Config is the final, validated runtime configuration. It is built
// once at process entry and passed by parameter; nothing in the core
// reads ambient state.
type Config struct {
	Token       string    // API access token
	Username    string    // Tracked account login
	Birthday    time.Time // Account owner's birthday, zero when unset
	CacheDir    string    // Directory holding the snapshot file
	AssetDir    string    // Directory holding the SVG cards
	Cards       []string  // Card file names within AssetDir
	Salt        string    // Secret for cache key derivation
	APIURL      string    // API base URL override, empty for the default
	Affiliation string    // Repository affiliation filter
	UseColors   bool      // Colored labels in terminal output
	Width       int       // Terminal width override (0 = auto-detect)
}

// ProcessAndValidate turns raw input into a validated Config. Missing
// credentials or identity fail here, before any network call is made.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.Token == "" {
		return fmt.Errorf("missing access token: set GITGLANCE_TOKEN or GITHUB_TOKEN")
	}
	if input.Username == "" {
		return fmt.Errorf("missing username: set GITGLANCE_USERNAME or the username config key")
	}

	cfg.Token = input.Token
	cfg.Username = input.Username

	if input.BirthdayStr != "" {
		bday, err := time.Parse(BirthdayFormat, input.BirthdayStr)
		if err != nil {
			return fmt.Errorf("invalid birthday %q (want YYYY-MM-DD): %w", input.BirthdayStr, err)
		}
		cfg.Birthday = bday.UTC()
	}

	cfg.CacheDir = input.CacheDir
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}
	cfg.AssetDir = input.AssetDir
	if cfg.AssetDir == "" {
		cfg.AssetDir = DefaultAssetDir
	}
	cfg.Cards = input.Cards
	if len(cfg.Cards) == 0 {
		cfg.Cards = DefaultCards
	}

	cfg.Salt = input.Salt
	cfg.APIURL = input.APIURL
	cfg.Affiliation = DefaultAffiliation
	cfg.UseColors = parseBoolish(input.Color, true)
	cfg.Width = input.Width

	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return fmt.Errorf("cannot create cache directory %q: %w", cfg.CacheDir, err)
	}

	return nil
}

// parseBoolish accepts the yes/no/true/false/1/0 spellings used by the
// color flag.
func parseBoolish(s string, fallback bool) bool {
	switch s {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
