// ABOUTME: Root command for tally CLI
// ABOUTME: Handles global flags, configuration, and logger setup

package cmd

import (
	"log/slog"
	"os"

	"github.com/markalston/tally/cli/internal/client"
	"github.com/markalston/tally/cli/internal/config"
	"github.com/markalston/tally/cli/internal/logger"
	"github.com/markalston/tally/cli/internal/session"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	apiURL        string
	jsonOutput    bool
	username      string
	passwordStdin bool
	logLevel      string

	cfg *config.Config
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:     "tally",
	Short:   "CLI for the Tally benefits portal",
	Version: version,
	Long: `tally signs in to the benefits portal proxy, shows your next payment,
status and messages, and submits your monthly report.

Your password is never stored. Supply it interactively or pipe it with
--password-stdin.

Environment Variables:
  TALLY_API_URL          Portal proxy URL (default: https://tally.heyitsmejosh.com)
  TALLY_USERNAME         Default username
  TALLY_REQUEST_TIMEOUT  Timeout for ordinary requests (default: 30s)
  TALLY_REFRESH_TIMEOUT  Timeout for a portal re-scrape (default: 2m)
  LOG_LEVEL              debug, info, warn, error (default: info)
  LOG_FORMAT             text, json (default: text)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Portal proxy URL (overrides TALLY_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", "", "Portal username (overrides TALLY_USERNAME)")
	rootCmd.PersistentFlags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from the first line of stdin")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if cfg != nil && cfg.APIURL != "" {
		return cfg.APIURL
	}
	if envURL := os.Getenv("TALLY_API_URL"); envURL != "" {
		return envURL
	}
	return client.DefaultBaseURL
}

// GetUsername returns the username from flag or env
func GetUsername() string {
	if username != "" {
		return username
	}
	if cfg != nil && cfg.Username != "" {
		return cfg.Username
	}
	return os.Getenv("TALLY_USERNAME")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newManager wires a portal client into a fresh logged-out session
func newManager() *session.Manager {
	opts := []client.Option{
		client.WithLogger(slog.Default()),
		client.WithUserAgent("tally-cli/" + version),
	}
	if cfg != nil {
		opts = append(opts,
			client.WithRequestTimeout(cfg.RequestTimeout),
			client.WithRefreshTimeout(cfg.RefreshTimeout),
		)
	}
	return session.New(client.New(GetAPIURL(), opts...), session.WithLogger(slog.Default()))
}
