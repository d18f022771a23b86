// ABOUTME: Configuration loader for the tally CLI
// ABOUTME: Reads TALLY_* environment variables, optionally seeded from a .env file

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds CLI settings. Credentials are deliberately absent: the
// password is always prompted or piped, never configured.
type Config struct {
	APIURL         string        `env:"TALLY_API_URL" envDefault:"https://tally.heyitsmejosh.com"`
	Username       string        `env:"TALLY_USERNAME"`
	RequestTimeout time.Duration `env:"TALLY_REQUEST_TIMEOUT" envDefault:"30s"`
	RefreshTimeout time.Duration `env:"TALLY_REFRESH_TIMEOUT" envDefault:"2m"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"text"`
	ConfigDir      string        `env:"TALLY_CONFIG_DIR"`
}

// Load reads configuration from the environment. Each envFile that exists is
// loaded first without overriding variables already set; missing files are
// skipped. With no envFiles, ./.env is tried.
func Load(envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles); err != nil {
		return nil, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.APIURL = ensureScheme(strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/"))
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("TALLY_API_URL must not be empty")
	}
	if cfg.RequestTimeout < 0 {
		return nil, fmt.Errorf("TALLY_REQUEST_TIMEOUT must not be negative, got %s", cfg.RequestTimeout)
	}
	if cfg.RefreshTimeout < 0 {
		return nil, fmt.Errorf("TALLY_REFRESH_TIMEOUT must not be negative, got %s", cfg.RefreshTimeout)
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = DefaultConfigDir()
	}

	return &cfg, nil
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tally")
}

func loadDotEnv(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
