// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration

package cmd

import (
	"testing"

	"github.com/markalston/tally/cli/internal/client"
	"github.com/markalston/tally/cli/internal/config"
)

func TestGetAPIURL_Default(t *testing.T) {
	t.Setenv("TALLY_API_URL", "")
	apiURL = ""
	cfg = nil

	if url := GetAPIURL(); url != client.DefaultBaseURL {
		t.Errorf("expected default URL %s, got %s", client.DefaultBaseURL, url)
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	t.Setenv("TALLY_API_URL", "http://proxy.example.com")
	apiURL = ""
	cfg = nil

	if url := GetAPIURL(); url != "http://proxy.example.com" {
		t.Errorf("expected http://proxy.example.com, got %s", url)
	}
}

func TestGetAPIURL_FromConfig(t *testing.T) {
	apiURL = ""
	cfg = &config.Config{APIURL: "https://configured.example.com"}
	defer func() { cfg = nil }()

	if url := GetAPIURL(); url != "https://configured.example.com" {
		t.Errorf("expected configured URL, got %s", url)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	t.Setenv("TALLY_API_URL", "http://proxy.example.com")
	cfg = &config.Config{APIURL: "https://configured.example.com"}
	apiURL = "http://flag-override.example.com"
	defer func() {
		apiURL = ""
		cfg = nil
	}()

	if url := GetAPIURL(); url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestGetUsername(t *testing.T) {
	defer func() {
		username = ""
		cfg = nil
	}()

	t.Setenv("TALLY_USERNAME", "from-env")
	username = ""
	cfg = nil
	if got := GetUsername(); got != "from-env" {
		t.Errorf("expected env username, got %q", got)
	}

	cfg = &config.Config{Username: "from-config"}
	if got := GetUsername(); got != "from-config" {
		t.Errorf("expected config username, got %q", got)
	}

	username = "from-flag"
	if got := GetUsername(); got != "from-flag" {
		t.Errorf("expected flag username, got %q", got)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"status": false, "refresh": false, "submit": false, "tui": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %q subcommand to be registered", name)
		}
	}
}
