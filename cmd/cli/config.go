package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// cliConfig is persisted as TOML under the user's config directory.
type cliConfig struct {
	Server serverConfig `toml:"server" json:"server"`
	Output outputConfig `toml:"output" json:"output"`
}

type serverConfig struct {
	URL    string `toml:"url" json:"url"`
	Token  string `toml:"token,omitempty" json:"token,omitempty"`
	UserID string `toml:"user_id,omitempty" json:"user_id,omitempty"`
}

type outputConfig struct {
	// Format is table or json.
	Format string `toml:"format" json:"format"`
}

func defaultConfig() cliConfig {
	return cliConfig{
		Server: serverConfig{URL: "http://localhost:8080"},
		Output: outputConfig{Format: "table"},
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "exemptledger")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "exemptledger")
}

func defaultConfigPath() string {
	return filepath.Join(configDir(), "cli.toml")
}

// loadConfig reads path, returning defaults if it doesn't exist.
func loadConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes cfg to path, creating the directory.
func saveConfig(path string, cfg cliConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
