// Package config loads the wikibot configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the top-level application configuration.
type Config struct {
	// Lang is the default wiki language code.
	Lang string `toml:"lang"`
	// Endpoint is the API URL template with one %s for the language.
	Endpoint string `toml:"endpoint"`
	// DataDir holds the game data exports (proto and name tables).
	DataDir string `toml:"data_dir"`
	// ResultDir receives the calculator export files.
	ResultDir string `toml:"result_dir"`
	// BotDB is the path of the credential database.
	BotDB string `toml:"bot_db"`

	API APIConfig `toml:"api"`
	Log LogConfig `toml:"log"`
}

// APIConfig tunes the wiki client.
type APIConfig struct {
	// EditBackoffSeconds is the wait before the single rate-limit retry.
	EditBackoffSeconds int `toml:"edit_backoff_seconds"`
	// RequestsPerSecond caps outgoing API calls.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".config", "wikibot")
	return &Config{
		Lang:      "fr",
		Endpoint:  "https://%s-wiki.metin2.gameforge.com/api.php",
		DataDir:   "data",
		ResultDir: filepath.Join("data", "result"),
		BotDB:     filepath.Join(base, "bots.db"),
		API: APIConfig{
			EditBackoffSeconds: 5,
			RequestsPerSecond:  10,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the configuration at path. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}
