package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "fr", cfg.Lang)
	assert.Equal(t, "https://%s-wiki.metin2.gameforge.com/api.php", cfg.Endpoint)
	assert.Equal(t, 5, cfg.API.EditBackoffSeconds)
	assert.Equal(t, 10.0, cfg.API.RequestsPerSecond)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	tomlContent := `
lang = "en"
endpoint = "https://%s.wiki.example/api.php"
data_dir = "/srv/game-data"

[api]
edit_backoff_seconds = 2
requests_per_second = 3.5

[log]
level = "debug"
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, "https://%s.wiki.example/api.php", cfg.Endpoint)
	assert.Equal(t, "/srv/game-data", cfg.DataDir)
	assert.Equal(t, 2, cfg.API.EditBackoffSeconds)
	assert.Equal(t, 3.5, cfg.API.RequestsPerSecond)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Lang)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`lang = "pl"`), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "pl", cfg.Lang)
	assert.Equal(t, 5, cfg.API.EditBackoffSeconds)
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[invalid toml..."), 0644))

	_, err := Load(tmpFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}
