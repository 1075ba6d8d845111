package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 3, config.Mirror.ConcurrentLimit)
	assert.Equal(t, 4096, config.Mirror.ChunkSize)
	assert.Equal(t, "master", config.Mirror.Branch)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
mirror:
  repo_url: https://example.com/repo.git
  base_url: https://cdn.example.com
  concurrent_limit: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "https://example.com/repo.git", config.Mirror.RepoURL)
	assert.Equal(t, "https://cdn.example.com", config.Mirror.BaseURL)
	assert.Equal(t, 5, config.Mirror.ConcurrentLimit)
	// Unset values keep their defaults.
	assert.Equal(t, 4096, config.Mirror.ChunkSize)
}

func TestLoadConfig_LegacyEnv(t *testing.T) {
	t.Setenv("REPO_URL", "https://example.com/env.git")
	t.Setenv("BASE_URL", "https://cdn.example.com/env")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/env.git", config.Mirror.RepoURL)
	assert.Equal(t, "https://cdn.example.com/env", config.Mirror.BaseURL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
mirror:
  concurrent_limit: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrent limit")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data"), expandPath("~/data"))
	assert.Equal(t, filepath.Join(home, "data"), filepath.Clean(expandPath("$HOME/data")))
	assert.Equal(t, "/var/data", expandPath("/var/data"))
}
