package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultRootName, cfg.RootName)
	assert.Equal(t, DefaultPathTag, cfg.PathTag)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, 20, cfg.Search.Limit)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, 80, cfg.Output.Width)
	assert.Empty(t, cfg.Device)
	assert.Equal(t, DefaultDBName, filepath.Base(cfg.DBPath))
	assert.NotContains(t, cfg.DBPath, "~")
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
root_name: Paths
path_tag: fp
device: "  laptop  "
search:
  limit: 5
output:
  color: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Paths", cfg.RootName)
	assert.Equal(t, "fp", cfg.PathTag)
	assert.Equal(t, "laptop", cfg.Device)
	assert.Equal(t, 5, cfg.Search.Limit)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, 80, cfg.Output.Width)
}

func TestLoad_BlankNamesFallBack(t *testing.T) {
	path := writeConfig(t, "root_name: \"  \"\npath_tag: \"\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultRootName, cfg.RootName)
	assert.Equal(t, DefaultPathTag, cfg.PathTag)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PATHNOTES_ROOT_NAME", "FromEnv")
	t.Setenv("PATHNOTES_SEARCH_LIMIT", "7")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "FromEnv", cfg.RootName)
	assert.Equal(t, 7, cfg.Search.Limit)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "root_name: [unterminated\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x", "y"), expandPath("~/x/y"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
	assert.Equal(t, "rel", expandPath("rel"))
}
