package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loki3/loki3.github.io/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 0, cfg.Search.MaxStates)
	assert.Equal(t, 1000, cfg.Search.CycleCap)
	assert.True(t, cfg.Search.Flip)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Flexes.Definitions)
}

func TestLoadBytes_FileOverridesDefaults(t *testing.T) {
	cfg, err := config.LoadBytes([]byte(`
search:
  max_states: 5000
  flip: false
log:
  level: debug
flexes:
  definitions: flexes.yaml
`))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Search.MaxStates)
	assert.Equal(t, 1000, cfg.Search.CycleCap, "unset keys keep their default")
	assert.False(t, cfg.Search.Flip)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "flexes.yaml", cfg.Flexes.Definitions)
}

func TestLoadBytes_EnvOverridesFile(t *testing.T) {
	t.Setenv("FLEXAGON_SEARCH_CYCLE_CAP", "42")
	t.Setenv("FLEXAGON_LOG_FORMAT", "json")

	cfg, err := config.LoadBytes([]byte("search:\n  cycle_cap: 7\n"))
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Search.CycleCap)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadBytes_Invalid(t *testing.T) {
	tests := map[string]string{
		"zero cycle cap":     "search:\n  cycle_cap: 0\n",
		"negative max":       "search:\n  max_states: -1\n",
		"unknown level":      "log:\n  level: verbose\n",
		"unknown format":     "log:\n  format: xml\n",
		"malformed document": "search: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadBytes([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flexagon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  max_states: 12\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Search.MaxStates)

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Search.MaxStates)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
