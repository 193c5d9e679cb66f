package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	require := require.New(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(err)
	require.Equal(Default(), cfg)
	require.Equal("psql", cfg.Client)
	require.Equal("jq", cfg.FilterTool)
	require.Equal(Staging, cfg.DefaultEnvironment)
}

func TestLoadConfigOverridesPreset(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
client: /usr/local/bin/psql
environments:
  s:
    host: staging.internal
    user_env: STAGING_USER
    database: acme-staging
`
	require.NoError(os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(err)
	require.Equal("/usr/local/bin/psql", cfg.Client)
	require.Equal("jq", cfg.FilterTool)

	s := cfg.Preset(Staging)
	require.Equal("staging.internal", s.Host)
	require.Empty(s.HostEnv)
	require.Equal("STAGING_USER", s.UserEnv)
	require.Equal("acme-staging", s.Database)

	// untouched presets keep their defaults
	require.Equal("exm-production", cfg.Preset(Production).Database)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "empty client",
			data: "client: \"\"\n",
		},
		{
			name: "preset without database",
			data: "environments:\n  d:\n    host: localhost\n    user: me\n",
		},
		{
			name: "preset without user",
			data: "environments:\n  d:\n    host: localhost\n    database: dev\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))

			_, err := LoadConfig(path)
			require.Error(t, err)
			require.True(t, ErrInvalidConfig.Is(err), "unexpected error: %v", err)
		})
	}
}

func TestPresetFallsBackToProduction(t *testing.T) {
	cfg := Default()
	require.Equal(t, cfg.Preset(Production), cfg.Preset("x"))
}

func TestSaveRoundTrip(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.FilterTool = "gojq"
	require.NoError(cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(err)
	require.Equal(cfg, loaded)
}
