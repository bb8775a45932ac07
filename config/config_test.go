package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "room.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestOverride(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 800
height = 600

[orbit]
radius = 7.5

[light]
shadow_size = 2048

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "Desk Room", cfg.Window.Title)
	assert.Equal(t, float32(7.5), cfg.Orbit.Radius)
	assert.Equal(t, float32(0.05), cfg.Orbit.Step)
	assert.Equal(t, 2048, cfg.Light.ShadowSize)

	level, err := cfg.Logging.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "[window\nwidth = "))
	assert.Error(t, err)
}

func TestInvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, `
[camera]
fov = 0.0
[logging]
level = "loud"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fov")
	assert.Contains(t, err.Error(), "loud")
}

func TestRepositoryConfigLoads(t *testing.T) {
	cfg, err := Load("room.toml")
	require.NoError(t, err)
	assert.Equal(t, "assets", cfg.Assets.Dir)
}
