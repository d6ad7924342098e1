package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/device"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, core.DefaultSchedulerConfig(), cfg.Scheduler)
	assert.Equal(t, device.APIHeadless, cfg.Renderer.API)
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "game.toml", `
name = "Sandbox"
log_level = "debug"
headless = true

[window]
width = 800
height = 600

[scheduler]
fixed_delta = 0.01
max_fixed_iterations = 4

[renderer]
api = "headless"
max_quads = 512
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Sandbox", cfg.Name)
	assert.Equal(t, "Sandbox", cfg.Window.Title)
	assert.True(t, cfg.Headless)
	assert.Equal(t, uint32(800), cfg.Window.Width)
	assert.Equal(t, 0.01, cfg.Scheduler.FixedDelta)
	assert.Equal(t, 4, cfg.Scheduler.MaxFixedIterations)
	// untouched fields keep their defaults
	assert.Equal(t, 10, cfg.Scheduler.WindowSize)
	assert.Equal(t, uint32(512), cfg.Renderer.MaxQuads)
	assert.Equal(t, uint32(0x1e1e2eff), cfg.Renderer.ClearColor)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "game.yaml", `
name: Sandbox
window:
  width: 1024
  height: 768
renderer:
  api: headless
  max_quads: 64
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(1024), cfg.Window.Width)
	assert.Equal(t, uint32(64), cfg.Renderer.MaxQuads)
	assert.Equal(t, DefaultConfig().Scheduler, cfg.Scheduler)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "game.ini", "name=x"))
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	_, err = LoadConfig(writeFile(t, "game.toml", "[renderer]\nmax_quads = 0\n"))
	assert.ErrorIs(t, err, core.ErrInvalidRendererConfig)

	_, err = LoadConfig(writeFile(t, "game.toml", "[renderer]\napi = \"glide\"\n"))
	assert.ErrorContains(t, err, "glide")

	_, err = LoadConfig(writeFile(t, "game.yaml", "log_level: loud\n"))
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	_, err = LoadConfig(writeFile(t, "game.toml", "job_workers = 0\n"))
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
