package testbed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/platform"
	"github.com/spaghettifunk/anima2d/engine/renderer/headless"
)

type sandboxHarness struct {
	sandbox *Sandbox
	engine  *engine.Engine
	window  *platform.HeadlessWindow
	device  *headless.Device
	time    *core.ManualTime
}

func newSandboxHarness(t *testing.T, maxFrames uint64) *sandboxHarness {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Headless = true
	cfg.Window.Width, cfg.Window.Height = 640, 480

	h := &sandboxHarness{
		sandbox: NewSandbox(maxFrames),
		window:  platform.NewHeadlessWindow(cfg.Window),
		device:  headless.New(),
		time:    core.NewManualTime(time.Unix(0, 0)),
	}
	e, err := engine.New(cfg, h.sandbox,
		engine.WithWindow(h.window),
		engine.WithRenderDevice(h.device),
		engine.WithClock(core.NewClockWithSource(h.time.Now)),
	)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	h.engine = e
	return h
}

func TestSandboxPopulatesScene(t *testing.T) {
	h := newSandboxHarness(t, 0)
	defer h.engine.Shutdown()

	s := h.engine.Scenes().Current()
	require.NotNil(t, s)
	assert.Equal(t, sceneName, s.Name())

	player, ok := s.Find("player")
	require.True(t, ok)
	sprite, err := s.Sprite(player)
	require.NoError(t, err)
	assert.Equal(t, "checkerboard", sprite.Texture.Name())

	// camera + player + ring + grid
	assert.Equal(t, 1+1+4+gridSize*gridSize, s.Len())
	assert.Equal(t, uint32(640), h.sandbox.width)
}

func TestSandboxMovesPlayerOnFixedSteps(t *testing.T) {
	h := newSandboxHarness(t, 0)
	defer h.engine.Shutdown()

	s := h.engine.Scenes().Current()
	player, _ := s.Find("player")

	h.window.SimulateKey(core.KEY_RIGHT, true)
	require.NoError(t, h.engine.Frame())
	h.time.AdvanceSeconds(0.5)
	require.NoError(t, h.engine.Frame())

	tr, err := s.Transform(player)
	require.NoError(t, err)
	assert.Greater(t, tr.Position.X, float32(0))
	assert.Equal(t, float32(0), tr.Position.Y)

	h.window.SimulateFocus(false)
	require.NoError(t, h.engine.Frame())
	assert.Equal(t, float32(0), h.sandbox.velocity.X)
}

func TestSandboxEscapeTerminates(t *testing.T) {
	h := newSandboxHarness(t, 0)
	h.window.SimulateKey(core.KEY_ESCAPE, true)

	require.NoError(t, h.engine.Run())
	assert.Equal(t, uint64(1), h.engine.Frames())
}

func TestSandboxFrameLimit(t *testing.T) {
	h := newSandboxHarness(t, 3)

	require.NoError(t, h.engine.Run())
	assert.Equal(t, uint64(3), h.engine.Frames())
	assert.Equal(t, engine.EngineStageShutdown, h.engine.Stage())
	assert.NotEmpty(t, h.device.Draws())
}
