package testbed

import (
	"fmt"

	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer"
	"github.com/spaghettifunk/anima2d/engine/renderer/device"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
	"github.com/spaghettifunk/anima2d/engine/scene"
)

const (
	sceneName   = "Main"
	spriteAsset = "image.png"
	playerSpeed = 200.0
	gridSize    = 5
	gridSpacing = 48.0
)

// Sandbox is the testbed game: a player sprite moved with the arrow keys and
// a few rings of circles around it.
type Sandbox struct {
	engine    *engine.Engine
	scene     *scene.Scene
	player    scene.Entity
	velocity  math.Vec2
	texture   device.Texture
	maxFrames uint64

	width  uint32
	height uint32
}

// NewSandbox returns the testbed game. A non-zero maxFrames stops the engine
// after that many frames.
func NewSandbox(maxFrames uint64) *Sandbox {
	return &Sandbox{maxFrames: maxFrames}
}

func (g *Sandbox) Initialize(e *engine.Engine) error {
	core.LogDebug("Sandbox Initialize fn....")
	g.engine = e

	tex, err := g.loadSprite()
	if err != nil {
		return err
	}
	g.texture = tex

	if err := e.Scenes().Add(scene.New(sceneName)); err != nil {
		return err
	}
	if err := e.Scenes().Switch(sceneName); err != nil {
		return err
	}
	g.scene = e.Scenes().Current()

	if err := g.populate(); err != nil {
		return err
	}

	events := e.Window().Events()
	events.Key.Connect(g.onKey)
	events.MouseButton.Connect(g.onMouseButton)
	events.Scroll.Connect(g.onScroll)

	if am := e.Assets(); am != nil {
		am.Changed.Connect(g.onAssetChanged)
	}
	return nil
}

func (g *Sandbox) populate() error {
	g.player = g.scene.CreateEntity("player")
	if err := g.scene.AddSprite(g.player, scene.NewSpriteRenderer(g.texture)); err != nil {
		return err
	}
	t, err := g.scene.Transform(g.player)
	if err != nil {
		return err
	}
	t.Scale = math.NewVec2Scalar(8)
	if err := g.scene.AddBehaviour(g.player, scene.Behaviour{OnFixedUpdate: g.movePlayer}); err != nil {
		return err
	}

	ring := []struct {
		position math.Vec2
		color    metadata.Color
	}{
		{math.NewVec2(100, 0), metadata.INDIGO},
		{math.NewVec2(-100, 0), metadata.YELLOW_GREEN},
		{math.NewVec2(0, 100), metadata.CHOCOLATE},
		{math.NewVec2(0, -100), metadata.DEEP_PINK},
	}
	for i, c := range ring {
		if err := g.addCircle(fmt.Sprintf("circle%d", i), c.position, 1, c.color, 1); err != nil {
			return err
		}
	}

	// a grid of thin rings further out
	origin := math.NewVec2(-gridSpacing*(gridSize-1)/2, 250)
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			pos := origin.Add(math.NewVec2(float32(x)*gridSpacing, float32(y)*gridSpacing))
			name := fmt.Sprintf("grid_%d_%d", x, y)
			if err := g.addCircle(name, pos, 0.5, metadata.ALICE_BLUE, 0.2); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Sandbox) addCircle(name string, position math.Vec2, scale float32, color metadata.Color, thickness float32) error {
	e := g.scene.CreateEntity(name)
	c := scene.NewCircleRenderer()
	c.Color = color
	c.Thickness = thickness
	c.Smoothness = 0.1
	if err := g.scene.AddCircle(e, c); err != nil {
		return err
	}
	t, err := g.scene.Transform(e)
	if err != nil {
		return err
	}
	t.Teleport(position)
	t.Scale = math.NewVec2Scalar(scale)
	return nil
}

// loadSprite decodes the sprite from the assets directory or falls back to
// a generated checkerboard.
func (g *Sandbox) loadSprite() (device.Texture, error) {
	dev := g.engine.Device()
	if am := g.engine.Assets(); am != nil {
		res, err := am.LoadAsset(spriteAsset, &metadata.ImageResourceParams{})
		if err == nil {
			img := res.Data.(*metadata.ImageResourceData)
			return dev.CreateTexture(metadata.TextureSpec{
				Name:   spriteAsset,
				Width:  img.Width,
				Height: img.Height,
				Format: metadata.TextureFormatRGBA8,
			}, img.Pixels)
		}
		core.LogWarn("sprite not loaded, using a checkerboard: %s", err.Error())
	}

	const size = 8
	pixels := make([]byte, 0, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := metadata.WHITE
			if (x+y)%2 == 1 {
				c = metadata.PURPLE
			}
			pixels = append(pixels, c.Red(), c.Green(), c.Blue(), c.Alpha())
		}
	}
	return dev.CreateTexture(metadata.TextureSpec{
		Name:   "checkerboard",
		Width:  size,
		Height: size,
		Format: metadata.TextureFormatRGBA8,
	}, pixels)
}

func (g *Sandbox) movePlayer(s *scene.Scene, e scene.Entity, fixedDelta float64) {
	t, err := s.Transform(e)
	if err != nil {
		return
	}
	t.Position = t.Position.Add(g.velocity.MulScalar(float32(fixedDelta)))
}

func (g *Sandbox) Update(delta float64) error {
	if g.maxFrames > 0 && g.engine.Frames()+1 >= g.maxFrames {
		g.engine.Terminate()
	}
	return nil
}

// Render draws nothing on its own; the current scene is rendered by the
// engine before this runs.
func (g *Sandbox) Render(r *renderer.Renderer, alpha float64) error {
	return nil
}

func (g *Sandbox) OnResize(width, height uint32) {
	g.width = width
	g.height = height
}

func (g *Sandbox) OnFocus(focused bool) {
	if !focused {
		// keys released while unfocused never arrive
		g.velocity = math.Vec2{}
	}
}

func (g *Sandbox) OnExit() error {
	if g.texture != nil {
		g.texture.Release()
	}
	return nil
}

func (g *Sandbox) onKey(k core.KeyEvent) bool {
	if k.Repeat {
		return false
	}
	speed := float32(0)
	if k.Pressed {
		speed = playerSpeed
	}
	switch k.Key {
	case core.KEY_RIGHT:
		g.velocity.X = speed
	case core.KEY_LEFT:
		g.velocity.X = -speed
	case core.KEY_UP:
		g.velocity.Y = -speed
	case core.KEY_DOWN:
		g.velocity.Y = speed
	case core.KEY_ESCAPE:
		if k.Pressed {
			g.engine.Terminate()
		}
	default:
		return false
	}
	return true
}

func (g *Sandbox) onMouseButton(m core.MouseEvent) bool {
	if !m.Pressed {
		return false
	}
	x, y := g.engine.Input().MousePosition()
	_, cam, ok := g.scene.PrimaryCamera()
	if !ok {
		return false
	}
	world := cam.Camera.ScreenToWorld(math.NewVec2(float32(x), float32(y)))
	core.LogInfo("mouse button %d at (%.2f, %.2f), world (%.2f, %.2f)", m.Button, x, y, world.X, world.Y)
	return true
}

func (g *Sandbox) onScroll(m core.MouseEvent) bool {
	_, cam, ok := g.scene.PrimaryCamera()
	if !ok {
		return false
	}
	zoom := math.Clamp(cam.Camera.Zoom()*(1+float32(m.ScrollY)*0.1), 0.1, 10)
	cam.Camera.SetZoom(zoom)
	return true
}

func (g *Sandbox) onAssetChanged(ev assets.AssetEvent) bool {
	if ev.Path != spriteAsset || ev.Kind == assets.AssetRemoved {
		return false
	}
	err := g.engine.Assets().LoadAssetAsync(spriteAsset, &metadata.ImageResourceParams{}, g.reloadSprite)
	if err != nil {
		core.LogWarn("reloading %s: %s", spriteAsset, err.Error())
		return false
	}
	return true
}

func (g *Sandbox) reloadSprite(res *metadata.Resource, err error) {
	if err != nil {
		core.LogWarn("reloading %s: %s", spriteAsset, err.Error())
		return
	}
	img := res.Data.(*metadata.ImageResourceData)
	if img.Width != g.texture.Width() || img.Height != g.texture.Height() {
		core.LogWarn("%s changed size, restart to pick it up", spriteAsset)
		return
	}
	g.texture.SetData(img.Pixels)
	core.LogInfo("%s reloaded", spriteAsset)
}
