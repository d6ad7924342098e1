package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer"
	"github.com/spaghettifunk/anima2d/engine/renderer/headless"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

func newRenderer(t *testing.T) (*renderer.Renderer, *headless.Device) {
	t.Helper()
	dev := headless.New()
	r, err := renderer.New(dev, renderer.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r, dev
}

func TestCreateEntityDefaults(t *testing.T) {
	s := New("main")
	e := s.CreateEntity("")
	require.True(t, s.Valid(e))
	assert.NotEqual(t, NullEntity, e)

	tag, err := s.Tag(e)
	require.NoError(t, err)
	assert.Equal(t, "entity", tag.Name)
	assert.NotEqual(t, [16]byte{}, [16]byte(tag.UUID))

	tr, err := s.Transform(e)
	require.NoError(t, err)
	assert.Equal(t, math.NewVec2One(), tr.Scale)
	assert.Equal(t, math.Vec2{}, tr.Position)

	_, err = s.Sprite(e)
	assert.ErrorIs(t, err, core.ErrComponentMissing)
}

func TestDestroyEntityRecyclesIds(t *testing.T) {
	s := New("main")
	a := s.CreateEntity("a")
	b := s.CreateEntity("b")
	require.NoError(t, s.AddCircle(a, NewCircleRenderer()))

	require.NoError(t, s.DestroyEntity(a))
	assert.False(t, s.Valid(a))
	assert.Equal(t, 1, s.Len())
	_, err := s.Circle(a)
	assert.ErrorIs(t, err, core.ErrComponentMissing)
	assert.ErrorIs(t, s.DestroyEntity(a), core.ErrEntityNotFound)
	assert.ErrorIs(t, s.AddSprite(a, NewSpriteRenderer(nil)), core.ErrEntityNotFound)

	c := s.CreateEntity("c")
	assert.Equal(t, a, c)
	assert.NotEqual(t, b, c)
}

func TestDestroyAll(t *testing.T) {
	s := New("main")
	for i := 0; i < 5; i++ {
		s.CreateEntity("")
	}
	s.DestroyAll()
	assert.Zero(t, s.Len())
	assert.Equal(t, Entity(1), s.CreateEntity("again"))
}

func TestFind(t *testing.T) {
	s := New("main")
	s.CreateEntity("a")
	b := s.CreateEntity("player")
	got, ok := s.Find("player")
	assert.True(t, ok)
	assert.Equal(t, b, got)
	_, ok = s.Find("nobody")
	assert.False(t, ok)
}

func TestFixedUpdateSnapshotsForInterpolation(t *testing.T) {
	s := New("main")
	e := s.CreateEntity("mover")
	steps := 0
	require.NoError(t, s.AddBehaviour(e, Behaviour{
		OnFixedUpdate: func(s *Scene, e Entity, dt float64) {
			steps++
			tr, _ := s.Transform(e)
			tr.Position.X += 10
		},
	}))

	s.FixedUpdate(1.0 / 60.0)
	assert.Equal(t, 1, steps)

	tr, _ := s.Transform(e)
	pos, _, _ := tr.Interpolated(0)
	assert.Equal(t, float32(0), pos.X)
	pos, _, _ = tr.Interpolated(0.5)
	assert.Equal(t, float32(5), pos.X)
	pos, _, _ = tr.Interpolated(1)
	assert.Equal(t, float32(10), pos.X)

	tr.Teleport(math.NewVec2(100, 0))
	pos, _, _ = tr.Interpolated(0)
	assert.Equal(t, float32(100), pos.X)
}

func TestInterpolatedRotationWrapsAround(t *testing.T) {
	tr := NewTransform()
	tr.Rotation = 359
	tr.snapshot()
	tr.Rotation = 1

	_, _, rot := tr.Interpolated(0.5)
	assert.InDelta(t, 360, rot, 1e-3)
	_, _, rot = tr.Interpolated(1)
	assert.InDelta(t, 361, rot, 1e-3)

	tr.Rotation = 10
	tr.snapshot()
	tr.Rotation = 350
	_, _, rot = tr.Interpolated(0.5)
	assert.InDelta(t, 0, rot, 1e-3)
}

func TestUpdateRunsBehaviours(t *testing.T) {
	s := New("main")
	e := s.CreateEntity("")
	var got float64
	require.NoError(t, s.AddBehaviour(e, Behaviour{
		OnUpdate: func(_ *Scene, _ Entity, dt float64) { got += dt },
	}))
	s.Update(0.25)
	s.Update(0.25)
	assert.Equal(t, 0.5, got)
}

func TestRenderWithoutCameraDrawsNothing(t *testing.T) {
	r, dev := newRenderer(t)
	s := New("empty")
	e := s.CreateEntity("")
	require.NoError(t, s.AddCircle(e, NewCircleRenderer()))

	s.Render(r, 1)
	assert.Empty(t, dev.Draws())
}

func TestRenderSpritesThenCircles(t *testing.T) {
	r, dev := newRenderer(t)
	s := New("main")
	s.Initialize(640, 480)

	sprite := s.CreateEntity("sprite")
	require.NoError(t, s.AddSprite(sprite, NewSpriteRenderer(nil)))
	circle := s.CreateEntity("circle")
	require.NoError(t, s.AddCircle(circle, NewCircleRenderer()))

	s.Render(r, 1)

	draws := dev.Draws()
	require.Len(t, draws, 2)
	assert.Equal(t, "quad", draws[0].ShaderName)
	assert.Equal(t, "circle", draws[1].ShaderName)
	assert.Equal(t, metadata.FrameStats{DrawCalls: 2, QuadCount: 2}, r.Stats())

	_, cam, ok := s.PrimaryCamera()
	require.True(t, ok)
	assert.Equal(t, cam.Camera.ViewProjection(), draws[0].ViewProjection)
}

func TestPrimaryCameraPreference(t *testing.T) {
	s := New("main")
	a := s.CreateEntity("a")
	b := s.CreateEntity("b")
	require.NoError(t, s.AddCamera(a, Camera{Camera: nil}))
	require.NoError(t, s.AddCamera(b, Camera{Camera: nil, Primary: true}))

	e, _, ok := s.PrimaryCamera()
	assert.True(t, ok)
	assert.Equal(t, b, e)
}

func TestResizeSkipsFixedAspectCameras(t *testing.T) {
	s := New("main")
	s.Initialize(100, 100)
	cam, _, _ := s.PrimaryCamera()
	fixed := s.CreateEntity("fixed")
	c, _ := s.Camera(cam)
	before := c.Camera.Projection()

	require.NoError(t, s.AddCamera(fixed, Camera{Camera: c.Camera, FixedAspect: true}))
	other := s.CreateEntity("other")
	require.NoError(t, s.AddCamera(other, Camera{Camera: nil, FixedAspect: true}))

	s.Resize(200, 50)
	c, _ = s.Camera(cam)
	assert.NotEqual(t, before, c.Camera.Projection())
	w, h := s.Size()
	assert.Equal(t, uint32(200), w)
	assert.Equal(t, uint32(50), h)
}

func TestManager(t *testing.T) {
	m := NewManager(320, 240)
	assert.Nil(t, m.Current())

	require.NoError(t, m.Add(New("menu")))
	require.NoError(t, m.Add(New("level")))
	assert.ErrorIs(t, m.Add(New("menu")), core.ErrSceneExists)
	assert.Equal(t, []string{"menu", "level"}, m.Names())

	assert.ErrorIs(t, m.Switch("missing"), core.ErrSceneNotFound)
	require.NoError(t, m.Switch("level"))
	require.NotNil(t, m.Current())
	assert.Equal(t, "level", m.Current().Name())

	// Add creates the screen camera
	_, _, ok := m.Current().PrimaryCamera()
	assert.True(t, ok)

	m.Resize(800, 600)
	w, h := m.Current().Size()
	assert.Equal(t, uint32(800), w)
	assert.Equal(t, uint32(600), h)

	menu, _ := m.Get("menu")
	w, _ = menu.Size()
	assert.Equal(t, uint32(320), w)
	require.NoError(t, m.Switch("menu"))
	w, _ = menu.Size()
	assert.Equal(t, uint32(800), w)

	require.NoError(t, m.Remove("menu"))
	assert.Nil(t, m.Current())
	assert.Zero(t, menu.Len())
	assert.ErrorIs(t, m.Remove("menu"), core.ErrSceneNotFound)
	assert.Equal(t, []string{"level"}, m.Names())
}
