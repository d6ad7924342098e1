package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/anima2d/engine/containers"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer"
	"github.com/spaghettifunk/anima2d/engine/renderer/components"
)

// Entity is a handle into a Scene. The zero value is never a live entity.
type Entity uint32

const NullEntity Entity = 0

// Scene owns entities and their components, stored per component type in
// sparse sets.
type Scene struct {
	name   string
	ids    *core.IdentifierPool
	width  uint32
	height uint32

	tags       *containers.SparseSet[Entity, Tag]
	transforms *containers.SparseSet[Entity, Transform]
	sprites    *containers.SparseSet[Entity, SpriteRenderer]
	circles    *containers.SparseSet[Entity, CircleRenderer]
	cameras    *containers.SparseSet[Entity, Camera]
	behaviours *containers.SparseSet[Entity, Behaviour]
}

func New(name string) *Scene {
	s := &Scene{
		name:       name,
		ids:        core.NewIdentifierPool(64),
		tags:       containers.NewSparseSet[Entity, Tag](),
		transforms: containers.NewSparseSet[Entity, Transform](),
		sprites:    containers.NewSparseSet[Entity, SpriteRenderer](),
		circles:    containers.NewSparseSet[Entity, CircleRenderer](),
		cameras:    containers.NewSparseSet[Entity, Camera](),
		behaviours: containers.NewSparseSet[Entity, Behaviour](),
	}
	// keep id 0 for NullEntity
	s.ids.Acquire(s)
	return s
}

func (s *Scene) Name() string {
	return s.name
}

// Initialize creates the primary screen camera covering width x height.
func (s *Scene) Initialize(width, height uint32) {
	s.width, s.height = width, height
	e := s.CreateEntity("camera")
	s.AddCamera(e, Camera{
		Camera:  components.NewScreenCamera(float32(width), float32(height)),
		Primary: true,
	})
}

// CreateEntity returns a new entity with a Tag and an identity Transform. An
// empty name becomes "entity".
func (s *Scene) CreateEntity(name string) Entity {
	if name == "" {
		name = "entity"
	}
	e := Entity(s.ids.Acquire(s))
	s.tags.Set(e, Tag{Name: name, UUID: uuid.New()})
	s.transforms.Set(e, NewTransform())
	return e
}

func (s *Scene) Valid(e Entity) bool {
	return e != NullEntity && s.tags.Has(e)
}

func (s *Scene) DestroyEntity(e Entity) error {
	if !s.Valid(e) {
		return fmt.Errorf("%w: %d", core.ErrEntityNotFound, e)
	}
	s.tags.Remove(e)
	s.transforms.Remove(e)
	s.sprites.Remove(e)
	s.circles.Remove(e)
	s.cameras.Remove(e)
	s.behaviours.Remove(e)
	return s.ids.Release(uint32(e))
}

func (s *Scene) DestroyAll() {
	for _, e := range append([]Entity(nil), s.tags.Keys()...) {
		_ = s.ids.Release(uint32(e))
	}
	s.tags.Clear()
	s.transforms.Clear()
	s.sprites.Clear()
	s.circles.Clear()
	s.cameras.Clear()
	s.behaviours.Clear()
}

func (s *Scene) Len() int {
	return s.tags.Len()
}

// Find returns the first entity tagged name.
func (s *Scene) Find(name string) (Entity, bool) {
	found := NullEntity
	s.tags.Each(func(e Entity, t *Tag) bool {
		if t.Name == name {
			found = e
			return false
		}
		return true
	})
	return found, found != NullEntity
}

func (s *Scene) Tag(e Entity) (*Tag, error) {
	return get(s.tags, e, "tag")
}

func (s *Scene) Transform(e Entity) (*Transform, error) {
	return get(s.transforms, e, "transform")
}

func (s *Scene) AddSprite(e Entity, sprite SpriteRenderer) error {
	return add(s, s.sprites, e, sprite)
}

func (s *Scene) Sprite(e Entity) (*SpriteRenderer, error) {
	return get(s.sprites, e, "sprite renderer")
}

func (s *Scene) AddCircle(e Entity, circle CircleRenderer) error {
	return add(s, s.circles, e, circle)
}

func (s *Scene) Circle(e Entity) (*CircleRenderer, error) {
	return get(s.circles, e, "circle renderer")
}

func (s *Scene) AddCamera(e Entity, camera Camera) error {
	return add(s, s.cameras, e, camera)
}

func (s *Scene) Camera(e Entity) (*Camera, error) {
	return get(s.cameras, e, "camera")
}

func (s *Scene) AddBehaviour(e Entity, b Behaviour) error {
	return add(s, s.behaviours, e, b)
}

// RemoveComponents drops every renderer, camera and behaviour of e. The Tag
// and Transform stay for the entity's whole life.
func (s *Scene) RemoveComponents(e Entity) {
	s.sprites.Remove(e)
	s.circles.Remove(e)
	s.cameras.Remove(e)
	s.behaviours.Remove(e)
}

func add[T any](s *Scene, set *containers.SparseSet[Entity, T], e Entity, v T) error {
	if !s.Valid(e) {
		return fmt.Errorf("%w: %d", core.ErrEntityNotFound, e)
	}
	set.Set(e, v)
	return nil
}

func get[T any](set *containers.SparseSet[Entity, T], e Entity, what string) (*T, error) {
	v, ok := set.Get(e)
	if !ok {
		return nil, fmt.Errorf("%w: entity %d has no %s", core.ErrComponentMissing, e, what)
	}
	return v, nil
}

// PrimaryCamera returns the first camera flagged Primary, or the first camera.
func (s *Scene) PrimaryCamera() (Entity, *Camera, bool) {
	var (
		entity Entity
		camera *Camera
	)
	s.cameras.Each(func(e Entity, c *Camera) bool {
		if camera == nil || c.Primary && !camera.Primary {
			entity, camera = e, c
		}
		return !c.Primary
	})
	return entity, camera, camera != nil
}

func (s *Scene) Update(delta float64) {
	for _, e := range append([]Entity(nil), s.behaviours.Keys()...) {
		b, ok := s.behaviours.Get(e)
		if ok && b.OnUpdate != nil {
			b.OnUpdate(s, e, delta)
		}
	}
}

// FixedUpdate records every transform as the interpolation start point and
// then runs the fixed step behaviours.
func (s *Scene) FixedUpdate(fixedDelta float64) {
	s.transforms.Each(func(_ Entity, t *Transform) bool {
		t.snapshot()
		return true
	})
	for _, e := range append([]Entity(nil), s.behaviours.Keys()...) {
		b, ok := s.behaviours.Get(e)
		if ok && b.OnFixedUpdate != nil {
			b.OnFixedUpdate(s, e, fixedDelta)
		}
	}
}

// Render draws the scene through the primary camera, sprites first, with
// transforms interpolated by alpha. Without a camera nothing is drawn.
func (s *Scene) Render(r *renderer.Renderer, alpha float64) {
	e, cam, ok := s.PrimaryCamera()
	if !ok {
		core.LogWarn("scene %q has no camera", s.name)
		return
	}
	a := math.Clamp(float32(alpha), 0, 1)

	if t, err := s.Transform(e); err == nil {
		pos, _, rot := t.Interpolated(a)
		cam.Camera.SetPosition(pos)
		cam.Camera.SetRotation(rot)
	}

	r.DrawBegin(cam.Camera.ViewProjection())

	s.sprites.Each(func(e Entity, sprite *SpriteRenderer) bool {
		t, ok := s.transforms.Get(e)
		if !ok {
			return true
		}
		pos, scale, rot := t.Interpolated(a)
		size := scale
		if sprite.Texture != nil {
			size = scale.Mul(math.NewVec2(float32(sprite.Texture.Width()), float32(sprite.Texture.Height())))
		}
		if sprite.FlipX {
			size.X = -size.X
		}
		if sprite.FlipY {
			size.Y = -size.Y
		}
		model := math.Identity().TranslateV(pos).Rotate(rot).ScaleV(size)
		r.DrawQuad(model, sprite.Texture, sprite.Color, sprite.UV)
		return true
	})

	s.circles.Each(func(e Entity, circle *CircleRenderer) bool {
		t, ok := s.transforms.Get(e)
		if !ok {
			return true
		}
		pos, scale, _ := t.Interpolated(a)
		r.DrawCircle(pos, scale.X*CircleBaseRadius, circle.Color, circle.Thickness, circle.Smoothness)
		return true
	})

	r.DrawEnd()
}

// Resize fits every camera without a fixed aspect to the new surface.
func (s *Scene) Resize(width, height uint32) {
	s.width, s.height = width, height
	s.cameras.Each(func(_ Entity, c *Camera) bool {
		if !c.FixedAspect {
			c.Camera.SetProjection(0, float32(width), float32(height), 0)
		}
		return true
	})
}

func (s *Scene) Size() (uint32, uint32) {
	return s.width, s.height
}
