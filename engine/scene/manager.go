package scene

import (
	"fmt"

	"github.com/spaghettifunk/anima2d/engine/core"
)

// Manager keeps the loaded scenes and the one currently active.
type Manager struct {
	scenes  map[string]*Scene
	order   []string
	current *Scene
	width   uint32
	height  uint32
}

// NewManager creates a manager whose scenes are initialised for a surface of
// width x height.
func NewManager(width, height uint32) *Manager {
	return &Manager{
		scenes: make(map[string]*Scene),
		width:  width,
		height: height,
	}
}

// Add initialises s and registers it under its name.
func (m *Manager) Add(s *Scene) error {
	if s == nil {
		return fmt.Errorf("%w: nil scene", core.ErrSceneNotFound)
	}
	if _, ok := m.scenes[s.Name()]; ok {
		return fmt.Errorf("%w: %s", core.ErrSceneExists, s.Name())
	}
	s.Initialize(m.width, m.height)
	m.scenes[s.Name()] = s
	m.order = append(m.order, s.Name())
	return nil
}

// Remove unregisters the scene and destroys its entities. Removing the
// current scene leaves no scene active.
func (m *Manager) Remove(name string) error {
	s, ok := m.scenes[name]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrSceneNotFound, name)
	}
	if m.current == s {
		m.current = nil
	}
	s.DestroyAll()
	delete(m.scenes, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Manager) Switch(name string) error {
	s, ok := m.scenes[name]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrSceneNotFound, name)
	}
	if w, h := s.Size(); w != m.width || h != m.height {
		s.Resize(m.width, m.height)
	}
	m.current = s
	core.LogDebug("switched to scene %q", name)
	return nil
}

// Current returns the active scene, or nil.
func (m *Manager) Current() *Scene {
	return m.current
}

func (m *Manager) Get(name string) (*Scene, bool) {
	s, ok := m.scenes[name]
	return s, ok
}

// Names lists scenes in the order they were added.
func (m *Manager) Names() []string {
	return append([]string(nil), m.order...)
}

// Resize forwards to the current scene; others catch up when switched to.
func (m *Manager) Resize(width, height uint32) {
	m.width, m.height = width, height
	if m.current != nil {
		m.current.Resize(width, height)
	}
}
