package headless

import (
	"github.com/gogpu/gputypes"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer/device"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

// resource carries the id every object gets from the device pool.
type resource struct {
	device   *Device
	id       uint32
	released bool
}

func (r *resource) ID() uint32 {
	return r.id
}

func (r *resource) release() {
	if r.released {
		return
	}
	r.released = true
	if err := r.device.ids.Release(r.id); err != nil {
		core.LogWarn("headless: %v", err)
	}
}

type VertexBuffer struct {
	resource
	layout   device.Layout
	capacity uint32
	count    uint32
	data     []byte
}

func (vb *VertexBuffer) Layout() device.Layout {
	return vb.layout
}

func (vb *VertexBuffer) Capacity() uint32 {
	return vb.capacity
}

func (vb *VertexBuffer) Usage() gputypes.BufferUsage {
	return gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
}

// Count is the number of vertices in the last upload.
func (vb *VertexBuffer) Count() uint32 {
	return vb.count
}

func (vb *VertexBuffer) SetData(data []byte, count uint32) {
	core.Assert(count <= vb.capacity, "upload of %d vertices exceeds capacity %d", count, vb.capacity)
	size := uint64(count) * vb.layout.Stride()
	core.Assert(uint64(len(data)) >= size, "upload of %d vertices needs %d bytes, got %d", count, size, len(data))
	size = min(size, uint64(len(data)))
	vb.data = append(vb.data[:0], data[:size]...)
	vb.count = count
	vb.device.uploads++
}

// Bytes returns the uploaded vertex bytes.
func (vb *VertexBuffer) Bytes() []byte {
	return vb.data
}

func (vb *VertexBuffer) Release() {
	delete(vb.device.buffers, vb.id)
	vb.release()
}

type IndexBuffer struct {
	resource
	indices []uint32
}

func (ib *IndexBuffer) Count() uint32 {
	return uint32(len(ib.indices))
}

func (ib *IndexBuffer) Format() gputypes.IndexFormat {
	return gputypes.IndexFormatUint32
}

func (ib *IndexBuffer) SetData(indices []uint32) {
	ib.indices = append(ib.indices[:0], indices...)
}

// Indices returns the stored indices.
func (ib *IndexBuffer) Indices() []uint32 {
	return ib.indices
}

func (ib *IndexBuffer) Release() {
	ib.release()
}

type VertexArray struct {
	resource
	vertexBuffers []device.VertexBuffer
	indexBuffer   device.IndexBuffer
	bound         bool
}

func (va *VertexArray) AttachVertexBuffer(vb device.VertexBuffer) {
	va.vertexBuffers = append(va.vertexBuffers, vb)
}

func (va *VertexArray) AttachIndexBuffer(ib device.IndexBuffer) {
	va.indexBuffer = ib
}

func (va *VertexArray) VertexBuffers() []device.VertexBuffer {
	return va.vertexBuffers
}

func (va *VertexArray) IndexBuffer() device.IndexBuffer {
	return va.indexBuffer
}

func (va *VertexArray) Bind()   { va.bound = true }
func (va *VertexArray) Unbind() { va.bound = false }

func (va *VertexArray) Release() {
	va.release()
}

type Texture struct {
	resource
	spec   metadata.TextureSpec
	pixels []byte
	refs   int
}

func (t *Texture) Name() string {
	return t.spec.Name
}

func (t *Texture) Width() uint32 {
	return t.spec.Width
}

func (t *Texture) Height() uint32 {
	return t.spec.Height
}

func (t *Texture) SetData(pixels []byte) {
	want := int(t.spec.Width*t.spec.Height) * t.spec.Format.BytesPerPixel()
	core.Assert(len(pixels) == want, "texture %q expects %d bytes, got %d", t.spec.Name, want, len(pixels))
	t.pixels = append(t.pixels[:0], pixels...)
}

// Pixels returns the uploaded texel bytes.
func (t *Texture) Pixels() []byte {
	return t.pixels
}

func (t *Texture) Bind(unit uint32) {
	core.Assert(unit < t.device.info.MaxTextureUnits, "texture unit %d out of range", unit)
	t.device.units[unit] = t
}

func (t *Texture) Retain() {
	if !core.Assert(t.refs > 0, "retain of released texture %q", t.spec.Name) {
		return
	}
	t.refs++
}

// Refs is the number of live references.
func (t *Texture) Refs() int {
	return t.refs
}

func (t *Texture) Release() {
	if t.refs == 0 {
		return
	}
	t.refs--
	if t.refs > 0 {
		return
	}
	for unit, bound := range t.device.units {
		if bound == t {
			delete(t.device.units, unit)
		}
	}
	delete(t.device.textures, t.id)
	t.release()
}

type Shader struct {
	resource
	source metadata.ShaderSource
	ints   map[string][]int32
	floats map[string]float32
	colors map[string]metadata.Color
	xforms map[string]math.Transform
}

func (s *Shader) Name() string {
	return s.source.Name
}

func (s *Shader) Bind() {
	s.device.shader = s
}

func (s *Shader) Unbind() {
	if s.device.shader == s {
		s.device.shader = nil
	}
}

func (s *Shader) SetInt(name string, value int32) {
	s.ints[name] = []int32{value}
}

func (s *Shader) SetIntArray(name string, values []int32) {
	s.ints[name] = append([]int32(nil), values...)
}

func (s *Shader) SetFloat(name string, value float32) {
	s.floats[name] = value
}

func (s *Shader) SetColor(name string, value metadata.Color) {
	s.colors[name] = value
}

func (s *Shader) SetTransform(name string, value math.Transform) {
	s.xforms[name] = value
}

// Ints returns the last integer uniform set under name.
func (s *Shader) Ints(name string) []int32 {
	return s.ints[name]
}

// Transform returns the last transform uniform set under name.
func (s *Shader) Transform(name string) (math.Transform, bool) {
	t, ok := s.xforms[name]
	return t, ok
}

func (s *Shader) Release() {
	s.Unbind()
	s.release()
}
