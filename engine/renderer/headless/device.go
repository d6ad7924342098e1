// Package headless implements a render device that keeps everything in
// memory and records what it is asked to do. It backs windowless runs and
// lets tests inspect the exact draw stream a frame produced.
package headless

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer/device"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

// DrawCall is a snapshot of the pipeline state at one DrawIndexed.
type DrawCall struct {
	VertexArray uint32
	Shader      uint32
	ShaderName  string
	IndexCount  uint32
	// Textures maps texture unit to texture id.
	Textures map[uint32]uint32
	// Vertices is a copy of the first vertex buffer's uploaded bytes.
	Vertices       []byte
	VertexCount    uint32
	ViewProjection math.Transform
}

type Option func(*Device)

// WithMaxTextureUnits overrides the sampler limit reported by Info.
func WithMaxTextureUnits(n uint32) Option {
	return func(d *Device) {
		d.info.MaxTextureUnits = n
		d.info.Limits.MaxSampledTexturesPerShaderStage = n
	}
}

// Device is the in-memory render device.
type Device struct {
	info    device.Info
	ids     *core.IdentifierPool
	clear   metadata.Color
	blend   bool
	closed  bool
	shader  *Shader
	units   map[uint32]*Texture
	draws   []DrawCall
	uploads int
	view    [4]uint32

	textures map[uint32]*Texture
	buffers  map[uint32]*VertexBuffer
}

var _ device.RenderDevice = (*Device)(nil)

func New(opts ...Option) *Device {
	limits := gputypes.DefaultLimits()
	d := &Device{
		info: device.Info{
			Vendor:          "anima2d",
			Renderer:        "headless",
			Version:         "1.0",
			MaxTextureUnits: limits.MaxSampledTexturesPerShaderStage,
			Limits:          limits,
		},
		ids:      core.NewIdentifierPool(64),
		units:    make(map[uint32]*Texture),
		textures: make(map[uint32]*Texture),
		buffers:  make(map[uint32]*VertexBuffer),
	}
	// id 0 means "no object" in most graphics APIs
	d.ids.Acquire(d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Device) API() device.API {
	return device.APIHeadless
}

func (d *Device) Info() device.Info {
	return d.info
}

func (d *Device) CreateVertexBuffer(layout device.Layout, capacity uint32) (device.VertexBuffer, error) {
	if layout.Stride() == 0 {
		return nil, fmt.Errorf("vertex buffer layout has no attributes")
	}
	vb := &VertexBuffer{
		resource: d.newResource(),
		layout:   layout,
		capacity: capacity,
		data:     make([]byte, 0, uint64(capacity)*layout.Stride()),
	}
	vb.id = d.ids.Acquire(vb)
	d.buffers[vb.id] = vb
	core.LogDebug("headless: vertex buffer %d created (%d vertices x %d bytes)", vb.id, capacity, layout.Stride())
	return vb, nil
}

func (d *Device) CreateIndexBuffer(indices []uint32) (device.IndexBuffer, error) {
	ib := &IndexBuffer{resource: d.newResource()}
	ib.id = d.ids.Acquire(ib)
	ib.SetData(indices)
	return ib, nil
}

func (d *Device) CreateVertexArray() (device.VertexArray, error) {
	va := &VertexArray{resource: d.newResource()}
	va.id = d.ids.Acquire(va)
	return va, nil
}

func (d *Device) CreateTexture(spec metadata.TextureSpec, pixels []byte) (device.Texture, error) {
	if spec.Width == 0 || spec.Height == 0 {
		return nil, fmt.Errorf("texture %q has zero size", spec.Name)
	}
	if spec.Name == "" {
		spec.Name = uuid.New().String()
	}
	tex := &Texture{resource: d.newResource(), spec: spec, refs: 1}
	tex.id = d.ids.Acquire(tex)
	if pixels != nil {
		tex.SetData(pixels)
	}
	d.textures[tex.id] = tex
	return tex, nil
}

func (d *Device) CreateShader(source metadata.ShaderSource) (device.Shader, error) {
	if _, ok := source.Sources[metadata.ShaderStageVertex]; !ok {
		return nil, fmt.Errorf("shader %q has no vertex stage", source.Name)
	}
	if _, ok := source.Sources[metadata.ShaderStageFragment]; !ok {
		return nil, fmt.Errorf("shader %q has no fragment stage", source.Name)
	}
	sh := &Shader{
		resource: d.newResource(),
		source:   source,
		ints:     make(map[string][]int32),
		floats:   make(map[string]float32),
		colors:   make(map[string]metadata.Color),
		xforms:   make(map[string]math.Transform),
	}
	sh.id = d.ids.Acquire(sh)
	return sh, nil
}

func (d *Device) SetClearColor(c metadata.Color) {
	d.clear = c
}

func (d *Device) ClearColor() metadata.Color {
	return d.clear
}

func (d *Device) Clear() {}

func (d *Device) SetViewport(x, y, width, height uint32) {
	d.view = [4]uint32{x, y, width, height}
}

// Viewport returns the last viewport as x, y, width, height.
func (d *Device) Viewport() [4]uint32 {
	return d.view
}

func (d *Device) EnableBlending(enabled bool) {
	d.blend = enabled
}

func (d *Device) Blending() bool {
	return d.blend
}

func (d *Device) DrawIndexed(va device.VertexArray, indexCount uint32) {
	if !core.Assert(va != nil && va.IndexBuffer() != nil, "draw without vertex array or index buffer") {
		return
	}
	ib := va.IndexBuffer()
	core.Assert(indexCount <= ib.Count(), "draw of %d indices exceeds index buffer of %d", indexCount, ib.Count())
	core.Assert(d.shader != nil, "draw without a bound shader")

	call := DrawCall{
		VertexArray: va.ID(),
		IndexCount:  indexCount,
		Textures:    make(map[uint32]uint32, len(d.units)),
	}
	if d.shader != nil {
		call.Shader = d.shader.id
		call.ShaderName = d.shader.source.Name
		call.ViewProjection = d.shader.xforms[metadata.UNIFORM_VIEW_PROJECTION]
	}
	for unit, tex := range d.units {
		call.Textures[unit] = tex.id
	}
	if vbs := va.VertexBuffers(); len(vbs) > 0 {
		if vb, ok := vbs[0].(*VertexBuffer); ok {
			call.Vertices = slices.Clone(vb.data)
			call.VertexCount = vb.count
		}
	}
	d.draws = append(d.draws, call)
}

// Draws returns every draw call recorded since the last ResetRecording.
func (d *Device) Draws() []DrawCall {
	return d.draws
}

// Uploads counts vertex buffer uploads since the last ResetRecording.
func (d *Device) Uploads() int {
	return d.uploads
}

func (d *Device) ResetRecording() {
	d.draws = nil
	d.uploads = 0
}

// LiveObjects is the number of GPU objects not yet released.
func (d *Device) LiveObjects() int {
	// minus the reserved id 0
	return d.ids.Live() - 1
}

func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if n := d.LiveObjects(); n > 0 {
		core.LogDebug("headless: closing with %d live objects", n)
	}
	return nil
}

func (d *Device) newResource() resource {
	return resource{device: d}
}
