package device

import (
	"github.com/gogpu/gputypes"

	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

// Info describes the capabilities of a render device.
type Info struct {
	Vendor   string
	Renderer string
	Version  string
	// MaxTextureUnits is how many textures one draw call can sample.
	MaxTextureUnits uint32
	Limits          gputypes.Limits
}

// VertexBuffer is GPU memory holding interleaved vertices of one layout.
type VertexBuffer interface {
	ID() uint32
	Layout() Layout
	// Capacity is the number of vertices the buffer can hold.
	Capacity() uint32
	Usage() gputypes.BufferUsage
	// SetData uploads count vertices from the front of data, replacing
	// the previous content.
	SetData(data []byte, count uint32)
	Release()
}

type IndexBuffer interface {
	ID() uint32
	Count() uint32
	Format() gputypes.IndexFormat
	SetData(indices []uint32)
	Release()
}

// VertexArray binds vertex buffers to an index buffer. Several arrays may
// share one index buffer.
type VertexArray interface {
	ID() uint32
	AttachVertexBuffer(vb VertexBuffer)
	AttachIndexBuffer(ib IndexBuffer)
	VertexBuffers() []VertexBuffer
	IndexBuffer() IndexBuffer
	Bind()
	Unbind()
	Release()
}

// Texture is a sampled 2D image. Two handles with the same ID are the same
// texture. Textures are reference counted: the creator holds one reference,
// Retain adds one and Release drops one. The ID stays reserved until the
// last reference is dropped.
type Texture interface {
	ID() uint32
	Name() string
	Width() uint32
	Height() uint32
	SetData(pixels []byte)
	Bind(unit uint32)
	Retain()
	Release()
}

type Shader interface {
	ID() uint32
	Name() string
	Bind()
	Unbind()
	SetInt(name string, value int32)
	SetIntArray(name string, values []int32)
	SetFloat(name string, value float32)
	SetColor(name string, value metadata.Color)
	SetTransform(name string, value math.Transform)
	Release()
}

// RenderDevice creates GPU resources and submits draws. Implementations
// live in backend packages; everything runs on the thread that owns the
// graphics context.
type RenderDevice interface {
	API() API
	Info() Info

	CreateVertexBuffer(layout Layout, capacity uint32) (VertexBuffer, error)
	CreateIndexBuffer(indices []uint32) (IndexBuffer, error)
	CreateVertexArray() (VertexArray, error)
	CreateTexture(spec metadata.TextureSpec, pixels []byte) (Texture, error)
	CreateShader(source metadata.ShaderSource) (Shader, error)

	SetClearColor(c metadata.Color)
	Clear()
	SetViewport(x, y, width, height uint32)
	EnableBlending(enabled bool)
	// DrawIndexed draws indexCount indices of va as triangles.
	DrawIndexed(va VertexArray, indexCount uint32)

	Close() error
}

// SameTexture reports whether a and b refer to the same GPU texture. Nil
// handles are only equal to each other.
func SameTexture(a, b Texture) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}
