package device

import (
	"github.com/gogpu/gputypes"
)

// Attribute is one named field of an interleaved vertex.
type Attribute struct {
	Name       string
	Format     gputypes.VertexFormat
	Normalized bool
	Offset     uint64
	Location   uint32
}

// Size in bytes of the attribute.
func (a Attribute) Size() uint64 {
	return a.Format.Size()
}

// Components is the number of scalar values the attribute carries.
func (a Attribute) Components() uint32 {
	switch a.Format {
	case gputypes.VertexFormatFloat32, gputypes.VertexFormatUint32, gputypes.VertexFormatSint32:
		return 1
	case gputypes.VertexFormatFloat32x2, gputypes.VertexFormatUint32x2, gputypes.VertexFormatSint32x2:
		return 2
	case gputypes.VertexFormatFloat32x3, gputypes.VertexFormatUint32x3, gputypes.VertexFormatSint32x3:
		return 3
	case gputypes.VertexFormatFloat32x4, gputypes.VertexFormatUnorm8x4, gputypes.VertexFormatUint8x4:
		return 4
	}
	return 0
}

// Layout describes an interleaved vertex. Offsets, shader locations and the
// stride are derived from the attribute order.
type Layout struct {
	attributes []Attribute
	stride     uint64
}

func NewLayout(attributes ...Attribute) Layout {
	l := Layout{attributes: make([]Attribute, len(attributes))}
	var offset uint64
	for i, a := range attributes {
		a.Offset = offset
		a.Location = uint32(i)
		offset += a.Size()
		l.attributes[i] = a
	}
	l.stride = offset
	return l
}

func (l Layout) Attributes() []Attribute {
	return l.attributes
}

// Stride is the size of one vertex in bytes.
func (l Layout) Stride() uint64 {
	return l.stride
}

// BufferLayout converts to the portable GPU description of the layout.
func (l Layout) BufferLayout() gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(l.attributes))
	for i, a := range l.attributes {
		attrs[i] = gputypes.VertexAttribute{
			Format:         a.Format,
			Offset:         a.Offset,
			ShaderLocation: a.Location,
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: l.stride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}
