package renderer

import (
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer/device"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

// QuadVertex is one corner of a textured quad. The field order must match
// QuadLayout.
type QuadVertex struct {
	Position math.Vec2
	TexCoord math.Vec2
	Color    metadata.Color
	TexIndex float32
}

// CircleVertex is one corner of the quad a circle is shaded on. Local
// position spans [-1, 1] so the fragment stage can compute the distance to
// the centre.
type CircleVertex struct {
	WorldPosition math.Vec2
	LocalPosition math.Vec2
	Color         metadata.Color
	Thickness     float32
	Smoothness    float32
}

var (
	QuadLayout = device.NewLayout(
		device.Attribute{Name: "aPosition", Format: gputypes.VertexFormatFloat32x2},
		device.Attribute{Name: "aTexCoord", Format: gputypes.VertexFormatFloat32x2},
		device.Attribute{Name: "aColor", Format: gputypes.VertexFormatUnorm8x4, Normalized: true},
		device.Attribute{Name: "aTexIndex", Format: gputypes.VertexFormatFloat32},
	)

	CircleLayout = device.NewLayout(
		device.Attribute{Name: "aWorldPosition", Format: gputypes.VertexFormatFloat32x2},
		device.Attribute{Name: "aLocalPosition", Format: gputypes.VertexFormatFloat32x2},
		device.Attribute{Name: "aColor", Format: gputypes.VertexFormatUnorm8x4, Normalized: true},
		device.Attribute{Name: "aThickness", Format: gputypes.VertexFormatFloat32},
		device.Attribute{Name: "aSmoothness", Format: gputypes.VertexFormatFloat32},
	)
)

// Unit quad corners, counter-clockwise from bottom left.
var (
	quadPositions = [4]math.Vec2{
		{X: -0.5, Y: -0.5},
		{X: 0.5, Y: -0.5},
		{X: 0.5, Y: 0.5},
		{X: -0.5, Y: 0.5},
	}
	circlePositions = [4]math.Vec2{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
	}
	// DefaultUV maps the full texture onto a quad.
	DefaultUV = [4]math.Vec2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}
)

// quadIndices builds the shared index pattern for maxQuads quads.
func quadIndices(maxQuads uint32) []uint32 {
	indices := make([]uint32, maxQuads*6)
	for i, offset := uint32(0), uint32(0); i < uint32(len(indices)); i, offset = i+6, offset+4 {
		indices[i+0] = offset + 0
		indices[i+1] = offset + 1
		indices[i+2] = offset + 2

		indices[i+3] = offset + 2
		indices[i+4] = offset + 3
		indices[i+5] = offset + 0
	}
	return indices
}

// vertexBytes reinterprets a vertex slice as the bytes the GPU reads. Both
// vertex types consist of 4-byte fields only, so there is no padding.
func vertexBytes[V QuadVertex | CircleVertex](vertices []V) []byte {
	if len(vertices) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(vertices[0]))
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(vertices))), len(vertices)*size) //nolint:gosec // plain-old-data vertices
}
