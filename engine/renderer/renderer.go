package renderer

import (
	_ "embed"
	"fmt"

	"github.com/spaghettifunk/anima2d/engine/assets/loaders"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer/device"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

const (
	DefaultMaxQuads uint32 = 2048

	DefaultCircleThickness  float32 = 1.0
	DefaultCircleSmoothness float32 = 0.03
)

var (
	//go:embed shaders/quad.glsl
	quadShaderSource string
	//go:embed shaders/circle.glsl
	circleShaderSource string
)

// Config holds the construction parameters of a Renderer.
type Config struct {
	API      device.API `toml:"api" yaml:"api"`
	MaxQuads uint32     `toml:"max_quads" yaml:"max_quads"`
	// ClearColor is given as 0xRRGGBBAA.
	ClearColor uint32 `toml:"clear_color" yaml:"clear_color"`
}

func DefaultConfig() Config {
	return Config{
		API:        device.APIHeadless,
		MaxQuads:   DefaultMaxQuads,
		ClearColor: 0x1e1e2eff,
	}
}

func (c Config) Validate() error {
	if c.MaxQuads == 0 {
		return fmt.Errorf("%w: max quads must be positive", core.ErrInvalidRendererConfig)
	}
	// indices are 32-bit and every quad uses four vertices
	if c.MaxQuads > (1<<32-1)/6 {
		return fmt.Errorf("%w: max quads %d overflows the index buffer", core.ErrInvalidRendererConfig, c.MaxQuads)
	}
	return nil
}

type state uint8

const (
	stateIdle state = iota
	stateBegun
)

// Option customises a Renderer at construction.
type Option func(*options)

type options struct {
	quadShader   *metadata.ShaderSource
	circleShader *metadata.ShaderSource
}

// WithShaders replaces the built-in quad and circle shaders.
func WithShaders(quad, circle metadata.ShaderSource) Option {
	return func(o *options) {
		o.quadShader = &quad
		o.circleShader = &circle
	}
}

// Renderer batches quads and circles into as few draw calls as possible.
//
// Between DrawBegin and DrawEnd every primitive is appended to a CPU-side
// vertex array. A batch is submitted when its array is full, when a quad
// needs a texture and every texture unit is taken, or at DrawEnd. Quads and
// circles are batched independently and share one index buffer.
type Renderer struct {
	device          device.RenderDevice
	maxQuads        uint32
	maxTextureUnits uint32
	state           state

	viewProjection math.Transform
	stats          metadata.FrameStats
	totals         metadata.FrameStats

	indexBuffer  device.IndexBuffer
	quadVB       device.VertexBuffer
	quadVA       device.VertexArray
	quadShader   device.Shader
	circleVB     device.VertexBuffer
	circleVA     device.VertexArray
	circleShader device.Shader
	whiteTexture device.Texture

	quadVertices   []QuadVertex
	quadCount      uint32
	circleVertices []CircleVertex
	circleCount    uint32
	// textureSlots[0] is always the white texture.
	textureSlots []device.Texture
}

// New creates the GPU resources for batching cfg.MaxQuads primitives per
// draw call on dev.
func New(dev device.RenderDevice, cfg Config, opts ...Option) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	units := dev.Info().MaxTextureUnits
	if units < 2 {
		return nil, fmt.Errorf("%w: device exposes %d texture units, need at least 2", core.ErrInvalidRendererConfig, units)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.quadShader == nil {
		src, err := loaders.ParseShaderSource("quad", quadShaderSource)
		if err != nil {
			return nil, err
		}
		o.quadShader = &src
	}
	if o.circleShader == nil {
		src, err := loaders.ParseShaderSource("circle", circleShaderSource)
		if err != nil {
			return nil, err
		}
		o.circleShader = &src
	}

	r := &Renderer{
		device:          dev,
		maxQuads:        cfg.MaxQuads,
		maxTextureUnits: units,
		viewProjection:  math.Identity(),
		quadVertices:    make([]QuadVertex, cfg.MaxQuads*4),
		circleVertices:  make([]CircleVertex, cfg.MaxQuads*4),
		textureSlots:    make([]device.Texture, 0, units),
	}
	if err := r.createResources(*o.quadShader, *o.circleShader); err != nil {
		r.Release()
		return nil, err
	}
	r.textureSlots = append(r.textureSlots, r.whiteTexture)

	dev.SetClearColor(metadata.NewColorHex(cfg.ClearColor))
	dev.EnableBlending(true)

	core.LogInfo("renderer initialized on %s: %d quads per batch, %d texture units", dev.API(), r.maxQuads, r.maxTextureUnits)
	return r, nil
}

func (r *Renderer) createResources(quadSrc, circleSrc metadata.ShaderSource) error {
	var err error
	maxVertices := r.maxQuads * 4

	if r.indexBuffer, err = r.device.CreateIndexBuffer(quadIndices(r.maxQuads)); err != nil {
		return fmt.Errorf("creating index buffer: %w", err)
	}

	if r.quadVB, err = r.device.CreateVertexBuffer(QuadLayout, maxVertices); err != nil {
		return fmt.Errorf("creating quad vertex buffer: %w", err)
	}
	if r.quadVA, err = r.device.CreateVertexArray(); err != nil {
		return fmt.Errorf("creating quad vertex array: %w", err)
	}
	r.quadVA.AttachVertexBuffer(r.quadVB)
	r.quadVA.AttachIndexBuffer(r.indexBuffer)

	if r.circleVB, err = r.device.CreateVertexBuffer(CircleLayout, maxVertices); err != nil {
		return fmt.Errorf("creating circle vertex buffer: %w", err)
	}
	if r.circleVA, err = r.device.CreateVertexArray(); err != nil {
		return fmt.Errorf("creating circle vertex array: %w", err)
	}
	r.circleVA.AttachVertexBuffer(r.circleVB)
	r.circleVA.AttachIndexBuffer(r.indexBuffer)

	if r.quadShader, err = r.device.CreateShader(quadSrc); err != nil {
		return fmt.Errorf("creating quad shader: %w", err)
	}
	if r.circleShader, err = r.device.CreateShader(circleSrc); err != nil {
		return fmt.Errorf("creating circle shader: %w", err)
	}

	samplers := make([]int32, r.maxTextureUnits)
	for i := range samplers {
		samplers[i] = int32(i)
	}
	r.quadShader.Bind()
	r.quadShader.SetIntArray(metadata.UNIFORM_TEXTURES, samplers)
	r.quadShader.Unbind()

	white := []byte{0xff, 0xff, 0xff, 0xff}
	r.whiteTexture, err = r.device.CreateTexture(metadata.TextureSpec{
		Name:   metadata.DEFAULT_TEXTURE_NAME,
		Width:  1,
		Height: 1,
		Format: metadata.TextureFormatRGBA8,
		Filter: metadata.TextureFilterNearest,
	}, white)
	if err != nil {
		return fmt.Errorf("creating white texture: %w", err)
	}
	return nil
}

// Release frees every GPU resource owned by the renderer.
func (r *Renderer) Release() {
	if len(r.textureSlots) > 0 {
		r.resetTextureSlots()
	}
	for _, res := range []interface{ Release() }{
		r.whiteTexture, r.circleShader, r.quadShader,
		r.circleVA, r.circleVB, r.quadVA, r.quadVB, r.indexBuffer,
	} {
		if res != nil {
			res.Release()
		}
	}
}

// DrawBegin starts a batch drawn with viewProjection.
func (r *Renderer) DrawBegin(viewProjection math.Transform) {
	if !core.Assert(r.state == stateIdle, "DrawBegin called twice without DrawEnd") {
		return
	}
	r.state = stateBegun
	r.viewProjection = viewProjection
	r.quadCount = 0
	r.circleCount = 0
	r.resetTextureSlots()
	r.stats = metadata.FrameStats{}
}

// DrawEnd submits whatever is still buffered and closes the batch.
func (r *Renderer) DrawEnd() {
	if !r.begun("DrawEnd") {
		return
	}
	r.Flush()
	r.totals = r.totals.Add(r.stats)
	r.state = stateIdle
}

// Flush submits both pending batches.
func (r *Renderer) Flush() {
	if !r.begun("Flush") {
		return
	}
	r.FlushQuads()
	r.FlushCircles()
}

// FlushQuads submits the pending quads and frees the texture slots.
func (r *Renderer) FlushQuads() {
	if r.quadCount == 0 {
		return
	}
	for unit, tex := range r.textureSlots {
		tex.Bind(uint32(unit))
	}
	r.quadVB.SetData(vertexBytes(r.quadVertices[:r.quadCount*4]), r.quadCount*4)
	r.quadShader.Bind()
	r.quadShader.SetTransform(metadata.UNIFORM_VIEW_PROJECTION, r.viewProjection)
	r.device.DrawIndexed(r.quadVA, r.quadCount*6)
	r.stats.DrawCalls++

	r.quadCount = 0
	r.resetTextureSlots()
}

// FlushCircles submits the pending circles.
func (r *Renderer) FlushCircles() {
	if r.circleCount == 0 {
		return
	}
	r.circleVB.SetData(vertexBytes(r.circleVertices[:r.circleCount*4]), r.circleCount*4)
	r.circleShader.Bind()
	r.circleShader.SetTransform(metadata.UNIFORM_VIEW_PROJECTION, r.viewProjection)
	r.device.DrawIndexed(r.circleVA, r.circleCount*6)
	r.stats.DrawCalls++

	r.circleCount = 0
}

// DrawQuad appends a unit quad transformed by model. A nil texture draws a
// solid quad of colour tint.
func (r *Renderer) DrawQuad(model math.Transform, texture device.Texture, tint metadata.Color, uv [4]math.Vec2) {
	if !r.begun("DrawQuad") {
		return
	}
	if r.quadCount >= r.maxQuads {
		r.FlushQuads()
	}
	if texture == nil {
		texture = r.whiteTexture
	}
	slot := float32(r.textureSlot(texture))

	i := r.quadCount * 4
	for corner := range quadPositions {
		r.quadVertices[i+uint32(corner)] = QuadVertex{
			Position: model.Apply(quadPositions[corner]),
			TexCoord: uv[corner],
			Color:    tint,
			TexIndex: slot,
		}
	}
	r.quadCount++
	r.stats.QuadCount++
}

// DrawRect draws a solid axis aligned rectangle centred on position.
func (r *Renderer) DrawRect(position, size math.Vec2, color metadata.Color) {
	r.DrawQuad(math.Identity().TranslateV(position).ScaleV(size), nil, color, DefaultUV)
}

// DrawSprite draws texture centred on position.
func (r *Renderer) DrawSprite(texture device.Texture, position, size math.Vec2, tint metadata.Color) {
	r.DrawQuad(math.Identity().TranslateV(position).ScaleV(size), texture, tint, DefaultUV)
}

// DrawRotatedQuad draws a quad rotated by degrees around its centre.
func (r *Renderer) DrawRotatedQuad(position, size math.Vec2, degrees float32, texture device.Texture, tint metadata.Color) {
	model := math.Identity().
		TranslateV(position).
		Rotate(degrees).
		ScaleV(size)
	r.DrawQuad(model, texture, tint, DefaultUV)
}

// DrawRotatedQuadAround draws a quad rotated by degrees around origin, given
// relative to the quad centre.
func (r *Renderer) DrawRotatedQuadAround(position, size math.Vec2, degrees float32, origin math.Vec2, texture device.Texture, tint metadata.Color) {
	model := math.Identity().
		TranslateV(position).
		TranslateV(origin).
		Rotate(degrees).
		TranslateV(origin.Negate()).
		ScaleV(size)
	r.DrawQuad(model, texture, tint, DefaultUV)
}

// DrawCircle appends a circle or ring. thickness is in (0, 1] where 1 fills
// the disc; smoothness is the width of the anti-aliased edge.
func (r *Renderer) DrawCircle(position math.Vec2, radius float32, color metadata.Color, thickness, smoothness float32) {
	if !r.begun("DrawCircle") {
		return
	}
	if r.circleCount >= r.maxQuads {
		r.FlushCircles()
	}

	// the unit quad spans [-0.5, 0.5], so the diameter is the scale
	model := math.Identity().TranslateV(position).Scale(2*radius, 2*radius)

	i := r.circleCount * 4
	for corner := range quadPositions {
		r.circleVertices[i+uint32(corner)] = CircleVertex{
			WorldPosition: model.Apply(quadPositions[corner]),
			LocalPosition: circlePositions[corner],
			Color:         color,
			Thickness:     thickness,
			Smoothness:    smoothness,
		}
	}
	r.circleCount++
	r.stats.QuadCount++
}

// Stats returns the counters of the current or last batch.
func (r *Renderer) Stats() metadata.FrameStats {
	return r.stats
}

// TotalStats sums every batch closed since the last ResetTotalStats. The
// engine resets it at the start of each frame.
func (r *Renderer) TotalStats() metadata.FrameStats {
	return r.totals
}

func (r *Renderer) ResetTotalStats() {
	r.totals = metadata.FrameStats{}
}

// WhiteTexture is the texture used for untextured quads.
func (r *Renderer) WhiteTexture() device.Texture {
	return r.whiteTexture
}

func (r *Renderer) Device() device.RenderDevice {
	return r.device
}

func (r *Renderer) MaxQuads() uint32 {
	return r.maxQuads
}

// PendingQuads and PendingCircles report what is buffered but not submitted.
func (r *Renderer) PendingQuads() uint32   { return r.quadCount }
func (r *Renderer) PendingCircles() uint32 { return r.circleCount }

// textureSlot returns the slot texture is bound to in the current quad
// batch, claiming a free slot or submitting the batch when none is left.
func (r *Renderer) textureSlot(texture device.Texture) uint32 {
	for i, slot := range r.textureSlots {
		if device.SameTexture(slot, texture) {
			return uint32(i)
		}
	}
	if uint32(len(r.textureSlots)) == r.maxTextureUnits {
		r.FlushQuads()
	}
	// held until the batch is submitted, even if the owner releases it
	texture.Retain()
	r.textureSlots = append(r.textureSlots, texture)
	return uint32(len(r.textureSlots) - 1)
}

func (r *Renderer) resetTextureSlots() {
	for _, tex := range r.textureSlots[1:] {
		tex.Release()
	}
	clear(r.textureSlots[1:])
	r.textureSlots = r.textureSlots[:1]
}

func (r *Renderer) begun(op string) bool {
	return core.Assert(r.state == stateBegun, "%s called outside DrawBegin/DrawEnd", op)
}
