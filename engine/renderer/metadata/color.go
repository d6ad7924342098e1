package metadata

import (
	"fmt"
	"image/color"
)

// Color is a 32-bit packed colour in ABGR layout: red lives in the lowest
// byte, so the value can be written straight into a unorm8x4 vertex
// attribute on little-endian hardware.
type Color uint32

var _ color.Color = Color(0)

// NewColor packs four 8-bit channels.
func NewColor(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

// NewColorRGB packs an opaque colour.
func NewColorRGB(r, g, b uint8) Color {
	return NewColor(r, g, b, 255)
}

// NewColorFloat packs channels given in [0, 1]. Values outside are clamped.
func NewColorFloat(r, g, b, a float32) Color {
	return NewColor(unitToByte(r), unitToByte(g), unitToByte(b), unitToByte(a))
}

// NewColorHex converts a 0xRRGGBBAA literal, the order colours are usually
// written in, to the packed layout.
func NewColorHex(rgba uint32) Color {
	return NewColor(uint8(rgba>>24), uint8(rgba>>16), uint8(rgba>>8), uint8(rgba))
}

// ColorFrom converts any image/color value.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return NewColor(n.R, n.G, n.B, n.A)
}

func unitToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func (c Color) Red() uint8   { return uint8(c) }
func (c Color) Green() uint8 { return uint8(c >> 8) }
func (c Color) Blue() uint8  { return uint8(c >> 16) }
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

func (c Color) WithRed(r uint8) Color   { return c&^0x000000ff | Color(r) }
func (c Color) WithGreen(g uint8) Color { return c&^0x0000ff00 | Color(g)<<8 }
func (c Color) WithBlue(b uint8) Color  { return c&^0x00ff0000 | Color(b)<<16 }
func (c Color) WithAlpha(a uint8) Color { return c&^0xff000000 | Color(a)<<24 }

// WithAlphaFloat replaces the alpha channel with a value in [0, 1].
func (c Color) WithAlphaFloat(a float32) Color {
	return c.WithAlpha(unitToByte(a))
}

// Packed returns the raw ABGR value.
func (c Color) Packed() uint32 {
	return uint32(c)
}

// Floats returns the channels normalised to [0, 1] in r, g, b, a order.
func (c Color) Floats() [4]float32 {
	return [4]float32{
		float32(c.Red()) / 255,
		float32(c.Green()) / 255,
		float32(c.Blue()) / 255,
		float32(c.Alpha()) / 255,
	}
}

// RGBA implements color.Color with alpha-premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}.RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.Red(), c.Green(), c.Blue(), c.Alpha())
}

// Named colours.
var (
	BLANK   = NewColor(0, 0, 0, 0)
	WHITE   = NewColorRGB(255, 255, 255)
	BLACK   = NewColorRGB(0, 0, 0)
	RED     = NewColorRGB(255, 0, 0)
	GREEN   = NewColorRGB(0, 255, 0)
	BLUE    = NewColorRGB(0, 0, 255)
	YELLOW  = NewColorRGB(255, 255, 0)
	CYAN    = NewColorRGB(0, 255, 255)
	MAGENTA = NewColorRGB(255, 0, 255)
	BROWN   = NewColorRGB(165, 42, 42)
	PURPLE  = NewColorRGB(128, 0, 128)

	ALICE_BLUE      = NewColorHex(0xf0f8ffff)
	ANTIQUE_WHITE   = NewColorHex(0xfaebd7ff)
	AQUAMARINE      = NewColorHex(0x7fffd4ff)
	AZURE           = NewColorHex(0xf0ffffff)
	BLUE_VIOLET     = NewColorHex(0x8a2be2ff)
	BURLYWOOD       = NewColorHex(0xdeb887ff)
	CADET_BLUE      = NewColorHex(0x5f9ea0ff)
	CHARTREUSE      = NewColorHex(0x7fff00ff)
	CHOCOLATE       = NewColorHex(0xd2691eff)
	CORNFLOWER_BLUE = NewColorHex(0x6495edff)
	CRIMSON         = NewColorHex(0xdc143cff)
	DARK_ORCHID     = NewColorHex(0x9932ccff)
	DARK_SALMON     = NewColorHex(0xe9967aff)
	DEEP_PINK       = NewColorHex(0xff1493ff)
	GOLD            = NewColorHex(0xffd700ff)
	INDIGO          = NewColorHex(0x4b0082ff)
	IVORY           = NewColorHex(0xfffff0ff)
	LAVENDER        = NewColorHex(0xe6e6faff)
	LAWN_GREEN      = NewColorHex(0x7cfc00ff)
	LIGHT_CORAL     = NewColorHex(0xf08080ff)
	PLUM            = NewColorHex(0xdda0ddff)
	ROYAL_BLUE      = NewColorHex(0x4169e1ff)
	SLATE_BLUE      = NewColorHex(0x6a5acdff)
	TEAL            = NewColorHex(0x008080ff)
	TURQUOISE       = NewColorHex(0x40e0d0ff)
	WHITE_SMOKE     = NewColorHex(0xf5f5f5ff)
	YELLOW_GREEN    = NewColorHex(0x9acd32ff)
)
