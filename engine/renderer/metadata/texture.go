package metadata

const (
	/** @brief The name of the 1x1 white texture bound to slot 0. */
	DEFAULT_TEXTURE_NAME string = "default_white"
)

/**
 * @brief Pixel layouts understood by the texture upload path.
 */
type TextureFormat int

const (
	TextureFormatRGBA8 TextureFormat = iota
	TextureFormatRGB8
)

// BytesPerPixel of the format.
func (f TextureFormat) BytesPerPixel() int {
	if f == TextureFormatRGB8 {
		return 3
	}
	return 4
}

type TextureFilter int

const (
	TextureFilterLinear TextureFilter = iota
	TextureFilterNearest
)

type TextureWrap int

const (
	TextureWrapRepeat TextureWrap = iota
	TextureWrapClampToEdge
)

/**
 * @brief Describes a texture to be created by a render device.
 */
type TextureSpec struct {
	/** @brief Debug name, generated when empty. */
	Name   string
	Width  uint32
	Height uint32
	Format TextureFormat
	Filter TextureFilter
	Wrap   TextureWrap
}
