package metadata

/**
 * @brief Kinds of resources the asset manager knows how to load.
 */
type ResourceType int

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeShader
	ResourceTypeImage
	ResourceTypeConfig
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeConfig:
		return "config"
	}
	return "none"
}

/**
 * @brief A loaded resource. Data holds the loader specific payload.
 */
type Resource struct {
	/** @brief Short name, the file name without extension. */
	Name string
	/** @brief Path the resource was loaded from. */
	FullPath string
	Type     ResourceType
	/** @brief Size of the raw file in bytes. */
	DataSize uint64
	Data     interface{}
}

/**
 * @brief Decoded pixels, always tightly packed RGBA8.
 */
type ImageResourceData struct {
	ChannelCount uint8
	Width        uint32
	Height       uint32
	Pixels       []uint8
}

/**
 * @brief Options accepted by the image loader.
 */
type ImageResourceParams struct {
	/** @brief Flip the image vertically so row 0 is the bottom row. */
	FlipY bool
}
