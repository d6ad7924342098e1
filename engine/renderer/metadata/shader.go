package metadata

/**
 * @brief Uniform names shared by the batch shaders.
 */
const (
	UNIFORM_VIEW_PROJECTION string = "uViewProjection"
	UNIFORM_TEXTURES        string = "uTextures"
)

/**
 * @brief Shader stage a source section belongs to.
 */
type ShaderStage int

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	}
	return "unknown"
}

/**
 * @brief Preprocessed shader source, one entry per stage.
 */
type ShaderSource struct {
	Name    string
	Sources map[ShaderStage]string
}
