package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

// ConfigLoader reads TOML or YAML files. With a non-nil params pointer the
// document is decoded into it; otherwise Data holds a generic map.
type ConfigLoader struct{}

// Unmarshal decodes data by the format implied by the file extension.
func Unmarshal(path string, data []byte, out interface{}) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, out)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	}
	return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
}

func (cl *ConfigLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var out interface{} = params
	if params == nil {
		out = &map[string]interface{}{}
	}
	if err := Unmarshal(path, data, out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &metadata.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     metadata.ResourceTypeConfig,
		DataSize: uint64(len(data)),
		Data:     out,
	}, nil
}

func (cl *ConfigLoader) Unload(*metadata.Resource) error {
	return nil
}
