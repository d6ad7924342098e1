package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

const typeToken = "#type"

// ParseShaderSource splits a combined shader file into its stages. Each stage
// starts with a line `#type vertex` or `#type fragment`; text before the first
// marker is ignored.
func ParseShaderSource(name, source string) (metadata.ShaderSource, error) {
	out := metadata.ShaderSource{
		Name:    name,
		Sources: make(map[metadata.ShaderStage]string),
	}

	var (
		current metadata.ShaderStage
		body    strings.Builder
		inStage bool
		lineNo  int
	)
	commit := func() {
		if inStage {
			out.Sources[current] = body.String()
		}
		body.Reset()
	}

	sc := bufio.NewScanner(strings.NewReader(source))
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, typeToken) {
			if inStage {
				body.WriteString(line)
				body.WriteByte('\n')
			}
			continue
		}

		commit()
		stage, err := parseStage(strings.TrimSpace(strings.TrimPrefix(trimmed, typeToken)))
		if err != nil {
			return metadata.ShaderSource{}, fmt.Errorf("shader %q line %d: %w", name, lineNo, err)
		}
		if _, dup := out.Sources[stage]; dup {
			return metadata.ShaderSource{}, fmt.Errorf("shader %q line %d: duplicate %s stage", name, lineNo, stage)
		}
		current = stage
		inStage = true
	}
	if err := sc.Err(); err != nil {
		return metadata.ShaderSource{}, err
	}
	commit()

	for _, stage := range []metadata.ShaderStage{metadata.ShaderStageVertex, metadata.ShaderStageFragment} {
		if _, ok := out.Sources[stage]; !ok {
			return metadata.ShaderSource{}, fmt.Errorf("shader %q: missing %s stage", name, stage)
		}
	}
	return out, nil
}

func parseStage(s string) (metadata.ShaderStage, error) {
	switch s {
	case "vertex":
		return metadata.ShaderStageVertex, nil
	case "fragment", "pixel":
		return metadata.ShaderStageFragment, nil
	}
	return 0, fmt.Errorf("unknown shader type %q", s)
}

type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	src, err := ParseShaderSource(name, string(data))
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     name,
		FullPath: path,
		Type:     metadata.ResourceTypeShader,
		DataSize: uint64(len(data)),
		Data:     src,
	}, nil
}

func (sl *ShaderLoader) Unload(*metadata.Resource) error {
	return nil
}
