package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/platform"
	"github.com/spaghettifunk/anima2d/engine/renderer"
)

type ApplicationConfig struct {
	// The application name, also the default window title.
	Name     string `toml:"name" yaml:"name"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// AssetsDir is watched for hot reload. Empty disables the asset manager.
	AssetsDir string `toml:"assets_dir" yaml:"assets_dir"`
	// Headless runs without an OS window.
	Headless bool `toml:"headless" yaml:"headless"`
	// JobWorkers is the number of goroutines decoding assets in the background.
	JobWorkers int `toml:"job_workers" yaml:"job_workers"`

	Window    platform.WindowSettings `toml:"window" yaml:"window"`
	Scheduler core.SchedulerConfig    `toml:"scheduler" yaml:"scheduler"`
	Renderer  renderer.Config         `toml:"renderer" yaml:"renderer"`
}

func DefaultConfig() ApplicationConfig {
	window := platform.DefaultWindowSettings()
	// filled from Name unless set explicitly
	window.Title = ""
	return ApplicationConfig{
		Name:       "Anima2D",
		LogLevel:   "info",
		JobWorkers: 2,
		Window:     window,
		Scheduler:  core.DefaultSchedulerConfig(),
		Renderer:   renderer.DefaultConfig(),
	}
}

// LoadConfig reads a TOML or YAML file, picked by extension, on top of
// DefaultConfig and validates the result.
func LoadConfig(path string) (ApplicationConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = fmt.Errorf("%w: unsupported config format %q", core.ErrInvalidConfig, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("loading %s: %w", path, err)
	}

	if cfg.Window.Title == "" {
		cfg.Window.Title = cfg.Name
	}
	return cfg, cfg.Validate()
}

func (c ApplicationConfig) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, fmt.Errorf("%w: name must not be empty", core.ErrInvalidConfig))
	}
	if c.Window.Width == 0 || c.Window.Height == 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", core.ErrInvalidConfig, c.Window.Width, c.Window.Height))
	}
	if c.JobWorkers < 1 {
		errs = append(errs, fmt.Errorf("%w: job_workers must be at least 1", core.ErrInvalidConfig))
	}
	if c.LogLevel != "" {
		if err := core.ValidLogLevel(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", core.ErrInvalidConfig, err))
		}
	}
	errs = append(errs, c.Scheduler.Validate(), c.Renderer.Validate())
	return errors.Join(errs...)
}
