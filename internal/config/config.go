// Package config loads the YAML settings file used by the jigsaw command.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/erinpentecost/LivelyJigsaw/internal/cutter"
	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"gopkg.in/yaml.v3"
)

type Camera struct {
	// OrthoSize is half the visible height in placement units.
	OrthoSize    float64 `yaml:"ortho_size"`
	ScreenWidth  int     `yaml:"screen_width"`
	ScreenHeight int     `yaml:"screen_height"`
}

type Output struct {
	Dir            string `yaml:"dir"`
	TextureFormat  string `yaml:"texture_format"`
	MaxTextureSize int    `yaml:"max_texture_size"`
}

type Config struct {
	Difficulty        int         `yaml:"difficulty"`
	Camera            Camera      `yaml:"camera"`
	ContainerScale    jigsaw.Vec2 `yaml:"container_scale"`
	VerticalCentering string      `yaml:"vertical_centering"`

	// Seed fixes the scatter. Zero picks a random seed per run.
	Seed    uint64 `yaml:"seed"`
	Threads int    `yaml:"threads"`
	Output  Output `yaml:"output"`
}

func Default() Config {
	return Config{
		Difficulty: jigsaw.DefaultDifficulty,
		Camera: Camera{
			OrthoSize:    5,
			ScreenWidth:  1920,
			ScreenHeight: 1080,
		},
		ContainerScale:    jigsaw.Vec2{X: 1, Y: 1},
		VerticalCentering: jigsaw.CenterLegacy.String(),
		Threads:           4,
		Output: Output{
			Dir:           "out",
			TextureFormat: string(cutter.PNG),
		},
	}
}

// Load reads path over the defaults and validates the result. A missing file
// is not an error.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Read is Load without validation, for callers that apply overrides first.
func Read(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, raw, 0666)
}

func (c Config) Validate() error {
	if err := jigsaw.ValidateDifficulty(c.Difficulty); err != nil {
		return err
	}
	if _, err := c.Viewport(); err != nil {
		return err
	}
	if c.ContainerScale.X <= 0 || c.ContainerScale.Y <= 0 {
		return fmt.Errorf("%w: container scale %gx%g", jigsaw.ErrInvalidDimensions, c.ContainerScale.X, c.ContainerScale.Y)
	}
	if _, err := jigsaw.ParseCentering(c.VerticalCentering); err != nil {
		return err
	}
	if _, err := cutter.ParseFormat(c.Output.TextureFormat); err != nil {
		return err
	}
	if c.Output.MaxTextureSize < 0 {
		return fmt.Errorf("max texture size %d is negative", c.Output.MaxTextureSize)
	}
	return nil
}

func (c Config) Viewport() (jigsaw.Viewport, error) {
	return jigsaw.ViewportFromCamera(c.Camera.OrthoSize, c.Camera.ScreenWidth, c.Camera.ScreenHeight)
}

// Settings converts the config into session settings.
func (c Config) Settings() (jigsaw.Settings, error) {
	if err := c.Validate(); err != nil {
		return jigsaw.Settings{}, err
	}
	viewport, _ := c.Viewport()
	centering, _ := jigsaw.ParseCentering(c.VerticalCentering)
	return jigsaw.Settings{
		Difficulty:     c.Difficulty,
		Viewport:       viewport,
		ContainerScale: c.ContainerScale,
		Centering:      centering,
	}, nil
}
