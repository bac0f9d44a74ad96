// Package config handles procmesh configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/procmesh/internal/animation"
	"github.com/Faultbox/procmesh/internal/engine/lighting"
	"github.com/Faultbox/procmesh/pkg/procgen"
)

// Config holds all procmesh settings.
type Config struct {
	// Generator names the mesh to build, see procgen.Names.
	Generator string `yaml:"generator"`
	// Seed, when non-zero, overrides the seed of every randomized generator.
	Seed      uint64           `yaml:"seed"`
	Params    procgen.Params   `yaml:"params"`
	Animation animation.Config `yaml:"animation"`
	Viewer    ViewerConfig     `yaml:"viewer"`
	Export    ExportConfig     `yaml:"export"`
	Logging   LoggingConfig    `yaml:"logging"`

	// Source is the file the config was loaded from, if any.
	Source string `yaml:"-"`
}

// ViewerConfig holds display and rendering settings.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	ShowFPS    bool `yaml:"show_fps"`
	Wireframe  bool `yaml:"wireframe"`
	// Spacing is the gap between instances in multiples of the mesh footprint.
	Spacing float32 `yaml:"spacing"`
	// WatchConfig regenerates the mesh when the config file changes.
	WatchConfig      bool         `yaml:"watch_config"`
	ScreenshotDir    string       `yaml:"screenshot_dir"`
	ScreenshotFormat string       `yaml:"screenshot_format"` // png or bmp
	Sun              lighting.Sun `yaml:"sun"`
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // obj or stl
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generator: "cylinder",
		Params:    procgen.DefaultParams(),
		Animation: animation.DefaultConfig(),
		Viewer: ViewerConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			FPSLimit:         0,
			Spacing:          1.5,
			WatchConfig:      true,
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
			Sun:              lighting.DefaultSun(),
		},
		Export: ExportConfig{
			Dir:    ".",
			Format: "obj",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// GeneratorParams returns the generator parameters with the global seed
// applied.
func (c *Config) GeneratorParams() procgen.Params {
	p := c.Params
	if c.Seed != 0 {
		p.SetSeed(c.Seed)
	}
	return p
}

// Validate checks the settings that cannot be fixed up silently.
func (c *Config) Validate() error {
	if _, err := procgen.Lookup(c.Generator, c.Params); err != nil {
		return err
	}
	if err := c.Animation.Validate(); err != nil {
		return err
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	switch c.Export.Format {
	case "obj", "stl":
	default:
		return fmt.Errorf("unknown export format %q", c.Export.Format)
	}
	return nil
}
