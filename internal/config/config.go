package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cs2bedrock/internal/format"

	"gopkg.in/yaml.v3"
)

// Config holds the batch paths, output settings and preview camera.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir" yaml:"input_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	AtlasDir  string `json:"atlas_dir" yaml:"atlas_dir"`

	// Conversion
	FormatVersion string `json:"format_version" yaml:"format_version"`
	TextureWidth  int    `json:"texture_width" yaml:"texture_width"`
	TextureHeight int    `json:"texture_height" yaml:"texture_height"`
	Force         bool   `json:"force" yaml:"force"`
	Workers       int    `json:"workers" yaml:"workers"`

	// Preview settings
	Preview       bool     `json:"preview" yaml:"preview"`
	PreviewFormat string   `json:"preview_format" yaml:"preview_format"`
	PreviewSize   int      `json:"preview_size" yaml:"preview_size"`
	Supersample   int      `json:"supersample" yaml:"supersample"`
	Yaw           *float64 `json:"yaw" yaml:"yaw"`
	Pitch         *float64 `json:"pitch" yaml:"pitch"`

	// Logging
	LogLevel string `json:"log_level" yaml:"log_level"`
	LogJSON  bool   `json:"log_json" yaml:"log_json"`
}

var ErrInvalid = errors.New("invalid config")

const (
	DefaultPreviewSize = 256
	DefaultYaw         = 35.0
	DefaultPitch       = 20.0
)

// Load reads a YAML (.yaml, .yml) or JSON config file.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Preview {
		c.Preview = true
	}
	if flags.PreviewFormat != "" {
		c.PreviewFormat = flags.PreviewFormat
	}
	if flags.Force {
		c.Force = true
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.InputDir == "" {
		c.InputDir = "."
	}

	// Relative output and atlas dirs live under the input dir
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "bedrock")
	} else if flags.OutputDir == "" && !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.InputDir, c.OutputDir)
	}
	if c.AtlasDir == "" {
		c.AtlasDir = c.InputDir
	} else if !filepath.IsAbs(c.AtlasDir) {
		c.AtlasDir = filepath.Join(c.InputDir, c.AtlasDir)
	}

	if c.FormatVersion == "" {
		c.FormatVersion = format.DefaultFormatVersion
	}
	if c.PreviewFormat == "" {
		c.PreviewFormat = "webp"
	}
	c.PreviewFormat = strings.ToLower(strings.TrimPrefix(c.PreviewFormat, "."))
	if c.PreviewSize <= 0 {
		c.PreviewSize = DefaultPreviewSize
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Yaw == nil {
		yaw := DefaultYaw
		c.Yaw = &yaw
	}
	if c.Pitch == nil {
		pitch := DefaultPitch
		c.Pitch = &pitch
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate reports settings that Resolve cannot repair.
func (c *Config) Validate() error {
	switch c.PreviewFormat {
	case "webp", "png", "tga":
	default:
		return fmt.Errorf("config: preview_format %q: %w", c.PreviewFormat, ErrInvalid)
	}
	if c.TextureWidth < 0 || c.TextureHeight < 0 {
		return fmt.Errorf("config: negative texture size: %w", ErrInvalid)
	}
	if c.Supersample > 8 {
		return fmt.Errorf("config: supersample %d above 8: %w", c.Supersample, ErrInvalid)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir      string
	OutputDir     string
	Workers       int
	Preview       bool
	PreviewFormat string
	Force         bool
	LogLevel      string
}
