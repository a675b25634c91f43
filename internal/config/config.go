package config

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quenby/slidecast/internal/script"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// Core settings
	OutputDir   string `yaml:"output_dir"`
	Concurrency int    `yaml:"concurrency"`

	// FFmpeg settings
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`

	// Render defaults applied when a request or script leaves a field unset
	Render RenderConfig `yaml:"render"`
}

type FFmpegConfig struct {
	Threads int    `yaml:"threads"`
	Preset  string `yaml:"preset"`
	CRF     int    `yaml:"crf"`
}

type RenderConfig struct {
	FPS                int     `yaml:"fps"`
	DurationPerImage   float64 `yaml:"duration_per_image"`
	TransitionDuration float64 `yaml:"transition_duration"`
	Animation          string  `yaml:"animation"`
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultParameters maps the configured render defaults onto a parameter set.
// Unset fields fall back to the built-in defaults via clamping.
func (c *Config) DefaultParameters() script.Parameters {
	p := script.Parameters{
		FPS:                c.Render.FPS,
		DurationPerImage:   c.Render.DurationPerImage,
		TransitionDuration: c.Render.TransitionDuration,
		Animation:          script.Animation(c.Render.Animation),
		TargetWidth:        c.Render.Width,
		TargetHeight:       c.Render.Height,
	}
	return script.Clamp(p, script.Defaults())
}

func defaultConfig() *Config {
	return &Config{
		OutputDir:   "./output",
		Concurrency: 0,
		FFmpeg: FFmpegConfig{
			Threads: 0,
			Preset:  "medium",
			CRF:     23,
		},
		Render: RenderConfig{
			FPS:                24,
			DurationPerImage:   3.0,
			TransitionDuration: 0.5,
			Animation:          "fade",
			Width:              720,
			Height:             1280,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.yml",
		filepath.Join(os.Getenv("HOME"), ".slidecast", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
