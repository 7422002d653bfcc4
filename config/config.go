// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Capture   CaptureConfig   `yaml:"capture"`
	Tracking  TrackingConfig  `yaml:"tracking"`
	Effects   EffectsConfig   `yaml:"effects"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CaptureConfig holds video acquisition settings. Width and height apply to
// non-default capture devices only.
type CaptureConfig struct {
	Device int `yaml:"device"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TrackingConfig holds mask, contour and point-set extraction parameters.
type TrackingConfig struct {
	BrightnessThreshold  int     `yaml:"brightness_threshold"`  // pixels darker than this are foreground
	PixelSize            int     `yaml:"pixel_size"`            // particle square size and sampling cell
	PixelSpacing         int     `yaml:"pixel_spacing"`         // gap between sampled cells
	Exhaustive           bool    `yaml:"exhaustive"`            // enumerate every foreground pixel
	InterferenceDistance float64 `yaml:"interference_distance"` // contour distance that triggers effects
}

// EffectsConfig holds particle effect parameters.
type EffectsConfig struct {
	PushRadius float64 `yaml:"push_radius"` // influence radius of the push effect
	Fade       bool    `yaml:"fade"`        // fade particle colors while animating
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindowCycles int `yaml:"stats_window_cycles"`
	PerfWindowCycles  int `yaml:"perf_window_cycles"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Stride       int     // PixelSize + PixelSpacing, or 1 when exhaustive
	PushRadiusSq float64 // PushRadius squared
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Tracking.PixelSize < 1 {
		c.Tracking.PixelSize = 1
	}
	if c.Tracking.Exhaustive {
		c.Derived.Stride = 1
	} else {
		c.Derived.Stride = c.Tracking.PixelSize + c.Tracking.PixelSpacing
	}
	c.Derived.PushRadiusSq = c.Effects.PushRadius * c.Effects.PushRadius
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
