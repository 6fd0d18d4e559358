// Package config loads imglab settings from TOML
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/core"
	"image-processing-engine/internal/io"
)

// Step is one configured pipeline stage
type Step struct {
	Name      string                 `toml:"name"`
	Operation string                 `toml:"operation"`
	Enabled   *bool                  `toml:"enabled"`
	Opacity   *float64               `toml:"opacity"`
	Params    map[string]interface{} `toml:"params"`
}

// IsEnabled reports whether the step runs; steps are enabled unless set otherwise
func (s Step) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// OpacityOrDefault returns the configured opacity, or 1
func (s Step) OpacityOrDefault() float64 {
	if s.Opacity == nil {
		return 1
	}
	return *s.Opacity
}

// Config holds application settings
type Config struct {
	LogLevel string            `toml:"log_level"`
	Debug    bool              `toml:"debug"`
	Workers  int               `toml:"workers"`
	Decoder  string            `toml:"decoder"`
	Params   algorithms.Params `toml:"params"`
	Steps    []Step            `toml:"steps"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Decoder:  string(io.DecoderNative),
		Params:   algorithms.DefaultParams(),
	}
}

// Load decodes path over the defaults and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown config key %s", core.ErrInvalidParameter, undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks settings without touching any image
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidParameter, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", core.ErrInvalidParameter, c.Workers)
	}
	if _, err := io.ParseDecoder(c.Decoder); err != nil {
		return err
	}
	for i, step := range c.Steps {
		if _, err := c.StepParams(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Operation, err)
		}
		if op := step.OpacityOrDefault(); op < 0 || op > 1 {
			return fmt.Errorf("step %d (%s): %w: opacity must be in [0, 1], got %g",
				i+1, step.Operation, core.ErrInvalidParameter, op)
		}
	}
	return nil
}

// StepParams overlays a step's params on the global ones and validates them
// against the step's operation
func (c *Config) StepParams(step Step) (algorithms.Params, error) {
	p, err := algorithms.ParamsFromMap(c.Params, step.Params)
	if err != nil {
		return p, err
	}
	return p, algorithms.ValidateParameters(step.Operation, p)
}
