// Package config holds the keypad solver runtime configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/go-ricrob/keypadsolver/internal/packed"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultDepth is the number of robot-operated directional keypads of the classic door.
const DefaultDepth = 2

// ErrInvalid is returned for configuration values out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config is the solver configuration.
type Config struct {
	// Depth is the number of robot-operated directional keypads between the human and the door.
	Depth int `yaml:"depth"`
	// Workers is the number of codes evaluated in parallel. 0 means one per CPU.
	Workers int `yaml:"workers"`
	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Depth:    DefaultDepth,
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
	}
}

// Load reads a YAML configuration file over the defaults. Unknown fields are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Depth < 0 || c.Depth > packed.MaxDepth {
		return fmt.Errorf("%w: depth %d not in [0, %d]", ErrInvalid, c.Depth, packed.MaxDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", ErrInvalid, c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return level, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return level, nil
}
