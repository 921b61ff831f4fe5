package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/displaykit/internal/platform"
)

// Output formats accepted by output.format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Color modes accepted by output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// LoggingConfig configures the process-wide slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig configures CLI rendering.
type OutputConfig struct {
	Format string `yaml:"format"`
	Color  string `yaml:"color"`
}

// Config is the effective displaykit configuration.
type Config struct {
	Backend string        `yaml:"backend"`
	Display string        `yaml:"display,omitempty"`
	Fixture string        `yaml:"fixture,omitempty"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend: string(platform.KindAuto),
		Logging: LoggingConfig{
			Level:  "warning",
			Format: "text",
		},
		Output: OutputConfig{
			Format: FormatTable,
			Color:  ColorAuto,
		},
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	kind, err := platform.ParseKind(c.Backend)
	if err != nil {
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, x11, hyprland, win32, fixture, none")}
	}
	if kind == platform.KindFixture && c.Fixture == "" {
		return &ValidationError{Path: "fixture", Err: fmt.Errorf("fixture is required when backend is fixture")}
	}
	switch c.Logging.Level {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("logging.level must be one of: debug, info, warning, error")}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ValidationError{Path: "logging.format", Err: fmt.Errorf("logging.format must be one of: text, json")}
	}
	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return &ValidationError{Path: "output.format", Err: fmt.Errorf("output.format must be one of: table, json, yaml")}
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return &ValidationError{Path: "output.color", Err: fmt.Errorf("output.color must be one of: auto, always, never")}
	}
	return nil
}

// ProbeOptions translates the backend settings for platform.New.
func (c *Config) ProbeOptions() platform.Options {
	kind, err := platform.ParseKind(c.Backend)
	if err != nil {
		kind = platform.KindAuto
	}
	return platform.Options{
		Kind:        kind,
		Display:     c.Display,
		FixturePath: c.Fixture,
	}
}

// Marshal renders the effective config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the configuration to path, creating parent directories.
//
// This marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
