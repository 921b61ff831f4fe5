package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawLogging struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
}

type RawOutput struct {
	Format *string `yaml:"format"`
	Color  *string `yaml:"color"`
}

// RawConfig is one YAML file as written; nil fields were not set.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Backend *string     `yaml:"backend"`
	Display *string     `yaml:"display"`
	Fixture *string     `yaml:"fixture"`
	Logging *RawLogging `yaml:"logging"`
	Output  *RawOutput  `yaml:"output"`
}

// merge overlays other on top of r.
func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r
	if other.Backend != nil {
		out.Backend = other.Backend
	}
	if other.Display != nil {
		out.Display = other.Display
	}
	if other.Fixture != nil {
		out.Fixture = other.Fixture
	}
	if other.Logging != nil {
		merged := RawLogging{}
		if out.Logging != nil {
			merged = *out.Logging
		}
		if other.Logging.Level != nil {
			merged.Level = other.Logging.Level
		}
		if other.Logging.Format != nil {
			merged.Format = other.Logging.Format
		}
		out.Logging = &merged
	}
	if other.Output != nil {
		merged := RawOutput{}
		if out.Output != nil {
			merged = *out.Output
		}
		if other.Output.Format != nil {
			merged.Format = other.Output.Format
		}
		if other.Output.Color != nil {
			merged.Color = other.Output.Color
		}
		out.Output = &merged
	}
	out.Include = nil
	return out
}
