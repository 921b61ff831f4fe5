package config

import (
	"fmt"
	"path/filepath"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw on top of the defaults. A relative
// fixture path is resolved against baseFile's directory when baseFile is set.
func BuildEffectiveConfig(raw RawConfig, baseFile string) *Config {
	cfg := DefaultConfig()

	if raw.Backend != nil {
		cfg.Backend = *raw.Backend
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.Fixture != nil {
		cfg.Fixture = *raw.Fixture
		if cfg.Fixture != "" && baseFile != "" {
			if p, err := resolvePathRelativeToFile(baseFile, cfg.Fixture); err == nil {
				cfg.Fixture = filepath.Clean(p)
			}
		}
	}
	if raw.Logging != nil {
		if raw.Logging.Level != nil {
			cfg.Logging.Level = *raw.Logging.Level
		}
		if raw.Logging.Format != nil {
			cfg.Logging.Format = *raw.Logging.Format
		}
	}
	if raw.Output != nil {
		if raw.Output.Format != nil {
			cfg.Output.Format = *raw.Output.Format
		}
		if raw.Output.Color != nil {
			cfg.Output.Color = *raw.Output.Color
		}
	}

	return cfg
}
