package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	backend
//	display
//	fixture
//	logging.level
//	logging.format
//	output.format
//	output.color
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch strings.TrimSpace(path) {
	case "backend":
		return cfg.Backend, nil
	case "display":
		return cfg.Display, nil
	case "fixture":
		return cfg.Fixture, nil
	case "logging":
		return cfg.Logging, nil
	case "logging.level":
		return cfg.Logging.Level, nil
	case "logging.format":
		return cfg.Logging.Format, nil
	case "output":
		return cfg.Output, nil
	case "output.format":
		return cfg.Output.Format, nil
	case "output.color":
		return cfg.Output.Color, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
