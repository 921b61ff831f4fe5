package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/displaykit/internal/platform"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Backend != "auto" || cfg.Output.Format != FormatTable || cfg.Output.Color != ColorAuto {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != "auto" {
		t.Fatalf("expected backend auto, got %q", res.Config.Backend)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files loaded, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Logging.Level != "warning" {
		t.Fatalf("expected default logging level, got %q", res.Config.Logging.Level)
	}
}

func TestLoadFromPath_AllKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"backend: fixture",
		"display: \":1\"",
		"fixture: screens.yaml",
		"logging:",
		"  level: debug",
		"  format: json",
		"output:",
		"  format: yaml",
		"  color: never",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Backend != "fixture" || cfg.Display != ":1" {
		t.Fatalf("unexpected backend settings: %+v", cfg)
	}
	if filepath.Base(cfg.Fixture) != "screens.yaml" || !filepath.IsAbs(cfg.Fixture) {
		t.Fatalf("expected fixture resolved next to config, got %q", cfg.Fixture)
	}
	if cfg.Logging != (LoggingConfig{Level: "debug", Format: "json"}) {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
	if cfg.Output != (OutputConfig{Format: FormatYAML, Color: ColorNever}) {
		t.Fatalf("unexpected output: %+v", cfg.Output)
	}

	opts := cfg.ProbeOptions()
	if opts.Kind != platform.KindFixture || opts.Display != ":1" || opts.FixturePath != cfg.Fixture {
		t.Fatalf("unexpected probe options: %+v", opts)
	}
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "hotkey: super+t\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected strict decoding to reject unknown key")
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "output:\n  format: xml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("expected error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Path != "output.format" {
		t.Fatalf("expected path output.format, got %q", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("expected line 2, got %d", verr.Source.Line)
	}
	if !strings.Contains(err.Error(), "config.yaml:2:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		path    string
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad backend", mutate: func(c *Config) { c.Backend = "wayland" }, path: "backend", wantErr: true},
		{name: "fixture without path", mutate: func(c *Config) { c.Backend = "fixture" }, path: "fixture", wantErr: true},
		{name: "fixture with path", mutate: func(c *Config) { c.Backend = "fixture"; c.Fixture = "/tmp/s.yaml" }},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "trace" }, path: "logging.level", wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, path: "logging.format", wantErr: true},
		{name: "bad output format", mutate: func(c *Config) { c.Output.Format = "csv" }, path: "output.format", wantErr: true},
		{name: "bad color", mutate: func(c *Config) { c.Output.Color = "sometimes" }, path: "output.color", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(configD, "10-base.yaml"), "backend: x11\noutput:\n  color: always\n")
	writeFile(t, filepath.Join(configD, "20-override.yaml"), "backend: hyprland\n")

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include:\n  - config.d\noutput:\n  format: json\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != "hyprland" {
		t.Fatalf("expected later include to win, got %q", res.Config.Backend)
	}
	if res.Config.Output.Color != ColorAlways || res.Config.Output.Format != FormatJSON {
		t.Fatalf("expected nested keys merged, got %+v", res.Config.Output)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files loaded, got %v", res.Files)
	}

	_, src, err := Explain(res, "backend")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if filepath.Base(src.File) != "20-override.yaml" {
		t.Fatalf("expected backend from 20-override.yaml, got %+v", src)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, b, "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestExplain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "display: \":2\"\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "display")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != ":2" || src.Kind != SourceFile || src.Line != 1 {
		t.Fatalf("unexpected explain result: %v %+v", val, src)
	}

	val, src, err = Explain(res, "output.color")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != ColorAuto || src.Kind != SourceDefault {
		t.Fatalf("expected default color, got %v %+v", val, src)
	}

	if _, _, err := Explain(res, "hotkey"); err == nil {
		t.Fatal("expected unknown path error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Backend = "none"
	cfg.Output.Format = FormatJSON

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != "none" || res.Config.Output.Format != FormatJSON {
		t.Fatalf("unexpected config after reload: %+v", res.Config)
	}
}
