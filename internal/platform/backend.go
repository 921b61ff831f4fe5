// Package platform provides the display probes for each supported window
// system and selects one for the running host.
package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/1broseidon/displaykit/internal/display"
	"github.com/1broseidon/displaykit/internal/hyprctl"
	"github.com/1broseidon/displaykit/internal/logging"
)

// Kind names a probe backend.
type Kind string

const (
	KindAuto     Kind = "auto"
	KindX11      Kind = "x11"
	KindHyprland Kind = "hyprland"
	KindWin32    Kind = "win32"
	KindFixture  Kind = "fixture"
	KindNone     Kind = "none"
)

// Kinds lists every accepted backend name.
var Kinds = []Kind{KindAuto, KindX11, KindHyprland, KindWin32, KindFixture, KindNone}

// ErrUnsupported is returned when a backend can't run on this OS.
var ErrUnsupported = errors.New("display backend not supported on this platform")

func logger() *slog.Logger {
	return logging.L("platform")
}

// Options select and configure a probe.
type Options struct {
	Kind Kind
	// Display overrides $DISPLAY for the x11 backend.
	Display string
	// FixturePath is the YAML file read by the fixture backend.
	FixturePath string
}

// ParseKind validates a backend name. The empty string means auto.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindAuto, nil
	}
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown display backend %q", s)
}

// Resolve picks the concrete backend for auto on the running host.
func Resolve(kind Kind) Kind {
	return resolve(kind, runtime.GOOS, hyprctl.Running())
}

func resolve(kind Kind, goos string, hyprland bool) Kind {
	if kind != KindAuto && kind != "" {
		return kind
	}
	switch goos {
	case "windows":
		return KindWin32
	case "linux", "freebsd", "openbsd", "netbsd":
		if hyprland {
			return KindHyprland
		}
		return KindX11
	default:
		return KindNone
	}
}

// New returns the probe selected by opts.
func New(opts Options) (display.Probe, error) {
	switch kind := Resolve(opts.Kind); kind {
	case KindX11:
		return &X11Probe{Display: opts.Display}, nil
	case KindHyprland:
		return &HyprlandProbe{}, nil
	case KindWin32:
		return newWin32Probe()
	case KindFixture:
		if opts.FixturePath == "" {
			return nil, fmt.Errorf("fixture backend requires a fixture path")
		}
		return &FixtureProbe{Path: opts.FixturePath}, nil
	case KindNone:
		return display.EmptyProbe, nil
	default:
		return nil, fmt.Errorf("unknown display backend %q", kind)
	}
}
