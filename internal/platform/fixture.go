package platform

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/displaykit/internal/display"
	"github.com/1broseidon/displaykit/internal/logging"
)

// FixtureProbe reads a static screen layout from a YAML file. It stands in
// for a real window system in tests and on headless hosts.
type FixtureProbe struct {
	Path string
}

var _ display.Probe = (*FixtureProbe)(nil)

type fixtureFile struct {
	Screens []fixtureScreen `yaml:"screens"`
}

type fixtureScreen struct {
	Device      string       `yaml:"device"`
	Name        string       `yaml:"name"`
	Bounds      fixtureRect  `yaml:"bounds"`
	WorkingArea *fixtureRect `yaml:"working_area"`
	RefreshRate uint         `yaml:"refresh_rate"`
	DPI         uint         `yaml:"dpi"`
	Primary     bool         `yaml:"primary"`
	Modes       []string     `yaml:"modes"`
	DesktopMode string       `yaml:"desktop_mode"`
}

type fixtureRect struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (r fixtureRect) rect() display.Rect {
	return display.Rect{Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height}
}

// Enumerate loads and decodes the fixture on every call. A screen entry that
// doesn't decode is logged and skipped, like an unreadable device on a real
// backend.
func (p *FixtureProbe) Enumerate() ([]display.RawScreen, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	f, err := decodeFixture(data)
	if err != nil {
		return nil, err
	}

	screens := make([]display.RawScreen, 0, len(f.Screens))
	for i, s := range f.Screens {
		raw, err := s.raw()
		if err != nil {
			logger().Warn("invalid fixture screen, skipping",
				"entry", i, logging.KeyDevice, s.Device, logging.KeyError, err)
			continue
		}
		screens = append(screens, raw)
	}
	return screens, nil
}

// ParseFixture decodes a YAML screen layout. Unlike Enumerate it fails on
// the first invalid screen.
//
//	screens:
//	  - device: DP-1
//	    bounds: {left: 0, top: 0, width: 1920, height: 1080}
//	    primary: true
//	    modes: [1920x1080x32, 1280x720]
//	    desktop_mode: 1920x1080x32
func ParseFixture(data []byte) ([]display.RawScreen, error) {
	f, err := decodeFixture(data)
	if err != nil {
		return nil, err
	}

	screens := make([]display.RawScreen, 0, len(f.Screens))
	for i, s := range f.Screens {
		raw, err := s.raw()
		if err != nil {
			return nil, fmt.Errorf("fixture screen %d: %w", i, err)
		}
		screens = append(screens, raw)
	}
	return screens, nil
}

func decodeFixture(data []byte) (fixtureFile, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fixtureFile{}, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return f, nil
}

func (s fixtureScreen) raw() (display.RawScreen, error) {
	if s.Device == "" {
		return display.RawScreen{}, fmt.Errorf("device is required")
	}

	modes := make([]display.VideoMode, 0, len(s.Modes))
	for _, str := range s.Modes {
		m, err := display.ParseVideoMode(str)
		if err != nil {
			return display.RawScreen{}, err
		}
		modes = append(modes, m)
	}

	var desktop display.VideoMode
	switch {
	case s.DesktopMode != "":
		m, err := display.ParseVideoMode(s.DesktopMode)
		if err != nil {
			return display.RawScreen{}, fmt.Errorf("desktop_mode: %w", err)
		}
		desktop = m
	case s.Bounds.Width > 0 && s.Bounds.Height > 0:
		desktop = display.NewVideoMode(uint(s.Bounds.Width), uint(s.Bounds.Height))
	}

	work := s.Bounds.rect()
	if s.WorkingArea != nil {
		work = s.WorkingArea.rect()
	}

	name := s.Name
	if name == "" {
		name = s.Device
	}

	dpi := s.DPI
	if dpi == 0 {
		dpi = 96
	}

	return display.RawScreen{
		Device:      s.Device,
		Name:        name,
		Bounds:      s.Bounds.rect(),
		WorkingArea: work,
		RefreshRate: s.RefreshRate,
		DPI:         display.Vec2{X: dpi, Y: dpi},
		Primary:     s.Primary,
		Modes:       modes,
		DesktopMode: desktop,
	}, nil
}
