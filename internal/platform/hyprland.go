package platform

import (
	"github.com/1broseidon/displaykit/internal/display"
	"github.com/1broseidon/displaykit/internal/hyprctl"
	"github.com/1broseidon/displaykit/internal/logging"
)

// HyprlandProbe enumerates monitors of a running Hyprland compositor via
// hyprctl.
type HyprlandProbe struct {
	// Client overrides the hyprctl client; nil looks hyprctl up in PATH.
	Client *hyprctl.Client
}

var _ display.Probe = (*HyprlandProbe)(nil)

// Enumerate returns enabled, non-mirrored monitors.
func (p *HyprlandProbe) Enumerate() ([]display.RawScreen, error) {
	client := p.Client
	if client == nil {
		c, err := hyprctl.NewClient()
		if err != nil {
			return nil, err
		}
		client = c
	}

	monitors, err := client.ListMonitors()
	if err != nil {
		return nil, err
	}
	return rawScreensFromHyprland(monitors), nil
}

func rawScreensFromHyprland(monitors []hyprctl.Monitor) []display.RawScreen {
	primaryID := int64(-1)
	for _, m := range monitors {
		if m.Disabled || m.Mirrored() {
			continue
		}
		if primaryID < 0 || m.ID < primaryID {
			primaryID = m.ID
		}
	}

	screens := make([]display.RawScreen, 0, len(monitors))
	for _, m := range monitors {
		if m.Disabled {
			continue
		}
		if m.Mirrored() {
			logger().Debug("monitor mirrors another output, skipping", logging.KeyDevice, m.Name, "mirror_of", m.MirrorOf)
			continue
		}
		screens = append(screens, rawScreenFromHyprland(m, m.ID == primaryID))
	}
	return screens
}

func rawScreenFromHyprland(m hyprctl.Monitor, primary bool) display.RawScreen {
	depth := hyprctl.FormatDepth(m.CurrentFormat)

	modes := make([]display.VideoMode, 0, len(m.AvailableModes))
	for _, s := range m.AvailableModes {
		mode, err := hyprctl.ParseMode(s)
		if err != nil {
			logger().Warn("ignoring unparseable monitor mode", logging.KeyDevice, m.Name, "mode", s, logging.KeyError, err)
			continue
		}
		modes = append(modes, display.VideoMode{Width: mode.Width, Height: mode.Height, BitsPerPixel: depth})
	}

	// Hyprland positions monitors in logical pixels; width and height
	// are in mode pixels.
	bounds := display.Rect{Left: int(m.X), Top: int(m.Y), Width: int(m.Width), Height: int(m.Height)}
	if m.Scale > 0 {
		bounds.Width = int(float64(m.Width)/m.Scale + 0.5)
		bounds.Height = int(float64(m.Height)/m.Scale + 0.5)
	}
	work := bounds
	// reserved is [left, top, right, bottom]
	if len(m.Reserved) == 4 {
		work.Left += int(m.Reserved[0])
		work.Top += int(m.Reserved[1])
		work.Width -= int(m.Reserved[0] + m.Reserved[2])
		work.Height -= int(m.Reserved[1] + m.Reserved[3])
		if work.Empty() {
			work = bounds
		}
	}

	name := m.Description
	if name == "" {
		name = m.Name
	}

	dpi := uint(96)
	if m.Scale > 0 {
		dpi = uint(96*m.Scale + 0.5)
	}

	return display.RawScreen{
		Device:      m.Name,
		Name:        name,
		Bounds:      bounds,
		WorkingArea: work,
		RefreshRate: uint(m.RefreshRate + 0.5),
		DPI:         display.Vec2{X: dpi, Y: dpi},
		Primary:     primary,
		Modes:       modes,
		DesktopMode: display.VideoMode{Width: uint(m.Width), Height: uint(m.Height), BitsPerPixel: depth},
	}
}
