package platform

import (
	"fmt"

	"github.com/1broseidon/displaykit/internal/display"
	"github.com/1broseidon/displaykit/internal/x11"
)

// X11Probe enumerates monitors through XRandR. A fresh connection is opened
// per enumeration and closed before returning.
type X11Probe struct {
	// Display overrides $DISPLAY; empty falls back to session detection.
	Display string
}

var _ display.Probe = (*X11Probe)(nil)

// Enumerate returns one raw screen per active, non-mirrored CRTC.
func (p *X11Probe) Enumerate() ([]display.RawScreen, error) {
	env, err := resolveX11Env(p.Display)
	if err != nil {
		return nil, err
	}
	env.apply()

	conn, err := x11.NewConnection(env.Display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	defer conn.Close()

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	depths := conn.Depths()
	rootDepth := conn.RootDepth()

	screens := make([]display.RawScreen, 0, len(monitors))
	for _, m := range monitors {
		screens = append(screens, rawScreenFromMonitor(m, conn.WorkArea(m), depths, rootDepth))
	}
	return screens, nil
}

func rawScreenFromMonitor(m x11.Monitor, workArea x11.Rect, depths []uint, rootDepth uint) display.RawScreen {
	modes := make([]display.VideoMode, 0, len(m.Modes)*len(depths))
	for _, mode := range m.Modes {
		for _, depth := range depths {
			modes = append(modes, display.VideoMode{
				Width:        mode.Width,
				Height:       mode.Height,
				BitsPerPixel: depth,
			})
		}
	}

	return display.RawScreen{
		Device:      m.Name,
		Name:        m.Name,
		Bounds:      rectFromX11(m.Bounds),
		WorkingArea: rectFromX11(workArea),
		RefreshRate: m.Current.RefreshRate,
		DPI: display.Vec2{
			X: x11.DPI(m.Bounds.Width, m.MmWidth),
			Y: x11.DPI(m.Bounds.Height, m.MmHeight),
		},
		Primary: m.Primary,
		Modes:   modes,
		DesktopMode: display.VideoMode{
			Width:        m.Current.Width,
			Height:       m.Current.Height,
			BitsPerPixel: rootDepth,
		},
	}
}

func rectFromX11(r x11.Rect) display.Rect {
	return display.Rect{Left: r.X, Top: r.Y, Width: r.Width, Height: r.Height}
}
