package x11

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Rect is a rectangle in root window coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Mode is one RandR mode line reduced to what a display catalog needs.
type Mode struct {
	Width       uint
	Height      uint
	RefreshRate uint
}

// Monitor represents a physical display driven by one CRTC
type Monitor struct {
	ID       int
	Name     string
	Bounds   Rect
	MmWidth  uint
	MmHeight uint
	Primary  bool
	Current  Mode
	Modes    []Mode
}

// GetMonitors retrieves all active, non-mirrored monitors using XRandR.
// A CRTC whose output can't be queried is skipped.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResourcesCurrent(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	modeInfo := make(map[uint32]randr.ModeInfo, len(resources.Modes))
	for _, mi := range resources.Modes {
		modeInfo[mi.Id] = mi
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(conn, c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	seen := make(map[Rect]string)

	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			slog.Warn("failed to query crtc, skipping", "crtc", crtc, "error", err)
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		bounds := Rect{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		if owner, ok := seen[bounds]; ok {
			slog.Debug("crtc mirrors another monitor, skipping", "crtc", crtc, "mirror_of", owner)
			continue
		}

		output := crtcInfo.Outputs[0]
		for _, o := range crtcInfo.Outputs {
			if o == primary {
				output = o
				break
			}
		}

		outputInfo, err := randr.GetOutputInfo(conn, output, resources.ConfigTimestamp).Reply()
		if err != nil {
			slog.Warn("failed to query output, skipping", "output", output, "error", err)
			continue
		}
		if outputInfo.Connection != randr.ConnectionConnected {
			continue
		}

		name := string(outputInfo.Name)
		if name == "" {
			name = fmt.Sprintf("Monitor%d", i)
		}

		modes := make([]Mode, 0, len(outputInfo.Modes))
		for _, id := range outputInfo.Modes {
			if mi, ok := modeInfo[uint32(id)]; ok {
				modes = append(modes, modeFromInfo(mi))
			}
		}

		current := Mode{Width: uint(crtcInfo.Width), Height: uint(crtcInfo.Height)}
		if mi, ok := modeInfo[uint32(crtcInfo.Mode)]; ok {
			current = modeFromInfo(mi)
		}

		seen[bounds] = name
		monitors = append(monitors, Monitor{
			ID:       i,
			Name:     name,
			Bounds:   bounds,
			MmWidth:  uint(outputInfo.MmWidth),
			MmHeight: uint(outputInfo.MmHeight),
			Primary:  primary != 0 && containsOutput(crtcInfo.Outputs, primary),
			Current:  current,
			Modes:    modes,
		})
	}

	return monitors, nil
}

func containsOutput(outputs []randr.Output, target randr.Output) bool {
	for _, o := range outputs {
		if o == target {
			return true
		}
	}
	return false
}

func modeFromInfo(mi randr.ModeInfo) Mode {
	return Mode{
		Width:       uint(mi.Width),
		Height:      uint(mi.Height),
		RefreshRate: refreshRate(mi.DotClock, mi.Htotal, mi.Vtotal),
	}
}

// refreshRate derives the vertical refresh in Hz from a mode line.
func refreshRate(dotClock uint32, htotal, vtotal uint16) uint {
	if htotal == 0 || vtotal == 0 {
		return 0
	}
	return uint(math.Round(float64(dotClock) / (float64(htotal) * float64(vtotal))))
}

// DPI returns the dots per inch of a monitor from its physical size, or 96
// when the output reports no size.
func DPI(pixels int, millimeters uint) uint {
	if pixels <= 0 || millimeters == 0 {
		return 96
	}
	return uint(math.Round(float64(pixels) * 25.4 / float64(millimeters)))
}

// WorkArea returns the part of a monitor not covered by docks and panels.
// Dock struts are preferred; _NET_WORKAREA is the fallback.
func (c *Connection) WorkArea(m Monitor) Rect {
	area := m.Bounds
	if applied := applyDockStruts(c, &area); applied {
		return area
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return area
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}

	wa := workArea[desktopIndex]
	clipped := intersect(area, Rect{X: int(wa.X), Y: int(wa.Y), Width: int(wa.Width), Height: int(wa.Height)})
	if clipped.Width > 0 && clipped.Height > 0 {
		return clipped
	}
	return area
}

func intersect(a, b Rect) Rect {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

func applyDockStruts(c *Connection, area *Rect) bool {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return false
	}
	rootWidth := int(rootGeom.Width)
	rootHeight := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return false
	}

	var struts dockStruts
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}

		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			updateStruts(*area, rootWidth, rootHeight, sp, &struts)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			updateStruts(*area, rootWidth, rootHeight, fullStrut(s, rootWidth, rootHeight), &struts)
		}
	}

	return struts.apply(area)
}

func fullStrut(s *ewmh.WmStrut, rootWidth, rootHeight int) *ewmh.WmStrutPartial {
	return &ewmh.WmStrutPartial{
		Left:         s.Left,
		Right:        s.Right,
		Top:          s.Top,
		Bottom:       s.Bottom,
		LeftStartY:   0,
		LeftEndY:     uint(rootHeight - 1),
		RightStartY:  0,
		RightEndY:    uint(rootHeight - 1),
		TopStartX:    0,
		TopEndX:      uint(rootWidth - 1),
		BottomStartX: 0,
		BottomEndX:   uint(rootWidth - 1),
	}
}

func (s dockStruts) apply(area *Rect) bool {
	if s.left == 0 && s.right == 0 && s.top == 0 && s.bottom == 0 {
		return false
	}

	area.X += s.left
	area.Y += s.top
	area.Width -= s.left + s.right
	area.Height -= s.top + s.bottom

	if area.Width < 1 {
		area.Width = 1
	}
	if area.Height < 1 {
		area.Height = 1
	}
	return true
}

func updateStruts(area Rect, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		band := Rect{X: int(sp.TopStartX), Y: 0, Width: int(sp.TopEndX) + 1 - int(sp.TopStartX), Height: int(sp.Top)}
		acc.top = max(acc.top, intersect(area, band).Height)
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		band := Rect{X: int(sp.BottomStartX), Y: rootHeight - int(sp.Bottom), Width: int(sp.BottomEndX) + 1 - int(sp.BottomStartX), Height: int(sp.Bottom)}
		acc.bottom = max(acc.bottom, intersect(area, band).Height)
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		band := Rect{X: 0, Y: int(sp.LeftStartY), Width: int(sp.Left), Height: int(sp.LeftEndY) + 1 - int(sp.LeftStartY)}
		acc.left = max(acc.left, intersect(area, band).Width)
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		band := Rect{X: rootWidth - int(sp.Right), Y: int(sp.RightStartY), Width: int(sp.Right), Height: int(sp.RightEndY) + 1 - int(sp.RightStartY)}
		acc.right = max(acc.right, intersect(area, band).Width)
	}
}
