package display

import "slices"

// Rect describes a rectangle in virtual screen coordinates.
type Rect struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func (r Rect) Right() int  { return r.Left + r.Width }
func (r Rect) Bottom() int { return r.Top + r.Height }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether inner lies entirely within r.
func (r Rect) Contains(inner Rect) bool {
	return inner.Left >= r.Left && inner.Top >= r.Top &&
		inner.Right() <= r.Right() && inner.Bottom() <= r.Bottom()
}

// Intersect returns the overlap of r and other, or the zero Rect when they
// don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.Left, other.Left)
	y1 := max(r.Top, other.Top)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{Left: x1, Top: y1, Width: x2 - x1, Height: y2 - y1}
}

// Vec2 is an unsigned 2-D vector.
type Vec2 struct {
	X uint `json:"x" yaml:"x"`
	Y uint `json:"y" yaml:"y"`
}

// Screen is one display output in the canonical catalog.
//
// Index 0 is always the primary screen. Every mode in FullscreenModes and
// DesktopMode carries ScreenIndex == Index.
type Screen struct {
	Name            string      `json:"name" yaml:"name"`
	Index           uint        `json:"index" yaml:"index"`
	Bounds          Rect        `json:"bounds" yaml:"bounds"`
	WorkingArea     Rect        `json:"working_area" yaml:"working_area"`
	RefreshRate     uint        `json:"refresh_rate" yaml:"refresh_rate"`
	DPI             Vec2        `json:"dpi" yaml:"dpi"`
	IsPrimary       bool        `json:"is_primary" yaml:"is_primary"`
	FullscreenModes []VideoMode `json:"fullscreen_modes" yaml:"fullscreen_modes"`
	DesktopMode     VideoMode   `json:"desktop_mode" yaml:"desktop_mode"`

	device string
}

// HasMode reports whether mode is one of the screen's fullscreen modes.
func (s Screen) HasMode(mode VideoMode) bool {
	return slices.Contains(s.FullscreenModes, mode)
}

func (s Screen) clone() Screen {
	s.FullscreenModes = slices.Clone(s.FullscreenModes)
	if s.FullscreenModes == nil {
		s.FullscreenModes = []VideoMode{}
	}
	return s
}
