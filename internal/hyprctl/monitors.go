package hyprctl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Monitor is the subset of `hyprctl -j monitors` output used for display
// enumeration.
type Monitor struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Make           string   `json:"make"`
	Model          string   `json:"model"`
	Width          int64    `json:"width"`
	Height         int64    `json:"height"`
	RefreshRate    float64  `json:"refreshRate"`
	X              int64    `json:"x"`
	Y              int64    `json:"y"`
	Reserved       []int64  `json:"reserved"`
	Scale          float64  `json:"scale"`
	Focused        bool     `json:"focused"`
	Disabled       bool     `json:"disabled"`
	CurrentFormat  string   `json:"currentFormat"`
	MirrorOf       string   `json:"mirrorOf"`
	AvailableModes []string `json:"availableModes"`
}

// Mirrored reports whether the monitor is a clone of another output.
func (m Monitor) Mirrored() bool {
	return m.MirrorOf != "" && m.MirrorOf != "none"
}

// Mode is one entry of a monitor's availableModes list.
type Mode struct {
	Width       uint
	Height      uint
	RefreshRate uint
}

// ListMonitors returns every known monitor, including disabled ones.
func (c *Client) ListMonitors() ([]Monitor, error) {
	var m []Monitor
	if err := c.RunCommandWithUnmarshal([]string{"monitors", "all"}, &m); err != nil {
		return nil, err
	}

	return m, nil
}

// ParseMode parses an availableModes entry such as "1920x1080@59.94Hz".
func ParseMode(s string) (Mode, error) {
	spec := strings.TrimSuffix(strings.TrimSpace(s), "Hz")
	size, rate, hasRate := strings.Cut(spec, "@")

	ws, hs, ok := strings.Cut(size, "x")
	if !ok {
		return Mode{}, fmt.Errorf("invalid mode %q", s)
	}
	w, err := strconv.ParseUint(ws, 10, 0)
	if err != nil {
		return Mode{}, fmt.Errorf("invalid mode width %q: %w", s, err)
	}
	h, err := strconv.ParseUint(hs, 10, 0)
	if err != nil {
		return Mode{}, fmt.Errorf("invalid mode height %q: %w", s, err)
	}

	m := Mode{Width: uint(w), Height: uint(h)}
	if hasRate {
		r, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return Mode{}, fmt.Errorf("invalid mode refresh rate %q: %w", s, err)
		}
		m.RefreshRate = uint(math.Round(r))
	}
	return m, nil
}

// FormatDepth maps a DRM pixel format name to bits per pixel. Unknown
// formats are reported as 32.
func FormatDepth(format string) uint {
	f := strings.ToUpper(format)
	switch {
	case strings.Contains(f, "2101010"):
		return 30
	case strings.HasSuffix(f, "8888"):
		return 32
	case strings.HasSuffix(f, "888"):
		return 24
	case strings.HasSuffix(f, "565"), strings.HasSuffix(f, "1555"), strings.HasSuffix(f, "4444"):
		return 16
	default:
		return 32
	}
}
