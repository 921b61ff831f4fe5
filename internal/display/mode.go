package display

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultBitsPerPixel is used when a mode is built or parsed without a depth.
const DefaultBitsPerPixel = 32

// VideoMode is a resolution and pixel depth tied to one screen by its
// canonical index.
//
// Two modes are equal (==) only when all four fields match. Ordering via
// Compare ignores ScreenIndex and sorts by bits per pixel, then width, then
// height.
type VideoMode struct {
	Width        uint `json:"width" yaml:"width"`
	Height       uint `json:"height" yaml:"height"`
	BitsPerPixel uint `json:"bits_per_pixel" yaml:"bits_per_pixel"`
	ScreenIndex  uint `json:"screen_index" yaml:"screen_index"`
}

// NewVideoMode returns a 32 bpp mode on the primary screen.
func NewVideoMode(width, height uint) VideoMode {
	return VideoMode{Width: width, Height: height, BitsPerPixel: DefaultBitsPerPixel}
}

// Compare returns -1, 0 or +1 depending on whether m sorts before, equal to
// or after other. Bits per pixel is the most significant key.
func (m VideoMode) Compare(other VideoMode) int {
	switch {
	case m.BitsPerPixel != other.BitsPerPixel:
		return cmpUint(m.BitsPerPixel, other.BitsPerPixel)
	case m.Width != other.Width:
		return cmpUint(m.Width, other.Width)
	default:
		return cmpUint(m.Height, other.Height)
	}
}

func (m VideoMode) Less(other VideoMode) bool           { return m.Compare(other) < 0 }
func (m VideoMode) LessOrEqual(other VideoMode) bool    { return m.Compare(other) <= 0 }
func (m VideoMode) Greater(other VideoMode) bool        { return m.Compare(other) > 0 }
func (m VideoMode) GreaterOrEqual(other VideoMode) bool { return m.Compare(other) >= 0 }

// IsValid reports whether m is a supported fullscreen mode of its screen in
// the process-wide catalog.
func (m VideoMode) IsValid() bool {
	return Default().IsValid(m)
}

// String formats the mode as WIDTHxHEIGHTxBPP@SCREEN.
func (m VideoMode) String() string {
	return fmt.Sprintf("%dx%dx%d@%d", m.Width, m.Height, m.BitsPerPixel, m.ScreenIndex)
}

// ParseVideoMode parses WxH, WxHxBPP, and either form followed by @SCREEN.
// Missing depth defaults to 32 bpp and a missing screen to index 0.
func ParseVideoMode(s string) (VideoMode, error) {
	spec := strings.TrimSpace(s)
	if spec == "" {
		return VideoMode{}, fmt.Errorf("empty video mode")
	}

	var mode VideoMode
	if at := strings.LastIndex(spec, "@"); at >= 0 {
		idx, err := parseUint(spec[at+1:])
		if err != nil {
			return VideoMode{}, fmt.Errorf("invalid screen index in %q: %w", s, err)
		}
		mode.ScreenIndex = idx
		spec = spec[:at]
	}

	parts := strings.Split(strings.ToLower(spec), "x")
	if len(parts) != 2 && len(parts) != 3 {
		return VideoMode{}, fmt.Errorf("invalid video mode %q: want WIDTHxHEIGHT[xBPP][@SCREEN]", s)
	}

	fields := []*uint{&mode.Width, &mode.Height, &mode.BitsPerPixel}
	for i, part := range parts {
		v, err := parseUint(part)
		if err != nil {
			return VideoMode{}, fmt.Errorf("invalid video mode %q: %w", s, err)
		}
		*fields[i] = v
	}
	if len(parts) == 2 {
		mode.BitsPerPixel = DefaultBitsPerPixel
	}
	if mode.Width == 0 || mode.Height == 0 {
		return VideoMode{}, fmt.Errorf("invalid video mode %q: width and height must be positive", s)
	}
	return mode, nil
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func cmpUint(a, b uint) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
