package display

// RawScreen is one device as reported by a platform backend, before
// canonicalization. Modes may be unsorted and contain duplicates; any
// ScreenIndex the backend sets is discarded.
type RawScreen struct {
	// Device is the opaque platform handle name (e.g. \\.\DISPLAY1, HDMI-1).
	Device      string
	Name        string
	Bounds      Rect
	WorkingArea Rect
	RefreshRate uint
	DPI         Vec2
	Primary     bool
	Modes       []VideoMode
	DesktopMode VideoMode
}

// Probe enumerates the attached, non-mirrored display devices of the host.
//
// Implementations skip devices whose settings can't be read and release
// every native resource before returning. An error means the OS display API
// could not be reached at all; callers treat it as an empty environment.
type Probe interface {
	Enumerate() ([]RawScreen, error)
}

// ProbeFunc adapts a plain function to the Probe interface.
type ProbeFunc func() ([]RawScreen, error)

func (f ProbeFunc) Enumerate() ([]RawScreen, error) { return f() }

// EmptyProbe reports no devices.
var EmptyProbe Probe = ProbeFunc(func() ([]RawScreen, error) { return []RawScreen{}, nil })
