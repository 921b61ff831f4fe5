package display

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeProbe returns whatever screens it currently holds and counts calls.
type fakeProbe struct {
	mu      sync.Mutex
	screens []RawScreen
	err     error
	calls   atomic.Int32
}

func (p *fakeProbe) Enumerate() ([]RawScreen, error) {
	p.calls.Add(1)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return slices.Clone(p.screens), nil
}

func (p *fakeProbe) set(screens []RawScreen) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.screens = screens
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCatalog(p Probe) *Catalog {
	return NewCatalog(p, WithLogger(quietLogger()))
}

// twoDeviceProbe is device A (secondary, right, with a duplicate mode) and
// device B (primary, left).
func twoDeviceProbe() *fakeProbe {
	a := rawScreen("A", 1920, false,
		mode(1920, 1080, 32), mode(1920, 1080, 32), mode(1280, 720, 32))
	b := rawScreen("B", 0, true,
		mode(2560, 1440, 32), mode(1920, 1080, 24))
	b.Bounds.Width, b.Bounds.Height = 2560, 1440
	return &fakeProbe{screens: []RawScreen{a, b}}
}

func TestCatalog_TwoDeviceScenario(t *testing.T) {
	c := newTestCatalog(twoDeviceProbe())

	if got := c.Count(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}

	primary, err := c.Get(0)
	if err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	if primary.Name != "B" || !primary.IsPrimary || primary.Index != 0 {
		t.Fatalf("Get(0) = %+v, want primary B", primary)
	}
	wantB := []VideoMode{
		{Width: 2560, Height: 1440, BitsPerPixel: 32, ScreenIndex: 0},
		{Width: 1920, Height: 1080, BitsPerPixel: 24, ScreenIndex: 0},
	}
	if !slices.Equal(primary.FullscreenModes, wantB) {
		t.Fatalf("B modes = %v, want %v", primary.FullscreenModes, wantB)
	}

	second, err := c.Get(1)
	if err != nil {
		t.Fatalf("Get(1): %v", err)
	}
	if second.Name != "A" || second.IsPrimary || second.Index != 1 {
		t.Fatalf("Get(1) = %+v, want secondary A", second)
	}
	wantA := []VideoMode{
		{Width: 1920, Height: 1080, BitsPerPixel: 32, ScreenIndex: 1},
		{Width: 1280, Height: 720, BitsPerPixel: 32, ScreenIndex: 1},
	}
	if !slices.Equal(second.FullscreenModes, wantA) {
		t.Fatalf("A modes = %v, want %v", second.FullscreenModes, wantA)
	}
	if second.DesktopMode.ScreenIndex != 1 {
		t.Fatalf("A desktop mode ScreenIndex = %d, want 1", second.DesktopMode.ScreenIndex)
	}
}

func TestCatalog_Invariants(t *testing.T) {
	p := &fakeProbe{screens: []RawScreen{
		rawScreen("d", 5760, false, mode(1024, 768, 32), mode(1024, 768, 32)),
		rawScreen("c", -1920, false, mode(800, 600, 16), mode(1920, 1080, 32)),
		rawScreen("b", 1920, true, mode(1920, 1080, 32)),
		rawScreen("a", 3840, false, mode(640, 480, 8), mode(3840, 2160, 32), mode(640, 480, 8)),
		rawScreen("e", 3840, false),
	}}
	c := newTestCatalog(p)

	if got := c.Count(); got != 5 {
		t.Fatalf("Count = %d, want 5", got)
	}

	primaries := 0
	var prevLeft int
	for i := uint(0); i < c.Count(); i++ {
		s, err := c.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if s.IsPrimary {
			primaries++
			if i != 0 {
				t.Fatalf("primary at index %d", i)
			}
		}
		if i >= 2 && s.Bounds.Left < prevLeft {
			t.Fatalf("screen %d left %d < previous %d", i, s.Bounds.Left, prevLeft)
		}
		prevLeft = s.Bounds.Left

		for j, m := range s.FullscreenModes {
			if m.ScreenIndex != i {
				t.Fatalf("screen %d mode %v has ScreenIndex %d", i, m, m.ScreenIndex)
			}
			if j > 0 {
				prev := s.FullscreenModes[j-1]
				if !prev.Greater(m) {
					t.Fatalf("screen %d modes not strictly descending: %v then %v", i, prev, m)
				}
			}
		}
		if s.DesktopMode.ScreenIndex != i {
			t.Fatalf("screen %d desktop mode ScreenIndex %d", i, s.DesktopMode.ScreenIndex)
		}
	}
	if primaries != 1 {
		t.Fatalf("expected exactly one primary, got %d", primaries)
	}
}

func TestCatalog_OutOfRangeFallsBackToPrimary(t *testing.T) {
	c := newTestCatalog(twoDeviceProbe())

	first, err := c.Get(0)
	if err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	for _, idx := range []uint{c.Count(), 42} {
		got, err := c.Get(idx)
		if err != nil {
			t.Fatalf("Get(%d): %v", idx, err)
		}
		if got.Index != first.Index || got.Name != first.Name || !slices.Equal(got.FullscreenModes, first.FullscreenModes) {
			t.Fatalf("Get(%d) = %+v, want primary %+v", idx, got, first)
		}
	}
}

func TestCatalog_EmptyProbe(t *testing.T) {
	c := newTestCatalog(EmptyProbe)

	if got := c.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
	if _, err := c.Get(0); !errors.Is(err, ErrNoScreens) {
		t.Fatalf("Get(0) err = %v, want ErrNoScreens", err)
	}
	if c.IsValid(NewVideoMode(1920, 1080)) {
		t.Fatalf("IsValid on empty catalog should be false")
	}
	if modes := c.FullscreenModes(); modes == nil || len(modes) != 0 {
		t.Fatalf("FullscreenModes on empty catalog = %#v, want empty", modes)
	}
	if m := c.DesktopMode(); m != (VideoMode{}) {
		t.Fatalf("DesktopMode on empty catalog = %v, want zero", m)
	}
	if _, ok := c.DeviceName(0); ok {
		t.Fatalf("DeviceName on empty catalog should fail")
	}
}

func TestCatalog_ProbeErrorYieldsEmptyCatalog(t *testing.T) {
	p := &fakeProbe{err: errors.New("display server unreachable")}
	c := newTestCatalog(p)

	if got := c.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
	if _, err := c.Get(0); !errors.Is(err, ErrNoScreens) {
		t.Fatalf("Get(0) err = %v, want ErrNoScreens", err)
	}
}

func TestCatalog_NilProbe(t *testing.T) {
	c := newTestCatalog(nil)
	if got := c.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
}

func TestCatalog_IsValid(t *testing.T) {
	c := newTestCatalog(twoDeviceProbe())

	tests := []struct {
		name string
		mode VideoMode
		want bool
	}{
		{"primary best mode", VideoMode{Width: 2560, Height: 1440, BitsPerPixel: 32, ScreenIndex: 0}, true},
		{"primary low depth", VideoMode{Width: 1920, Height: 1080, BitsPerPixel: 24, ScreenIndex: 0}, true},
		{"secondary mode", VideoMode{Width: 1280, Height: 720, BitsPerPixel: 32, ScreenIndex: 1}, true},
		{"mode of other screen", VideoMode{Width: 1280, Height: 720, BitsPerPixel: 32, ScreenIndex: 0}, false},
		{"unsupported depth", VideoMode{Width: 2560, Height: 1440, BitsPerPixel: 16, ScreenIndex: 0}, false},
		{"screen out of range", VideoMode{Width: 1920, Height: 1080, BitsPerPixel: 32, ScreenIndex: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsValid(tt.mode); got != tt.want {
				t.Fatalf("IsValid(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestCatalog_IsValidMatchesFullscreenModes(t *testing.T) {
	c := newTestCatalog(twoDeviceProbe())
	for i := uint(0); i < c.Count(); i++ {
		s, _ := c.Get(i)
		for _, m := range s.FullscreenModes {
			if !c.IsValid(m) {
				t.Fatalf("IsValid(%v) = false for a listed mode", m)
			}
		}
	}
}

func TestCatalog_BuildsOnceAndIgnoresLaterProbeChanges(t *testing.T) {
	p := twoDeviceProbe()
	c := newTestCatalog(p)

	before, _ := c.Get(1)
	countBefore := c.Count()

	p.set([]RawScreen{rawScreen("Z", 0, true, mode(640, 480, 8))})

	after, _ := c.Get(1)
	if c.Count() != countBefore {
		t.Fatalf("Count changed after probe data changed: %d -> %d", countBefore, c.Count())
	}
	if after.Name != before.Name || !slices.Equal(after.FullscreenModes, before.FullscreenModes) {
		t.Fatalf("Get(1) drifted: %+v -> %+v", before, after)
	}
	if calls := p.calls.Load(); calls != 1 {
		t.Fatalf("probe called %d times, want 1", calls)
	}
}

func TestCatalog_ConcurrentFirstAccessBuildsOnce(t *testing.T) {
	p := twoDeviceProbe()
	c := newTestCatalog(p)

	const workers = 32
	var wg sync.WaitGroup
	counts := make([]uint, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			counts[i] = c.Count()
		}(i)
	}
	wg.Wait()

	if calls := p.calls.Load(); calls != 1 {
		t.Fatalf("probe called %d times, want 1", calls)
	}
	for i, n := range counts {
		if n != 2 {
			t.Fatalf("worker %d saw Count = %d, want 2", i, n)
		}
	}
}

func TestCatalog_GetReturnsIsolatedCopies(t *testing.T) {
	c := newTestCatalog(twoDeviceProbe())

	s, _ := c.Get(0)
	s.FullscreenModes[0].Width = 1
	s.Name = "mutated"

	again, _ := c.Get(0)
	if again.Name != "B" || again.FullscreenModes[0].Width != 2560 {
		t.Fatalf("cached screen mutated through returned copy: %+v", again)
	}

	modes := c.FullscreenModesOf(1)
	modes[0].Height = 1
	if c.FullscreenModesOf(1)[0].Height != 1080 {
		t.Fatalf("cached modes mutated through FullscreenModesOf")
	}
}

func TestCatalog_DeviceNameAndModeShortcuts(t *testing.T) {
	c := newTestCatalog(twoDeviceProbe())

	if name, ok := c.DeviceName(0); !ok || name != "B" {
		t.Fatalf("DeviceName(0) = %q, %v; want B, true", name, ok)
	}
	if name, ok := c.DeviceName(1); !ok || name != "A" {
		t.Fatalf("DeviceName(1) = %q, %v; want A, true", name, ok)
	}
	if _, ok := c.DeviceName(2); ok {
		t.Fatalf("DeviceName(2) should fail")
	}

	want := VideoMode{Width: 2560, Height: 1440, BitsPerPixel: 32, ScreenIndex: 0}
	if got := c.DesktopMode(); got != want {
		t.Fatalf("DesktopMode = %v, want %v", got, want)
	}
	if got := c.DesktopModeOf(1); got.ScreenIndex != 1 || got.Width != 1920 {
		t.Fatalf("DesktopModeOf(1) = %v", got)
	}
	if got := c.DesktopModeOf(5); got != (VideoMode{}) {
		t.Fatalf("DesktopModeOf(5) = %v, want zero", got)
	}
	if got := c.FullscreenModes(); len(got) != 2 || got[0] != want {
		t.Fatalf("FullscreenModes = %v", got)
	}
	if got := c.FullscreenModesOf(9); len(got) != 0 {
		t.Fatalf("FullscreenModesOf(9) = %v, want empty", got)
	}
}

func TestCatalog_ScreensReturnsAllInOrder(t *testing.T) {
	c := newTestCatalog(twoDeviceProbe())
	screens := c.Screens()
	if len(screens) != 2 || screens[0].Name != "B" || screens[1].Name != "A" {
		t.Fatalf("Screens = %+v", screens)
	}
	if !c.Built() {
		t.Fatalf("expected catalog to report built")
	}
}
