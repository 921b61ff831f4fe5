package display

import (
	"slices"
	"testing"
)

func rawScreen(device string, left int, primary bool, modes ...VideoMode) RawScreen {
	bounds := Rect{Left: left, Top: 0, Width: 1920, Height: 1080}
	r := RawScreen{
		Device:      device,
		Name:        device,
		Bounds:      bounds,
		WorkingArea: bounds,
		RefreshRate: 60,
		DPI:         Vec2{X: 96, Y: 96},
		Primary:     primary,
		Modes:       modes,
	}
	if len(modes) > 0 {
		r.DesktopMode = modes[0]
	}
	return r
}

func devices(screens []Screen) []string {
	out := make([]string, len(screens))
	for i, s := range screens {
		out[i] = s.device
	}
	return out
}

func TestOrderScreens_PrimaryFirstThenLeftToRight(t *testing.T) {
	raw := []RawScreen{
		rawScreen("right", 3840, false),
		rawScreen("left", -1920, false),
		rawScreen("primary", 1920, true),
		rawScreen("middle", 0, false),
	}

	got := devices(OrderScreens(raw))
	want := []string{"primary", "left", "middle", "right"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestOrderScreens_TiesKeepProbeOrder(t *testing.T) {
	raw := []RawScreen{
		rawScreen("primary", 0, true),
		rawScreen("b", 1920, false),
		rawScreen("a", 1920, false),
		rawScreen("c", 1920, false),
	}

	got := devices(OrderScreens(raw))
	want := []string{"primary", "b", "a", "c"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestOrderScreens_StampsCanonicalIndex(t *testing.T) {
	raw := []RawScreen{
		rawScreen("second", 1920, false,
			VideoMode{Width: 1920, Height: 1080, BitsPerPixel: 32, ScreenIndex: 9},
			VideoMode{Width: 1280, Height: 720, BitsPerPixel: 32, ScreenIndex: 9}),
		rawScreen("first", 0, true,
			VideoMode{Width: 2560, Height: 1440, BitsPerPixel: 32, ScreenIndex: 5}),
	}

	screens := OrderScreens(raw)
	for i, s := range screens {
		if s.Index != uint(i) {
			t.Fatalf("screen %d has Index %d", i, s.Index)
		}
		if s.DesktopMode.ScreenIndex != uint(i) {
			t.Fatalf("screen %d desktop mode has ScreenIndex %d", i, s.DesktopMode.ScreenIndex)
		}
		for _, m := range s.FullscreenModes {
			if m.ScreenIndex != uint(i) {
				t.Fatalf("screen %d mode %v has ScreenIndex %d", i, m, m.ScreenIndex)
			}
		}
	}
}

func TestOrderScreens_NoPrimaryPromotesLeftmost(t *testing.T) {
	raw := []RawScreen{
		rawScreen("b", 1920, false),
		rawScreen("a", 0, false),
	}

	screens := OrderScreens(raw)
	if screens[0].device != "a" || !screens[0].IsPrimary {
		t.Fatalf("expected leftmost screen promoted to primary, got %+v", screens[0])
	}
	if screens[1].IsPrimary {
		t.Fatalf("expected exactly one primary")
	}
}

func TestOrderScreens_MultiplePrimariesKeepsFirst(t *testing.T) {
	raw := []RawScreen{
		rawScreen("late", 3840, true),
		rawScreen("plain", 0, false),
		rawScreen("early", 1920, true),
	}

	screens := OrderScreens(raw)
	primaries := 0
	for _, s := range screens {
		if s.IsPrimary {
			primaries++
		}
	}
	if primaries != 1 {
		t.Fatalf("expected exactly one primary, got %d", primaries)
	}
	got := devices(screens)
	want := []string{"early", "plain", "late"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestOrderScreens_Empty(t *testing.T) {
	if got := OrderScreens(nil); len(got) != 0 {
		t.Fatalf("expected no screens, got %v", got)
	}
}
