package display

import (
	"slices"
	"testing"
)

func mode(w, h, bpp uint) VideoMode {
	return VideoMode{Width: w, Height: h, BitsPerPixel: bpp}
}

func TestCanonicalizeModes_SortsDescendingAndDedupes(t *testing.T) {
	raw := []VideoMode{
		mode(1280, 720, 32),
		mode(1920, 1080, 32),
		mode(800, 600, 16),
		mode(1920, 1080, 32),
		mode(1920, 1080, 16),
		mode(1280, 720, 32),
		mode(1920, 1200, 32),
	}

	got := CanonicalizeModes(raw)
	want := []VideoMode{
		mode(1920, 1200, 32),
		mode(1920, 1080, 32),
		mode(1280, 720, 32),
		mode(1920, 1080, 16),
		mode(800, 600, 16),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("CanonicalizeModes = %v, want %v", got, want)
	}
}

func TestCanonicalizeModes_DoesNotModifyInput(t *testing.T) {
	raw := []VideoMode{mode(640, 480, 32), mode(1920, 1080, 32), mode(640, 480, 32)}
	before := slices.Clone(raw)

	_ = CanonicalizeModes(raw)
	if !slices.Equal(raw, before) {
		t.Fatalf("input modified: %v, want %v", raw, before)
	}
}

func TestCanonicalizeModes_DropsRawScreenNumbering(t *testing.T) {
	raw := []VideoMode{
		{Width: 1920, Height: 1080, BitsPerPixel: 32, ScreenIndex: 4},
		{Width: 1920, Height: 1080, BitsPerPixel: 32, ScreenIndex: 7},
	}
	got := CanonicalizeModes(raw)
	if len(got) != 1 {
		t.Fatalf("expected duplicates with differing raw indices to collapse, got %v", got)
	}
	if got[0].ScreenIndex != 0 {
		t.Fatalf("expected raw screen index to be cleared, got %d", got[0].ScreenIndex)
	}
}

func TestCanonicalizeModes_Empty(t *testing.T) {
	got := CanonicalizeModes(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
