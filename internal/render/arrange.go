package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/1broseidon/displaykit/internal/display"
)

// Canvas limits for Arrangement; larger sizes are clamped.
const (
	MaxArrangeWidth  = 512
	MaxArrangeHeight = 256
)

// Arrangement draws the desktop layout of views onto a width x height
// character canvas. Each screen is labelled with its index; the primary
// screen gets a trailing '*'.
func Arrangement(views []ScreenView, width, height int) []string {
	width = min(width, MaxArrangeWidth)
	height = min(height, MaxArrangeHeight)
	if len(views) == 0 || width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	desktop := views[0].Bounds
	for _, v := range views[1:] {
		desktop = union(desktop, v.Bounds)
	}
	if desktop.Empty() {
		return emptyCanvas(width, height)
	}

	for _, v := range views {
		label := fmt.Sprint(v.Index)
		if v.Primary {
			label += "*"
		}
		drawScreen(canvas, v.Bounds, desktop, label)
	}

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return lines
}

// Arrangement writes the layout drawing of views.
func (r *Renderer) Arrangement(w io.Writer, views []ScreenView, width, height int) error {
	if r.Format != FormatTable {
		type placement struct {
			Index  uint         `json:"index" yaml:"index"`
			Device string       `json:"device" yaml:"device"`
			Bounds display.Rect `json:"bounds" yaml:"bounds"`
		}
		out := make([]placement, 0, len(views))
		for _, v := range views {
			out = append(out, placement{Index: v.Index, Device: v.Device, Bounds: v.Bounds})
		}
		return r.encode(w, out)
	}

	var b strings.Builder
	for _, line := range Arrangement(views, width, height) {
		b.WriteString(r.paint(labelStyle, line))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func union(a, b display.Rect) display.Rect {
	left := min(a.Left, b.Left)
	top := min(a.Top, b.Top)
	right := max(a.Right(), b.Right())
	bottom := max(a.Bottom(), b.Bottom())
	return display.Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

func drawScreen(canvas [][]rune, rect, desktop display.Rect, label string) {
	canvasH := len(canvas)
	canvasW := len(canvas[0])

	// Map desktop coordinates to canvas coordinates
	x1 := (rect.Left - desktop.Left) * (canvasW - 1) / desktop.Width
	y1 := (rect.Top - desktop.Top) * (canvasH - 1) / desktop.Height
	x2 := (rect.Right()-desktop.Left)*(canvasW-1)/desktop.Width - 1
	y2 := (rect.Bottom()-desktop.Top)*(canvasH-1)/desktop.Height - 1

	x1 = max(x1, 0)
	y1 = max(y1, 0)
	x2 = min(x2, canvasW-1)
	y2 = min(y2, canvasH-1)

	// Need at least 2x2 for a box
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}
	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	centerY := (y1 + y2) / 2
	centerX := (x1 + x2) / 2
	if centerY > y1 && centerY < y2 {
		startX := centerX - len(label)/2
		for i, r := range label {
			if startX+i > x1 && startX+i < x2 {
				canvas[centerY][startX+i] = r
			}
		}
	}
}

func emptyCanvas(width, height int) []string {
	if height < 0 {
		height = 0
	}
	return make([]string, height)
}
