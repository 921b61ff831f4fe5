// Package render prints catalog data as a styled table, JSON, or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/displaykit/internal/display"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ScreenView is the printable form of one screen.
type ScreenView struct {
	Index           uint         `json:"index" yaml:"index"`
	Device          string       `json:"device" yaml:"device"`
	Name            string       `json:"name" yaml:"name"`
	Primary         bool         `json:"primary" yaml:"primary"`
	Bounds          display.Rect `json:"bounds" yaml:"bounds"`
	WorkingArea     display.Rect `json:"working_area" yaml:"working_area"`
	RefreshRate     uint         `json:"refresh_rate" yaml:"refresh_rate"`
	DPI             display.Vec2 `json:"dpi" yaml:"dpi"`
	DesktopMode     string       `json:"desktop_mode" yaml:"desktop_mode"`
	FullscreenModes []string     `json:"fullscreen_modes" yaml:"fullscreen_modes"`
}

// NewScreenView flattens s for output.
func NewScreenView(s display.Screen, device string) ScreenView {
	modes := make([]string, 0, len(s.FullscreenModes))
	for _, m := range s.FullscreenModes {
		modes = append(modes, ModeString(m))
	}
	return ScreenView{
		Index:           s.Index,
		Device:          device,
		Name:            s.Name,
		Primary:         s.IsPrimary,
		Bounds:          s.Bounds,
		WorkingArea:     s.WorkingArea,
		RefreshRate:     s.RefreshRate,
		DPI:             s.DPI,
		DesktopMode:     ModeString(s.DesktopMode),
		FullscreenModes: modes,
	}
}

// CatalogViews returns a view of every screen in cat.
func CatalogViews(cat *display.Catalog) []ScreenView {
	screens := cat.Screens()
	views := make([]ScreenView, 0, len(screens))
	for _, s := range screens {
		device, _ := cat.DeviceName(s.Index)
		views = append(views, NewScreenView(s, device))
	}
	return views
}

// ModeString formats a mode without its screen index.
func ModeString(m display.VideoMode) string {
	return fmt.Sprintf("%dx%dx%d", m.Width, m.Height, m.BitsPerPixel)
}

func rectString(r display.Rect) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.Left, r.Top)
}

// ColorEnabled resolves an auto|always|never setting against f.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Renderer writes values in one output format.
type Renderer struct {
	Format string
	Color  bool
}

func New(format string, color bool) *Renderer {
	if format == "" {
		format = FormatTable
	}
	return &Renderer{Format: format, Color: color}
}

// Screens writes every view.
func (r *Renderer) Screens(w io.Writer, views []ScreenView) error {
	if r.Format != FormatTable {
		return r.encode(w, views)
	}

	headers := []string{"", "IDX", "DEVICE", "NAME", "BOUNDS", "WORK AREA", "HZ", "DPI", "DESKTOP", "MODES"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		mark := ""
		if v.Primary {
			mark = "*"
		}
		rows = append(rows, []string{
			mark,
			fmt.Sprint(v.Index),
			v.Device,
			v.Name,
			rectString(v.Bounds),
			rectString(v.WorkingArea),
			fmt.Sprint(v.RefreshRate),
			fmt.Sprintf("%dx%d", v.DPI.X, v.DPI.Y),
			v.DesktopMode,
			fmt.Sprint(len(v.FullscreenModes)),
		})
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, r.paint(dimStyle, "no screens"))
		return err
	}
	return r.table(w, headers, rows)
}

// Screen writes one view in detail, including its full mode list.
func (r *Renderer) Screen(w io.Writer, v ScreenView) error {
	if r.Format != FormatTable {
		return r.encode(w, v)
	}

	title := fmt.Sprintf("Screen %d: %s", v.Index, v.Name)
	if v.Primary {
		title += " (primary)"
	}

	var b strings.Builder
	fmt.Fprintln(&b, r.paint(titleStyle, title))
	fields := [][2]string{
		{"device", v.Device},
		{"bounds", rectString(v.Bounds)},
		{"work area", rectString(v.WorkingArea)},
		{"refresh", fmt.Sprintf("%d Hz", v.RefreshRate)},
		{"dpi", fmt.Sprintf("%dx%d", v.DPI.X, v.DPI.Y)},
		{"desktop", v.DesktopMode},
	}
	for _, f := range fields {
		fmt.Fprintf(&b, "  %s %s\n", r.paint(labelStyle, pad(f[0]+":", 10)), f[1])
	}
	fmt.Fprintf(&b, "  %s\n", r.paint(labelStyle, fmt.Sprintf("modes (%d):", len(v.FullscreenModes))))
	for _, m := range v.FullscreenModes {
		fmt.Fprintf(&b, "    %s\n", m)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Modes writes a mode list, largest first.
func (r *Renderer) Modes(w io.Writer, modes []display.VideoMode) error {
	if r.Format != FormatTable {
		out := make([]string, 0, len(modes))
		for _, m := range modes {
			out = append(out, ModeString(m))
		}
		return r.encode(w, out)
	}

	rows := make([][]string, 0, len(modes))
	for _, m := range modes {
		rows = append(rows, []string{fmt.Sprint(m.Width), fmt.Sprint(m.Height), fmt.Sprint(m.BitsPerPixel)})
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, r.paint(dimStyle, "no modes"))
		return err
	}
	return r.table(w, []string{"WIDTH", "HEIGHT", "BPP"}, rows)
}

// Value writes a scalar or small map; tables print it bare.
func (r *Renderer) Value(w io.Writer, key string, v any) error {
	switch r.Format {
	case FormatJSON, FormatYAML:
		return r.encode(w, map[string]any{key: v})
	default:
		_, err := fmt.Fprintln(w, v)
		return err
	}
}

func (r *Renderer) encode(w io.Writer, v any) error {
	switch r.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", r.Format)
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	plainStyle   = lipgloss.NewStyle()
)

func (r *Renderer) paint(s lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) table(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := lipgloss.Width(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(i int, cell string) lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = r.paint(style(i, cell), pad(cell, widths[i]))
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteByte('\n')
	}

	writeRow(headers, func(int, string) lipgloss.Style { return headerStyle })
	for _, row := range rows {
		writeRow(row, func(i int, cell string) lipgloss.Style {
			if i == 0 && cell == "*" {
				return primaryStyle
			}
			return plainStyle
		})
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
