package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/1broseidon/displaykit/internal/config"
	"github.com/1broseidon/displaykit/internal/display"
	"github.com/1broseidon/displaykit/internal/logging"
	"github.com/1broseidon/displaykit/internal/platform"
	"github.com/1broseidon/displaykit/internal/render"
)

// installCatalogFn binds the probe to the process-wide registry. Tests swap
// it for a private catalog.
var installCatalogFn = func(probe display.Probe) (*display.Catalog, error) {
	if err := display.SetProbe(probe); err != nil {
		return nil, err
	}
	return display.Default(), nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printMainUsage(stdout)
		return 0
	}

	switch args[0] {
	case "list":
		return runList(args[1:], stdout, stderr)
	case "show":
		return runShow(args[1:], stdout, stderr)
	case "count":
		return runCount(args[1:], stdout, stderr)
	case "modes":
		return runModes(args[1:], stdout, stderr)
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "device":
		return runDevice(args[1:], stdout, stderr)
	case "arrange":
		return runArrange(args[1:], stdout, stderr)
	case "config":
		return runConfig(args[1:], stdout, stderr)
	case "mcp":
		return runMCP(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printMainUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(stderr)
		return 2
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: displaykit <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list                List every screen (primary first)")
	fmt.Fprintln(w, "  show <index>        Show one screen in detail")
	fmt.Fprintln(w, "  count               Print the number of screens")
	fmt.Fprintln(w, "  modes [<index>]     List fullscreen modes of a screen")
	fmt.Fprintln(w, "  validate <mode>     Check a WxH[xBPP][@SCREEN] mode (exit 1 if unsupported)")
	fmt.Fprintln(w, "  device <index>      Print the platform device name of a screen")
	fmt.Fprintln(w, "  arrange             Draw the desktop arrangement of all screens")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Common options:")
	fmt.Fprintln(w, "  --config PATH       Config file (default: ~/.config/displaykit/config.yaml)")
	fmt.Fprintln(w, "  --backend KIND      auto, x11, hyprland, win32, fixture, none")
	fmt.Fprintln(w, "  --fixture PATH      Screen fixture for the fixture backend")
	fmt.Fprintln(w, "  --format FORMAT     table, json, yaml")
	fmt.Fprintln(w, "  --color MODE        auto, always, never")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'displaykit <command> --help' for command-specific options.")
}

// commonFlags are accepted by every catalog command and override config.
type commonFlags struct {
	configPath string
	backend    string
	fixture    string
	format     string
	color      string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Config file path (default: ~/.config/displaykit/config.yaml)")
	fs.StringVar(&c.backend, "backend", "", "Display backend: auto, x11, hyprland, win32, fixture, none")
	fs.StringVar(&c.fixture, "fixture", "", "Screen fixture YAML for the fixture backend")
	fs.StringVar(&c.format, "format", "", "Output format: table, json, yaml")
	fs.StringVar(&c.color, "color", "", "Color output: auto, always, never")
}

func (c *commonFlags) loadConfig() (*config.Config, error) {
	var res *config.LoadResult
	var err error
	if c.configPath == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(c.configPath)
	}
	if err != nil {
		return nil, err
	}

	cfg := res.Config
	if c.backend != "" {
		cfg.Backend = c.backend
	}
	if c.fixture != "" {
		cfg.Fixture = c.fixture
		if c.backend == "" {
			cfg.Backend = string(platform.KindFixture)
		}
	}
	if c.format != "" {
		cfg.Output.Format = c.format
	}
	if c.color != "" {
		cfg.Output.Color = c.color
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is what a catalog command works with after setup.
type session struct {
	cfg      *config.Config
	catalog  *display.Catalog
	renderer *render.Renderer
}

func (c *commonFlags) open(stdout, stderr io.Writer) (*session, int) {
	cfg, err := c.loadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil, 1
	}

	logging.Init(cfg.Logging.Format, cfg.Logging.Level, stderr)

	probe, err := platform.New(cfg.ProbeOptions())
	if err != nil {
		if errors.Is(err, platform.ErrUnsupported) {
			fmt.Fprintf(stderr, "backend %q: %v\n", cfg.Backend, err)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return nil, 1
	}

	catalog, err := installCatalogFn(probe)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil, 1
	}

	var out *os.File
	if f, ok := stdout.(*os.File); ok {
		out = f
	}
	return &session{
		cfg:      cfg,
		catalog:  catalog,
		renderer: render.New(cfg.Output.Format, render.ColorEnabled(cfg.Output.Color, out)),
	}, 0
}

func newFlagSet(name, usage, help string, stderr io.Writer) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: displaykit "+usage)
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, help)
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	common := &commonFlags{}
	common.register(fs)
	return fs, common
}

func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func parseIndex(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid screen index %q", s)
	}
	return uint(v), nil
}

func runList(args []string, stdout, stderr io.Writer) int {
	fs, common := newFlagSet("list", "list [options]", "List every screen. Screen 0 is the primary; the rest are ordered left to right.", stderr)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stderr, "list takes no arguments")
		return 2
	}

	s, code := common.open(stdout, stderr)
	if s == nil {
		return code
	}
	if err := s.renderer.Screens(stdout, render.CatalogViews(s.catalog)); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runShow(args []string, stdout, stderr io.Writer) int {
	fs, common := newFlagSet("show", "show [options] <index>", "Show one screen. An unknown index shows the primary screen.", stderr)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	index, err := parseIndex(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	s, code := common.open(stdout, stderr)
	if s == nil {
		return code
	}
	screen, err := s.catalog.Get(index)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	device, _ := s.catalog.DeviceName(screen.Index)
	if err := s.renderer.Screen(stdout, render.NewScreenView(screen, device)); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runCount(args []string, stdout, stderr io.Writer) int {
	fs, common := newFlagSet("count", "count [options]", "Print the number of screens.", stderr)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	s, code := common.open(stdout, stderr)
	if s == nil {
		return code
	}
	if err := s.renderer.Value(stdout, "count", s.catalog.Count()); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runModes(args []string, stdout, stderr io.Writer) int {
	fs, common := newFlagSet("modes", "modes [options] [<index>]", "List the fullscreen modes of a screen (default: primary), largest first.", stderr)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}
	var index uint
	if fs.NArg() == 1 {
		var err error
		if index, err = parseIndex(fs.Arg(0)); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	s, code := common.open(stdout, stderr)
	if s == nil {
		return code
	}
	if index >= s.catalog.Count() {
		fmt.Fprintf(stderr, "screen %d not found; %d screens available\n", index, s.catalog.Count())
		return 1
	}
	if err := s.renderer.Modes(stdout, s.catalog.FullscreenModesOf(index)); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runValidate(args []string, stdout, stderr io.Writer) int {
	fs, common := newFlagSet("validate", "validate [options] <WxH[xBPP][@SCREEN]>", "Exit 0 if the mode is a fullscreen mode of the screen, 1 otherwise.", stderr)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	mode, err := display.ParseVideoMode(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	s, code := common.open(stdout, stderr)
	if s == nil {
		return code
	}
	valid := s.catalog.IsValid(mode)
	if s.renderer.Format == render.FormatTable {
		if valid {
			fmt.Fprintf(stdout, "%s: supported\n", mode)
		} else {
			fmt.Fprintf(stdout, "%s: not supported\n", mode)
		}
	} else if err := s.renderer.Value(stdout, "valid", valid); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if !valid {
		return 1
	}
	return 0
}

func runDevice(args []string, stdout, stderr io.Writer) int {
	fs, common := newFlagSet("device", "device [options] <index>", "Print the platform device name of a screen.", stderr)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	index, err := parseIndex(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	s, code := common.open(stdout, stderr)
	if s == nil {
		return code
	}
	device, ok := s.catalog.DeviceName(index)
	if !ok {
		fmt.Fprintf(stderr, "screen %d not found; %d screens available\n", index, s.catalog.Count())
		return 1
	}
	if err := s.renderer.Value(stdout, "device", device); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runArrange(args []string, stdout, stderr io.Writer) int {
	fs, common := newFlagSet("arrange", "arrange [options]", "Draw how the screens are arranged on the desktop.", stderr)
	width := fs.Int("width", 0, "Drawing width in columns (default: terminal width, capped at 80)")
	height := fs.Int("height", 0, "Drawing height in rows (default: width/4)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stderr, "arrange takes no arguments")
		return 2
	}

	s, code := common.open(stdout, stderr)
	if s == nil {
		return code
	}

	w, h := arrangeSize(stdout, *width, *height)
	if err := s.renderer.Arrangement(stdout, render.CatalogViews(s.catalog), w, h); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func arrangeSize(out io.Writer, width, height int) (int, int) {
	if width <= 0 {
		width = 80
		if f, ok := out.(*os.File); ok {
			if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 && tw < width {
				width = tw
			}
		}
	}
	width = min(width, render.MaxArrangeWidth)
	if height <= 0 {
		height = max(width/4, 3)
	}
	return width, min(height, render.MaxArrangeHeight)
}
