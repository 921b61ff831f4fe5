package display

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/1broseidon/displaykit/internal/logging"
)

// ErrNoScreens is returned by Get when the catalog holds no screens.
var ErrNoScreens = errors.New("no screens available")

// Catalog is a lazily built, immutable list of canonical screens.
//
// The first query runs the probe once; every later query is served from the
// cached result, so display changes after that point are not observed.
// A Catalog is safe for concurrent use.
type Catalog struct {
	probe  Probe
	logger *slog.Logger

	mu      sync.Mutex
	built   atomic.Bool
	screens []Screen
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// NewCatalog returns a catalog backed by probe. A nil probe yields an empty
// catalog.
func NewCatalog(probe Probe, opts ...Option) *Catalog {
	c := &Catalog{probe: probe}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Built reports whether the catalog has already run its probe.
func (c *Catalog) Built() bool {
	return c.built.Load()
}

// Count returns the number of screens.
func (c *Catalog) Count() uint {
	return uint(len(c.load()))
}

// Get returns the screen at index. An out-of-range index logs a warning and
// returns the primary screen. ErrNoScreens is returned only when the catalog
// is empty.
func (c *Catalog) Get(index uint) (Screen, error) {
	screens := c.load()
	if len(screens) == 0 {
		c.log().Warn("screen requested from empty catalog", "index", index)
		return Screen{}, ErrNoScreens
	}
	if index < uint(len(screens)) {
		return screens[index].clone(), nil
	}
	c.log().Warn("screen index out of range, returning primary screen",
		"index", index, "count", len(screens))
	return screens[0].clone(), nil
}

// Screens returns a copy of every screen in canonical order.
func (c *Catalog) Screens() []Screen {
	screens := c.load()
	out := make([]Screen, len(screens))
	for i := range screens {
		out[i] = screens[i].clone()
	}
	return out
}

// IsValid reports whether mode is a fullscreen mode of the screen it names.
func (c *Catalog) IsValid(mode VideoMode) bool {
	screens := c.load()
	if mode.ScreenIndex >= uint(len(screens)) {
		c.log().Warn("video mode refers to an unavailable screen",
			"screen", mode.ScreenIndex, "count", len(screens))
		return false
	}
	return slices.Contains(screens[mode.ScreenIndex].FullscreenModes, mode)
}

// DeviceName returns the platform device name of the screen at index.
func (c *Catalog) DeviceName(index uint) (string, bool) {
	screens := c.load()
	if index >= uint(len(screens)) {
		c.log().Warn("display device requested for unknown screen",
			"index", index, "count", len(screens))
		return "", false
	}
	return screens[index].device, true
}

// DesktopModeOf returns the current desktop mode of the screen at index, or
// the zero mode when no such screen exists.
func (c *Catalog) DesktopModeOf(index uint) VideoMode {
	screens := c.load()
	if index >= uint(len(screens)) {
		c.log().Warn("desktop mode requested for unknown screen",
			"index", index, "count", len(screens))
		return VideoMode{}
	}
	return screens[index].DesktopMode
}

// FullscreenModesOf returns the fullscreen modes of the screen at index,
// best first, or an empty slice when no such screen exists.
func (c *Catalog) FullscreenModesOf(index uint) []VideoMode {
	screens := c.load()
	if index >= uint(len(screens)) {
		c.log().Warn("fullscreen modes requested for unknown screen",
			"index", index, "count", len(screens))
		return []VideoMode{}
	}
	return slices.Clone(screens[index].FullscreenModes)
}

// DesktopMode returns the desktop mode of the primary screen.
func (c *Catalog) DesktopMode() VideoMode { return c.DesktopModeOf(0) }

// FullscreenModes returns the fullscreen modes of the primary screen.
func (c *Catalog) FullscreenModes() []VideoMode { return c.FullscreenModesOf(0) }

// install replaces the probe and options of a catalog that hasn't been
// built. It serializes with the first build, so a build never observes a
// half-installed probe and a built catalog never changes.
func (c *Catalog) install(probe Probe, opts ...Option) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.built.Load() {
		return ErrCatalogBuilt
	}
	c.probe = probe
	for _, opt := range opts {
		opt(c)
	}
	return nil
}

func (c *Catalog) load() []Screen {
	if c.built.Load() {
		return c.screens
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.built.Load() {
		c.screens = c.build()
		c.built.Store(true)
	}
	return c.screens
}

func (c *Catalog) build() []Screen {
	logger := c.log()
	if c.probe == nil {
		logger.Warn("no display probe installed, catalog is empty")
		return []Screen{}
	}

	raw, err := c.probe.Enumerate()
	if err != nil {
		logger.Warn("display enumeration failed, catalog is empty", logging.KeyError, err)
		return []Screen{}
	}

	screens := orderScreens(raw, logger)
	for _, s := range screens {
		logger.Debug("screen discovered",
			logging.KeyScreen, s.Index,
			"name", s.Name,
			logging.KeyDevice, s.device,
			"bounds", s.Bounds,
			"refresh_hz", s.RefreshRate,
			"modes", len(s.FullscreenModes),
		)
	}
	logger.Info("display catalog built", "screens", len(screens))
	return screens
}

func (c *Catalog) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return defaultLogger()
}

func defaultLogger() *slog.Logger {
	return logging.L("display")
}
