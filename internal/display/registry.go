package display

import "errors"

// ErrCatalogBuilt is returned by SetProbe once the process-wide catalog has
// already been queried.
var ErrCatalogBuilt = errors.New("display catalog already built")

// The process-wide catalog lives for the lifetime of the process. It is
// created without a backend and gets one from SetProbe before first use.
var defaultCatalog = NewCatalog(nil)

// SetProbe installs the backend used by the process-wide catalog. It fails
// with ErrCatalogBuilt once any query has run.
func SetProbe(probe Probe, opts ...Option) error {
	return defaultCatalog.install(probe, opts...)
}

// Default returns the process-wide catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Count returns the number of screens in the process-wide catalog.
func Count() uint { return Default().Count() }

// Get returns a screen from the process-wide catalog. See Catalog.Get.
func Get(index uint) (Screen, error) { return Default().Get(index) }

// DeviceName returns the platform device name of a screen in the
// process-wide catalog.
func DeviceName(index uint) (string, bool) { return Default().DeviceName(index) }

// DesktopMode returns the desktop mode of the primary screen.
func DesktopMode() VideoMode { return Default().DesktopMode() }

// FullscreenModes returns the fullscreen modes of the primary screen.
func FullscreenModes() []VideoMode { return Default().FullscreenModes() }
