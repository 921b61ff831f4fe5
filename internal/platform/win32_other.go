//go:build !windows

package platform

import "github.com/1broseidon/displaykit/internal/display"

func newWin32Probe() (display.Probe, error) {
	return nil, ErrUnsupported
}
