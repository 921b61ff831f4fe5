package display

import (
	"log/slog"
	"slices"
)

// OrderScreens turns raw probe output into canonical screens: modes are
// canonicalized per device, devices sorted left to right, the primary moved
// to index 0 and every mode re-stamped with its screen's index.
func OrderScreens(raw []RawScreen) []Screen {
	return orderScreens(raw, defaultLogger())
}

func orderScreens(raw []RawScreen, logger *slog.Logger) []Screen {
	screens := make([]Screen, 0, len(raw))
	for _, r := range raw {
		screens = append(screens, Screen{
			Name:            r.Name,
			Bounds:          r.Bounds,
			WorkingArea:     r.WorkingArea,
			RefreshRate:     r.RefreshRate,
			DPI:             r.DPI,
			IsPrimary:       r.Primary,
			FullscreenModes: CanonicalizeModes(r.Modes),
			DesktopMode:     r.DesktopMode,
			device:          r.Device,
		})
	}
	if len(screens) == 0 {
		return screens
	}

	slices.SortStableFunc(screens, func(a, b Screen) int {
		return a.Bounds.Left - b.Bounds.Left
	})

	primary := -1
	for i := range screens {
		if !screens[i].IsPrimary {
			continue
		}
		if primary < 0 {
			primary = i
			continue
		}
		logger.Warn("multiple primary screens reported, demoting",
			"device", screens[i].device, "kept", screens[primary].device)
		screens[i].IsPrimary = false
	}
	if primary < 0 {
		logger.Warn("no primary screen reported, promoting leftmost", "device", screens[0].device)
		primary = 0
		screens[0].IsPrimary = true
	}

	if primary > 0 {
		p := screens[primary]
		copy(screens[1:primary+1], screens[:primary])
		screens[0] = p
	}

	for i := range screens {
		idx := uint(i)
		screens[i].Index = idx
		for j := range screens[i].FullscreenModes {
			screens[i].FullscreenModes[j].ScreenIndex = idx
		}
		screens[i].DesktopMode.ScreenIndex = idx
	}
	return screens
}
