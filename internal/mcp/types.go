package mcp

import "github.com/1broseidon/displaykit/internal/render"

// ListScreensInput is the input for the list_screens tool.
type ListScreensInput struct{}

// ListScreensOutput is the output for the list_screens tool.
type ListScreensOutput struct {
	Count   uint                `json:"count"`
	Screens []render.ScreenView `json:"screens"`
}

// GetScreenInput is the input for the get_screen tool.
type GetScreenInput struct {
	Index uint `json:"index,omitempty" jsonschema:"Screen index; 0 is the primary screen (default: 0)"`
}

// GetScreenOutput is the output for the get_screen tool.
type GetScreenOutput struct {
	Screen render.ScreenView `json:"screen"`
	// Fallback is set when the requested index did not exist and the primary
	// screen was returned instead.
	Fallback bool `json:"fallback"`
}

// ListModesInput is the input for the list_modes tool.
type ListModesInput struct {
	Index uint `json:"index,omitempty" jsonschema:"Screen index (default: 0, the primary screen)"`
}

// ListModesOutput is the output for the list_modes tool.
type ListModesOutput struct {
	Index       uint     `json:"index"`
	DesktopMode string   `json:"desktop_mode"`
	Modes       []string `json:"modes"`
}

// ValidateModeInput is the input for the validate_mode tool.
type ValidateModeInput struct {
	Mode string `json:"mode" jsonschema:"Video mode as WIDTHxHEIGHT[xBPP][@SCREEN], e.g. 1920x1080x32@0. Depth defaults to 32 and screen to 0."`
}

// ValidateModeOutput is the output for the validate_mode tool.
type ValidateModeOutput struct {
	Mode   string `json:"mode"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ScreenCountInput is the input for the screen_count tool.
type ScreenCountInput struct{}

// ScreenCountOutput is the output for the screen_count tool.
type ScreenCountOutput struct {
	Count uint `json:"count"`
}
