package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/displaykit/internal/display"
	"github.com/1broseidon/displaykit/internal/render"
)

func (s *Server) handleListScreens(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListScreensInput) (*mcpsdk.CallToolResult, ListScreensOutput, error) {
	views := render.CatalogViews(s.catalog)
	s.logger.Debug("list_screens", "count", len(views))
	return nil, ListScreensOutput{Count: uint(len(views)), Screens: views}, nil
}

func (s *Server) handleGetScreen(_ context.Context, _ *mcpsdk.CallToolRequest, args GetScreenInput) (*mcpsdk.CallToolResult, GetScreenOutput, error) {
	screen, err := s.catalog.Get(args.Index)
	if err != nil {
		return nil, GetScreenOutput{}, fmt.Errorf("get screen %d: %w", args.Index, err)
	}
	device, _ := s.catalog.DeviceName(screen.Index)
	return nil, GetScreenOutput{
		Screen:   render.NewScreenView(screen, device),
		Fallback: screen.Index != args.Index,
	}, nil
}

func (s *Server) handleListModes(_ context.Context, _ *mcpsdk.CallToolRequest, args ListModesInput) (*mcpsdk.CallToolResult, ListModesOutput, error) {
	if args.Index >= s.catalog.Count() {
		return nil, ListModesOutput{}, fmt.Errorf("screen %d not found; %d screens available", args.Index, s.catalog.Count())
	}

	modes := s.catalog.FullscreenModesOf(args.Index)
	out := ListModesOutput{
		Index:       args.Index,
		DesktopMode: render.ModeString(s.catalog.DesktopModeOf(args.Index)),
		Modes:       make([]string, 0, len(modes)),
	}
	for _, m := range modes {
		out.Modes = append(out.Modes, render.ModeString(m))
	}
	return nil, out, nil
}

func (s *Server) handleValidateMode(_ context.Context, _ *mcpsdk.CallToolRequest, args ValidateModeInput) (*mcpsdk.CallToolResult, ValidateModeOutput, error) {
	mode, err := display.ParseVideoMode(args.Mode)
	if err != nil {
		return nil, ValidateModeOutput{}, err
	}

	out := ValidateModeOutput{Mode: mode.String(), Valid: s.catalog.IsValid(mode)}
	if !out.Valid {
		switch count := s.catalog.Count(); {
		case count == 0:
			out.Reason = "no screens available"
		case mode.ScreenIndex >= count:
			out.Reason = fmt.Sprintf("screen %d not found; %d screens available", mode.ScreenIndex, count)
		default:
			out.Reason = fmt.Sprintf("mode not supported by screen %d", mode.ScreenIndex)
		}
	}
	return nil, out, nil
}

func (s *Server) handleScreenCount(_ context.Context, _ *mcpsdk.CallToolRequest, _ ScreenCountInput) (*mcpsdk.CallToolResult, ScreenCountOutput, error) {
	return nil, ScreenCountOutput{Count: s.catalog.Count()}, nil
}
