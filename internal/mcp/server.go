// Package mcp exposes the display catalog as Model Context Protocol tools.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/displaykit/internal/display"
	"github.com/1broseidon/displaykit/internal/logging"
)

const (
	ServerName    = "displaykit"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for display queries.
type Server struct {
	mcpServer *mcpsdk.Server
	catalog   *display.Catalog
	logger    *slog.Logger
}

// NewServer creates an MCP server answering from cat. The catalog is built
// on the first tool call, not at startup.
func NewServer(cat *display.Catalog) *Server {
	s := &Server{
		catalog: cat,
		logger:  logging.L("mcp"),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_screens",
		Description: "List every attached display. Screen 0 is the primary display and the rest are ordered left to right by desktop position. Each entry has bounds, work area (excluding panels and docks), refresh rate, DPI, the current desktop mode and the supported fullscreen modes.",
	}, s.handleListScreens)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_screen",
		Description: "Get one display by index. An index that does not exist returns the primary screen with fallback set to true.",
	}, s.handleGetScreen)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_modes",
		Description: "List the fullscreen video modes of a display, largest first, along with its current desktop mode.",
	}, s.handleListModes)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "validate_mode",
		Description: "Check whether a video mode (WIDTHxHEIGHT[xBPP][@SCREEN]) is a supported fullscreen mode of the given display.",
	}, s.handleValidateMode)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "screen_count",
		Description: "Return the number of attached displays.",
	}, s.handleScreenCount)
}
