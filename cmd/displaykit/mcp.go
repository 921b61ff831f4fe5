package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/1broseidon/displaykit/internal/mcp"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: displaykit mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'displaykit mcp <command> --help' for command-specific options.")
}

func runMCP(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printMCPUsage(stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printMCPUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(stderr)
		return 2
	}
}

func runMCPServe(args []string, stdout, stderr io.Writer) int {
	fs, common := newFlagSet("serve", "mcp serve [options]",
		"Start the MCP server on stdio. Designed to be invoked by MCP clients.",
		stderr)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	// stdout carries the protocol; only stderr is safe for diagnostics.
	s, code := common.open(io.Discard, stderr)
	if s == nil {
		return code
	}

	server := mcp.NewServer(s.catalog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(stderr, "MCP server error: %v\n", err)
		return 1
	}
	return 0
}
