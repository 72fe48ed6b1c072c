package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/annodoc/internal/mcpserver"
)

// HandleMCP starts the MCP server on stdin/stdout.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: annodoc mcp\n\n")
		Writef(fs.Output(), "Serve the scan, check_block, and languages tools over MCP (stdio).\n\n")
		Writef(fs.Output(), "Environment:\n")
		Writef(fs.Output(), "  ANNODOC_STRICT, ANNODOC_STRICT_PATHS, ANNODOC_NO_WARNINGS, ANNODOC_WORKERS, ANNODOC_COLLISION\n")
		Writef(fs.Output(), "  ANNODOC_CACHE_ENABLED, ANNODOC_CACHE_MAX_SIZE, ANNODOC_CACHE_TTL\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
