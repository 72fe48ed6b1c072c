// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes annodoc capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/annodoc"
)

const serverInstructions = `annodoc MCP server: extracts API documentation from annotation comments (<api> XML blocks and @api header blocks) in source code.

Configuration: defaults are configurable via ANNODOC_* environment variables set in your MCP client config.

Key settings:
- ANNODOC_STRICT (default: false): stop at the first broken block instead of reporting diagnostics
- ANNODOC_STRICT_PATHS (default: false): reject paths containing '?', '#', whitespace, or '//'
- ANNODOC_NO_WARNINGS (default: false): suppress documentation warnings
- ANNODOC_WORKERS (default: GOMAXPROCS): number of files processed at once
- ANNODOC_COLLISION (default: accept-right): collision strategy for operations sharing a method and path
- ANNODOC_LIMIT (default: 100): default result limit
- ANNODOC_CACHE_ENABLED (default: true): cache scan results per session
- ANNODOC_CACHE_TTL (default: 15m): cache TTL

Caching: scan results are cached per session, keyed by the scan settings and each file's path, size, and modification time, so edits invalidate entries automatically.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		scanCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "annodoc", Version: annodoc.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan",
		Description: "Scan source files for API annotation comments and build the API document. Provide either path (file or directory, recursive by default) or files (in-memory sources). Returns operation summaries (method, path, summary, group, source) and diagnostics with file:line locations; use detail=true for full operation objects. Strict mode stops at the first broken block. Use offset/limit to paginate. Defaults are configurable via ANNODOC_STRICT, ANNODOC_STRICT_PATHS, ANNODOC_WORKERS, ANNODOC_COLLISION, and ANNODOC_NO_WARNINGS env vars.",
	}, handleScan)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_block",
		Description: "Check annotation text without touching the file system. With lang set, text is treated as a source file and every comment block is checked; without it, text is one comment block with the comment markers already removed. Returns, per annotation block, the dialect, the built operation or the error with its line, and any warnings.",
	}, handleCheckBlock)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "languages",
		Description: "List the supported source languages with their file extensions and comment markers, and the supported source encodings.",
	}, handleLanguages)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.DefaultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
