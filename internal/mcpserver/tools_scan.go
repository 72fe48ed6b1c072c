package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/annodoc/model"
	"github.com/erraggy/annodoc/scanner"
)

type scanInput struct {
	Input       sourceInput `json:"input"                  jsonschema:"The sources to scan"`
	Strict      *bool       `json:"strict,omitempty"       jsonschema:"Stop at the first broken block"`
	StrictPaths *bool       `json:"strict_paths,omitempty" jsonschema:"Reject paths containing '?', '#', whitespace, or '//'"`
	NoWarnings  *bool       `json:"no_warnings,omitempty"  jsonschema:"Suppress documentation warnings"`
	Workers     int         `json:"workers,omitempty"      jsonschema:"Files processed at once (default GOMAXPROCS)"`
	Collision   string      `json:"collision,omitempty"    jsonschema:"Collision strategy: accept-right, accept-left, fail, merge, or deduplicate"`
	Detail      bool        `json:"detail,omitempty"       jsonschema:"Return full operation objects instead of summaries"`
	Offset      int         `json:"offset,omitempty"       jsonschema:"Skip the first N operations and diagnostics (for pagination)"`
	Limit       int         `json:"limit,omitempty"        jsonschema:"Maximum number of operations and diagnostics to return (default 100). Applied independently to each array."`
}

type operationSummary struct {
	Method  string   `json:"method"`
	Path    string   `json:"path"`
	Summary string   `json:"summary,omitempty"`
	Group   string   `json:"group,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Source  string   `json:"source"`
}

type diagnosticOutput struct {
	Location string `json:"location,omitempty"`
	Severity string `json:"severity"`
	Category string `json:"category"`
	Key      string `json:"key,omitempty"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
}

type scanOutput struct {
	Files           int                `json:"files"`
	OperationCount  int                `json:"operation_count"`
	ErrorCount      int                `json:"error_count"`
	WarningCount    int                `json:"warning_count"`
	DiagnosticCount int                `json:"diagnostic_count"`
	Cached          bool               `json:"cached,omitempty"`
	Returned        int                `json:"returned"`
	Summaries       []operationSummary `json:"summaries,omitempty"`
	Operations      []*model.Operation `json:"operations,omitempty"`
	Diagnostics     []diagnosticOutput `json:"diagnostics,omitempty"`
}

func handleScan(ctx context.Context, _ *mcp.CallToolRequest, input scanInput) (*mcp.CallToolResult, any, error) {
	// Apply config defaults when input fields are omitted.
	strict := cfg.Strict
	if input.Strict != nil {
		strict = *input.Strict
	}
	strictPaths := cfg.StrictPaths
	if input.StrictPaths != nil {
		strictPaths = *input.StrictPaths
	}
	noWarnings := cfg.NoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}
	workers := cfg.Workers
	if input.Workers > 0 {
		workers = input.Workers
	}
	collision := cfg.Collision
	if input.Collision != "" {
		collision = input.Collision
	}

	sources, err := input.Input.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(fmt.Sprintf("strict=%t paths=%t warnings=%t collision=%s", strict, strictPaths, !noWarnings, collision), sources)
	}
	var result *scanner.ScanResult
	if key != "" {
		result = scanCache.get(key)
	}
	cached := result != nil
	if !cached {
		result, err = scanner.ScanWithOptions(ctx,
			scanner.WithSources(sources...),
			scanner.WithStrictMode(strict),
			scanner.WithStrictPaths(strictPaths),
			scanner.WithIncludeWarnings(!noWarnings),
			scanner.WithWorkers(workers),
			scanner.WithCollisionStrategy(collision),
		)
		if err != nil {
			return errResult(err), nil, nil
		}
		if key != "" {
			scanCache.put(key, result, cfg.CacheTTL)
		}
	}

	doc := result.Document
	output := scanOutput{
		Files:           result.Stats.Files,
		OperationCount:  len(doc.Operations),
		ErrorCount:      result.Stats.Errors,
		WarningCount:    result.Stats.Warnings,
		DiagnosticCount: len(doc.Diagnostics),
		Cached:          cached,
	}

	ops := paginate(doc.Operations, input.Offset, input.Limit)
	if input.Detail {
		output.Operations = ops
	} else {
		output.Summaries = makeSlice[operationSummary](len(ops))
		for _, op := range ops {
			output.Summaries = append(output.Summaries, summarize(op))
		}
	}
	diags := paginate(doc.Diagnostics, input.Offset, input.Limit)
	output.Diagnostics = makeSlice[diagnosticOutput](len(diags))
	for _, d := range diags {
		output.Diagnostics = append(output.Diagnostics, diagnosticFrom(d))
	}
	output.Returned = len(ops) + len(diags)

	return nil, output, nil
}

func summarize(op *model.Operation) operationSummary {
	return operationSummary{
		Method:  op.Method,
		Path:    op.Path.Raw,
		Summary: op.Summary,
		Group:   op.Group,
		Tags:    op.Tags,
		Source:  fmt.Sprintf("%s:%d", op.Source.File, op.Source.Line),
	}
}

func diagnosticFrom(d model.Diagnostic) diagnosticOutput {
	return diagnosticOutput{
		Location: d.Location(),
		Severity: d.Severity.String(),
		Category: string(d.Category),
		Key:      d.Key,
		Path:     d.Path,
		Message:  d.Message,
	}
}
