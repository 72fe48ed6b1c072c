package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/annodoc/dialect"
	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/model"
	"github.com/erraggy/annodoc/scanner"
)

type checkBlockInput struct {
	Text        string `json:"text"                   jsonschema:"Annotation text, or source code when lang is set"`
	Lang        string `json:"lang,omitempty"         jsonschema:"Treat text as source code in this language and check every comment block"`
	File        string `json:"file,omitempty"         jsonschema:"File name used in locations (default: block)"`
	Line        int    `json:"line,omitempty"         jsonschema:"Source line of the first line of text (default 1)"`
	StrictPaths *bool  `json:"strict_paths,omitempty" jsonschema:"Reject paths containing '?', '#', whitespace, or '//'"`
	NoWarnings  *bool  `json:"no_warnings,omitempty"  jsonschema:"Suppress documentation warnings"`
}

type blockResult struct {
	Line      int                `json:"line"`
	Dialect   string             `json:"dialect"`
	Valid     bool               `json:"valid"`
	Operation *model.Operation   `json:"operation,omitempty"`
	Error     *diagnosticOutput  `json:"error,omitempty"`
	Warnings  []diagnosticOutput `json:"warnings,omitempty"`
}

type checkBlockOutput struct {
	Blocks      int           `json:"blocks"`
	Annotations int           `json:"annotations"`
	Valid       int           `json:"valid"`
	Results     []blockResult `json:"results,omitempty"`
}

func handleCheckBlock(_ context.Context, _ *mcp.CallToolRequest, input checkBlockInput) (*mcp.CallToolResult, any, error) {
	if input.Text == "" {
		return errResult(fmt.Errorf("text is required")), nil, nil
	}
	if int64(len(input.Text)) > cfg.MaxInlineSize {
		return errResult(fmt.Errorf("text size %d bytes exceeds maximum %d bytes", len(input.Text), cfg.MaxInlineSize)), nil, nil
	}
	file := input.File
	if file == "" {
		file = "block"
	}

	var blocks []extract.Block
	if input.Lang != "" {
		lang, ok := extract.LookupLanguage(input.Lang)
		if !ok {
			return errResult(fmt.Errorf("unknown language %q", input.Lang)), nil, nil
		}
		blocks = extract.Extract(lang, file, input.Text)
	} else {
		line := input.Line
		if line <= 0 {
			line = 1
		}
		blocks = []extract.Block{{File: file, Line: line, Text: input.Text}}
	}

	s := scanner.New()
	s.StrictPaths = cfg.StrictPaths
	if input.StrictPaths != nil {
		s.StrictPaths = *input.StrictPaths
	}
	noWarnings := cfg.NoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}
	s.IncludeWarnings = !noWarnings

	output := checkBlockOutput{Blocks: len(blocks)}
	for _, block := range blocks {
		kind := dialect.Detect(block.Text)
		if kind == dialect.KindNone {
			continue
		}
		output.Annotations++
		res := blockResult{Line: block.Line, Dialect: kind.String()}
		op, warnings, err := s.ProcessBlock(block)
		if err != nil {
			d := diagnosticFrom(scanner.DiagnosticFor(err, block.File, block.Line))
			res.Error = &d
		} else {
			res.Valid = true
			res.Operation = op
			output.Valid++
			res.Warnings = makeSlice[diagnosticOutput](len(warnings))
			for _, w := range warnings {
				res.Warnings = append(res.Warnings, diagnosticFrom(w))
			}
		}
		output.Results = append(output.Results, res)
	}
	return nil, output, nil
}
