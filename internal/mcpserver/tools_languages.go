package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/annodoc/extract"
)

type languagesInput struct{}

type languageOutput struct {
	Name          string   `json:"name"`
	Exts          []string `json:"exts"`
	LineComments  []string `json:"line_comments,omitempty"`
	BlockComments []string `json:"block_comments,omitempty"`
}

type languagesOutput struct {
	Languages []languageOutput `json:"languages"`
	Encodings []string         `json:"encodings"`
}

func handleLanguages(_ context.Context, _ *mcp.CallToolRequest, _ languagesInput) (*mcp.CallToolResult, languagesOutput, error) {
	langs := extract.Languages()
	output := languagesOutput{
		Languages: make([]languageOutput, 0, len(langs)),
		Encodings: extract.Encodings(),
	}
	for _, l := range langs {
		out := languageOutput{
			Name:         l.Name,
			Exts:         l.Exts,
			LineComments: l.LineComments,
		}
		for _, d := range l.BlockComments {
			out.BlockComments = append(out.BlockComments, d.Begin+" "+d.End)
		}
		output.Languages = append(output.Languages, out)
	}
	return nil, output, nil
}
