package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callScan(t *testing.T, input scanInput) (*mcp.CallToolResult, scanOutput) {
	t.Helper()
	result, out, err := handleScan(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	if result != nil {
		return result, scanOutput{}
	}
	output, ok := out.(scanOutput)
	require.True(t, ok, "unexpected output type %T", out)
	return nil, output
}

func TestScanTool_Summaries(t *testing.T) {
	scanCache.reset()
	_, output := callScan(t, scanInput{Input: sourceInput{Path: writeTree(t)}})

	assert.Equal(t, 2, output.Files)
	assert.Equal(t, 3, output.OperationCount)
	assert.Equal(t, 1, output.ErrorCount)
	assert.Equal(t, 2, output.WarningCount)
	assert.Equal(t, 3, output.DiagnosticCount)
	assert.Nil(t, output.Operations)
	require.Len(t, output.Summaries, 3)

	var keys []string
	for _, s := range output.Summaries {
		keys = append(keys, s.Method+" "+s.Path)
	}
	assert.Equal(t, []string{"GET /orders", "POST /users/", "GET /users/{id}"}, keys)
	assert.Equal(t, "list orders", output.Summaries[0].Summary)
	assert.Contains(t, output.Summaries[0].Source, "orders.rs:1")

	var lex *diagnosticOutput
	for i, d := range output.Diagnostics {
		if d.Category == "lex" {
			lex = &output.Diagnostics[i]
		}
	}
	require.NotNil(t, lex)
	assert.Equal(t, "error", lex.Severity)
	assert.Contains(t, lex.Location, "orders.rs:9")
	assert.Contains(t, lex.Message, `"status"`)
}

func TestScanTool_DetailAndPagination(t *testing.T) {
	scanCache.reset()
	input := scanInput{
		Input:      sourceInput{Files: []inlineFile{{Name: "users.go", Content: usersGo}}},
		NoWarnings: ptr(true),
		Detail:     true,
		Offset:     1,
		Limit:      1,
	}
	_, output := callScan(t, input)

	assert.Equal(t, 2, output.OperationCount)
	assert.Equal(t, 0, output.DiagnosticCount)
	require.Len(t, output.Operations, 1)
	assert.Equal(t, "/users/{id}", output.Operations[0].Path.Raw)
	assert.Equal(t, []string{"id"}, output.Operations[0].Path.Placeholders)
	assert.Equal(t, 1, output.Returned)
}

func TestScanTool_Strict(t *testing.T) {
	scanCache.reset()
	result, _ := callScan(t, scanInput{
		Input:  sourceInput{Files: []inlineFile{{Name: "orders.rs", Content: ordersRs}}},
		Strict: ptr(true),
	})
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "lex error")
}

func TestScanTool_StrictPaths(t *testing.T) {
	scanCache.reset()
	files := []inlineFile{{Name: "a.go", Content: "// <api method=\"GET\" summary=\"x\"><path path=\"/a//b\" /></api>\n"}}

	_, output := callScan(t, scanInput{Input: sourceInput{Files: files}})
	assert.Equal(t, 1, output.OperationCount)
	assert.Equal(t, 0, output.ErrorCount)

	_, output = callScan(t, scanInput{Input: sourceInput{Files: files}, StrictPaths: ptr(true)})
	assert.Equal(t, 0, output.OperationCount)
	assert.Equal(t, 1, output.ErrorCount)
}

func TestScanTool_Collision(t *testing.T) {
	scanCache.reset()
	files := []inlineFile{
		{Name: "a.go", Content: usersGo},
		{Name: "b.go", Content: usersGo},
	}

	_, output := callScan(t, scanInput{Input: sourceInput{Files: files}})
	assert.Equal(t, 2, output.OperationCount)
	assert.Equal(t, "b.go:3", output.Summaries[1].Source, "accept-right keeps the later file")

	_, output = callScan(t, scanInput{Input: sourceInput{Files: files}, Collision: "accept-left"})
	assert.Equal(t, "a.go:3", output.Summaries[1].Source)

	result, _ := callScan(t, scanInput{Input: sourceInput{Files: files}, Collision: "coin-flip"})
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestScanTool_Cache(t *testing.T) {
	scanCache.reset()
	input := scanInput{Input: sourceInput{Files: []inlineFile{{Name: "users.go", Content: usersGo}}}}

	_, first := callScan(t, input)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, scanCache.size())

	_, second := callScan(t, input)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Summaries, second.Summaries)

	input.NoWarnings = ptr(true)
	_, third := callScan(t, input)
	assert.False(t, third.Cached, "different settings miss the cache")
	assert.Equal(t, 0, third.WarningCount)
}

func TestScanTool_BadInput(t *testing.T) {
	result, _ := callScan(t, scanInput{})
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func ptr[T any](v T) *T { return &v }
