package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "annodoc-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m))
	return m
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	assert.ElementsMatch(t, []string{"scan", "check_block", "languages"}, names)
}

func TestIntegration_CallTool_Scan(t *testing.T) {
	scanCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "scan",
		Arguments: map[string]any{
			"input": map[string]any{
				"files": []any{
					map[string]any{"name": "users.go", "content": usersGo},
					map[string]any{"name": "orders.rs", "content": ordersRs},
				},
			},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError, "scan should succeed in tolerant mode")

	structured := unmarshalStructured(t, result)
	assert.Equal(t, float64(2), structured["files"])
	assert.Equal(t, float64(3), structured["operation_count"])
	assert.Equal(t, float64(1), structured["error_count"])

	summaries, ok := structured["summaries"].([]any)
	require.True(t, ok, "summaries should be an array")
	first, ok := summaries[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/orders", first["path"])
}

func TestIntegration_CallTool_CheckBlock(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "check_block",
		Arguments: map[string]any{
			"text": "@api GET /users/{id} get user\nparams:\n  id: number",
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, float64(1), structured["valid"])
	results, ok := structured["results"].([]any)
	require.True(t, ok)
	first, ok := results[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "header", first["dialect"])
	op, ok := first["operation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "GET", op["method"])
}

func TestIntegration_CallTool_ScanError(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "scan",
		Arguments: map[string]any{"input": map[string]any{}},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
