package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const usersGo = `package api

// <api method="GET" summary="get user">
//   <path path="/users/{id}">
//     <param name="id" type="number" />
//   </path>
// </api>
func GetUser() {}

// <api method="POST">
//   <path path="/users/" />
// </api>
func CreateUser() {}
`

const ordersRs = `/// @api GET /orders list orders
/// queries:
///   state:
///     type: string
///     default: normal
fn list_orders() {}

/// @api DELETE /orders/{id} cancel
/// status: gone
fn cancel() {}
`

// writeTree creates api/users.go and api/v2/orders.rs under a temp dir.
func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "api", "v2"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "users.go"), []byte(usersGo), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "v2", "orders.rs"), []byte(ordersRs), 0o600))
	return dir
}

// captureOutput redirects the command writers for the duration of a test.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return &out, &errOut
}
