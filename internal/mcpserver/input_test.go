package mcpserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/annodoc/docerrors"
	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/scanner"
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

func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "api", "v2"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "users.go"), []byte(usersGo), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "v2", "orders.rs"), []byte(ordersRs), 0o600))
	return dir
}

func TestSourceInputResolve(t *testing.T) {
	dir := writeTree(t)
	no := false

	tests := []struct {
		name  string
		input sourceInput
		names []string
	}{
		{
			name:  "recursive by default",
			input: sourceInput{Path: dir},
			names: []string{filepath.Join(dir, "api", "users.go"), filepath.Join(dir, "api", "v2", "orders.rs")},
		},
		{
			name:  "not recursive",
			input: sourceInput{Path: filepath.Join(dir, "api"), Recursive: &no},
			names: []string{filepath.Join(dir, "api", "users.go")},
		},
		{
			name:  "extension filter",
			input: sourceInput{Path: dir, Exts: []string{".rs"}},
			names: []string{filepath.Join(dir, "api", "v2", "orders.rs")},
		},
		{
			name:  "inline files keep their order",
			input: sourceInput{Files: []inlineFile{{Name: "b.rs", Content: ordersRs}, {Name: "a.go", Content: usersGo}}},
			names: []string{"b.rs", "a.go"},
		},
		{
			name:  "forced language",
			input: sourceInput{Lang: "go", Files: []inlineFile{{Name: "users.txt", Content: usersGo}}},
			names: []string{"users.txt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources, err := tt.input.resolve()
			require.NoError(t, err)
			names := make([]string, len(sources))
			for i, s := range sources {
				names[i] = s.Name()
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestSourceInputResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		input sourceInput
		want  string
	}{
		{name: "nothing", input: sourceInput{}, want: "exactly one of path or files"},
		{name: "both", input: sourceInput{Path: ".", Files: []inlineFile{{Name: "a.go"}}}, want: "only one of path or files"},
		{name: "unnamed file", input: sourceInput{Files: []inlineFile{{Content: "x"}}}, want: "files[0]: name is required"},
		{name: "unknown extension", input: sourceInput{Files: []inlineFile{{Name: "notes.txt"}}}, want: "no language for notes.txt"},
		{name: "unknown language", input: sourceInput{Lang: "cobol", Files: []inlineFile{{Name: "a.cob"}}}, want: `unknown language "cobol"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.resolve()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := sourceInput{}.resolve()
	assert.ErrorIs(t, err, docerrors.ErrConfig)
}

func TestSourceInputInlineLimit(t *testing.T) {
	old := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	t.Cleanup(func() { cfg.MaxInlineSize = old })

	_, err := sourceInput{Files: []inlineFile{{Name: "a.go", Content: usersGo}}}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANNODOC_MAX_INLINE_SIZE")
}

func TestMakeCacheKey(t *testing.T) {
	dir := writeTree(t)
	sources, err := sourceInput{Path: dir}.resolve()
	require.NoError(t, err)

	key := makeCacheKey("strict=false", sources)
	require.NotEmpty(t, key)
	assert.Equal(t, key, makeCacheKey("strict=false", sources), "stable for unchanged files")
	assert.NotEqual(t, key, makeCacheKey("strict=true", sources), "settings are part of the key")

	// touching a file changes its modification time
	path := filepath.Join(dir, "api", "users.go")
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.NotEqual(t, key, makeCacheKey("strict=false", sources))

	inline := []extract.Source{&extract.TextSource{File: "a.go", Text: "x"}}
	changed := []extract.Source{&extract.TextSource{File: "a.go", Text: "y"}}
	assert.NotEqual(t, makeCacheKey("", inline), makeCacheKey("", changed))

	missing := []extract.Source{&extract.FileSource{Path: filepath.Join(dir, "gone.go")}}
	assert.Empty(t, makeCacheKey("", missing))
	assert.Empty(t, makeCacheKey("", []extract.Source{&extract.RawSource{File: "raw"}}))
}

func TestScanCacheStore(t *testing.T) {
	store := &scanCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	r1, r2, r3 := &scanner.ScanResult{}, &scanner.ScanResult{}, &scanner.ScanResult{}

	store.put("a", r1, time.Minute)
	store.put("b", r2, time.Minute)
	assert.Same(t, r1, store.get("a"), "a is now the most recently used")
	store.put("c", r3, time.Minute)
	assert.Equal(t, 2, store.size())
	assert.Nil(t, store.get("b"), "least recently used entry is evicted")
	assert.Same(t, r3, store.get("c"))

	store.put("expired", r1, -time.Second)
	assert.Nil(t, store.get("expired"))

	store.put("stale", r2, -time.Second)
	store.sweep()
	assert.Nil(t, store.get("stale"))

	store.reset()
	assert.Equal(t, 0, store.size())
}
