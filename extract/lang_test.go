package extract

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageForFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "api/users.go", want: "go"},
		{path: "web/App.TSX", want: "javascript"},
		{path: "lib.rs", want: "rust"},
		{path: "Login.java", want: "java"},
		{path: "script.py", want: "python"},
		{path: "Makefile", want: ""},
		{path: "notes.txt", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := LanguageForFile(tt.path)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, lang.Name)
		})
	}
}

func TestLookupLanguage(t *testing.T) {
	lang, ok := LookupLanguage(" Go ")
	require.True(t, ok)
	assert.Equal(t, "go", lang.Name)

	_, ok = LookupLanguage("cobol")
	assert.False(t, ok)
}

func TestLanguagesOrdered(t *testing.T) {
	langs := Languages()
	assert.True(t, slices.IsSortedFunc(langs, func(a, b *Language) int {
		return strings.Compare(a.Name, b.Name)
	}))
	langs[0] = nil
	assert.NotNil(t, Languages()[0], "Languages must return a copy")
}

func TestAllExts(t *testing.T) {
	exts := AllExts()
	assert.True(t, slices.IsSorted(exts))
	assert.Equal(t, len(exts), len(slices.Compact(slices.Clone(exts))))
	assert.Contains(t, exts, ".rs")
	assert.Contains(t, exts, ".go")
}
