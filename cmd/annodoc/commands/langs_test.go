package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLanguages(t *testing.T) {
	list := ListLanguages()
	require.NotEmpty(t, list.Languages)
	assert.Contains(t, list.Encodings, "gbk")

	var golang *LanguageInfo
	for i := range list.Languages {
		if list.Languages[i].Name == "go" {
			golang = &list.Languages[i]
		}
	}
	require.NotNil(t, golang)
	assert.Contains(t, golang.Exts, ".go")
	assert.Contains(t, golang.LineComments, "//")
	assert.Contains(t, golang.BlockComments, "/* */")
}

func TestHandleLangs(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, _ := captureOutput(t)
		require.NoError(t, HandleLangs(nil))
		assert.Contains(t, out.String(), "LANGUAGE")
		assert.Contains(t, out.String(), ".rs")
		assert.Contains(t, out.String(), "Encodings:")
	})

	t.Run("json", func(t *testing.T) {
		out, _ := captureOutput(t)
		require.NoError(t, HandleLangs([]string{"--format", "json"}))
		var list LanguageList
		require.NoError(t, json.Unmarshal(out.Bytes(), &list))
		assert.Equal(t, ListLanguages(), list)
	})

	t.Run("usage", func(t *testing.T) {
		captureOutput(t)
		assert.NoError(t, HandleLangs([]string{"--help"}))
		assert.Error(t, HandleLangs([]string{"--format", "xml"}))
	})
}
