package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMimetypeAliases(t *testing.T) {
	aliases := NewMimetypeAliases(map[string]string{"MsgPack": "application/x-msgpack"})

	tests := []struct {
		input string
		want  string
	}{
		{"json", "application/json"},
		{"JSON", "application/json"},
		{"application/json", "application/json"},
		{" Application/JSON ", "application/json"},
		{"xml", "application/xml"},
		{"text", "text/plain"},
		{"msgpack", "application/x-msgpack"},
		{"image/png", "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, aliases.Canonical(tt.input))
		})
	}
}

func TestMimetypeAliasesOverride(t *testing.T) {
	aliases := NewMimetypeAliases(map[string]string{"json": "application/vnd.api+json"})
	assert.Equal(t, "application/vnd.api+json", aliases.Canonical("json"))
	assert.Equal(t, "application/json", DefaultMimetypeAliases["json"], "defaults are not mutated")
}

func TestMimetypeAliasesNil(t *testing.T) {
	var aliases *MimetypeAliases
	assert.Equal(t, "json", aliases.Canonical(" JSON "))
	assert.Empty(t, aliases.Table())
}
