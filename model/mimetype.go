package model

import (
	"maps"
	"strings"
)

// DefaultMimetypeAliases maps shorthand mimetypes to their canonical form.
var DefaultMimetypeAliases = map[string]string{
	"json": "application/json",
	"xml":  "application/xml",
	"yaml": "application/yaml",
	"yml":  "application/yaml",
	"text": "text/plain",
	"html": "text/html",
	"form": "application/x-www-form-urlencoded",
}

// MimetypeAliases resolves mimetype spellings to one canonical form.
// The zero value only lower-cases and trims.
type MimetypeAliases struct {
	aliases map[string]string
}

// NewMimetypeAliases builds an alias table from DefaultMimetypeAliases
// extended (or overridden) by extra. Keys and values are lower-cased.
func NewMimetypeAliases(extra map[string]string) *MimetypeAliases {
	table := make(map[string]string, len(DefaultMimetypeAliases)+len(extra))
	maps.Copy(table, DefaultMimetypeAliases)
	for k, v := range extra {
		table[normalizeMimetype(k)] = normalizeMimetype(v)
	}
	return &MimetypeAliases{aliases: table}
}

// Canonical returns the canonical form of a mimetype.
// Unknown mimetypes are returned lower-cased and trimmed.
func (m *MimetypeAliases) Canonical(mimetype string) string {
	mt := normalizeMimetype(mimetype)
	if m == nil {
		return mt
	}
	if canonical, ok := m.aliases[mt]; ok {
		return canonical
	}
	return mt
}

// Table returns a copy of the alias table.
func (m *MimetypeAliases) Table() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m.aliases)
}

func normalizeMimetype(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
