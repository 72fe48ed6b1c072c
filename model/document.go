package model

import (
	"slices"

	"github.com/erraggy/annodoc/internal/issues"
	"github.com/erraggy/annodoc/internal/severity"
)

// Diagnostic is a per-file problem reported alongside the operations.
type Diagnostic = issues.Issue

// Document is the aggregated result of a scan run.
type Document struct {
	// Operations sorted by path, then method
	Operations []*Operation `yaml:"operations" json:"operations"`
	// Diagnostics sorted by file, line, category, message
	Diagnostics []Diagnostic `yaml:"diagnostics,omitempty" json:"diagnostics,omitempty"`

	index map[Key]*Operation
}

// NewDocument sorts the operations and diagnostics and indexes operations by key.
// The slices are taken over by the document.
func NewDocument(ops []*Operation, diags []Diagnostic) *Document {
	slices.SortStableFunc(ops, func(a, b *Operation) int {
		return a.Key().Compare(b.Key())
	})
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		switch {
		case issues.Less(a, b):
			return -1
		case issues.Less(b, a):
			return 1
		default:
			return 0
		}
	})
	if ops == nil {
		ops = []*Operation{}
	}

	index := make(map[Key]*Operation, len(ops))
	for _, op := range ops {
		index[op.Key()] = op
	}
	return &Document{Operations: ops, Diagnostics: diags, index: index}
}

// Lookup returns the operation for method and path, or nil.
func (d *Document) Lookup(method, path string) *Operation {
	if d == nil {
		return nil
	}
	return d.index[Key{Method: method, Path: path}]
}

// Keys returns the operation keys in document order.
func (d *Document) Keys() []Key {
	keys := make([]Key, 0, len(d.Operations))
	for _, op := range d.Operations {
		keys = append(keys, op.Key())
	}
	return keys
}

// ErrorCount returns the number of diagnostics at error severity or above.
func (d *Document) ErrorCount() int {
	n := 0
	for _, diag := range d.Diagnostics {
		if diag.Severity.IsFailure() {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning diagnostics.
func (d *Document) WarningCount() int {
	n := 0
	for _, diag := range d.Diagnostics {
		if diag.Severity == severity.SeverityWarning {
			n++
		}
	}
	return n
}
