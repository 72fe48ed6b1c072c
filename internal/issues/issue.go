// Package issues provides a unified issue type for per-file diagnostics.
package issues

import (
	"fmt"

	"github.com/erraggy/annodoc/internal/severity"
)

// Category classifies the stage that produced an issue.
type Category string

const (
	// CategoryLex marks annotation text that could not be parsed.
	CategoryLex Category = "lex"
	// CategorySchema marks an invalid parameter tree.
	CategorySchema Category = "schema"
	// CategoryReference marks an unresolved placeholder.
	CategoryReference Category = "reference"
	// CategoryAggregation marks a merge-time collision or conflict.
	CategoryAggregation Category = "aggregation"
	// CategoryIO marks a source file that could not be read or decoded.
	CategoryIO Category = "io"
	// CategoryWarning marks a non-fatal documentation smell.
	CategoryWarning Category = "warning"
)

// Issue represents a single problem found while scanning a source file.
type Issue struct {
	// File is the source file path
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	// Line is the 1-based line number in the source file (0 if unknown)
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
	// Column is the 1-based column number in the source file (0 if unknown)
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
	// Key is the operation identity key ("GET /users/{id}") when known
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
	// Path is the dotted path to the problematic element (e.g., "queries.state")
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Message is a human-readable description of the issue
	Message string `json:"message" yaml:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Category identifies the pipeline stage that reported the issue
	Category Category `json:"category" yaml:"category"`
	// Err is the typed error behind the issue (nil for warnings)
	Err error `json:"-" yaml:"-"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	subject := i.Location()
	if i.Key != "" {
		subject = fmt.Sprintf("%s [%s]", subject, i.Key)
	}
	if i.Path != "" && i.Line > 0 {
		subject = fmt.Sprintf("%s %s", subject, i.Path)
	}
	if subject == "" {
		return fmt.Sprintf("%s %s", symbol, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, subject, i.Message)
}

// Location returns the source location in IDE-friendly format.
// Returns "file:line:column" or "file:line" if a line is known, the file
// alone if only the file is known, or the element path otherwise.
func (i Issue) Location() string {
	if i.Line == 0 {
		if i.File != "" {
			return i.File
		}
		return i.Path
	}
	loc := fmt.Sprintf("%d", i.Line)
	if i.Column > 0 {
		loc = fmt.Sprintf("%d:%d", i.Line, i.Column)
	}
	if i.File != "" {
		return i.File + ":" + loc
	}
	return loc
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// Less orders issues by position, category, key, path, and message so that
// diagnostics gathered concurrently render identically on every run.
func Less(a, b Issue) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	if a.Key != b.Key {
		return a.Key < b.Key
	}
	if a.Path != b.Path {
		return a.Path < b.Path
	}
	if a.Column != b.Column {
		return a.Column < b.Column
	}
	return a.Message < b.Message
}
