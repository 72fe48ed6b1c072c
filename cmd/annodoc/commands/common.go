// Package commands provides CLI command handlers for annodoc.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/annodoc/aggregator"
	"github.com/erraggy/annodoc/internal/cliutil"
	"github.com/erraggy/annodoc/internal/pathutil"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// stdout and stderr are swapped by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// ValidateCollisionStrategy validates a collision strategy name and returns an error if invalid.
func ValidateCollisionStrategy(value string) error {
	if value != "" && !aggregator.IsValidStrategy(value) {
		return fmt.Errorf("invalid collision strategy '%s'. Valid strategies: %v", value, aggregator.ValidStrategies())
	}
	return nil
}

// MarshalStructured marshals data as indented JSON or YAML.
func MarshalStructured(data any, format string) ([]byte, error) {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
		out = append(out, '\n')
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling to %s: %w", format, err)
	}
	return out, nil
}

// WriteOutput writes data to path, or to stdout when path is empty.
// Files are created with 0600 permissions; symlinks and directories are refused.
func WriteOutput(path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	clean, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(clean, data, 0o600); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// ParseList splits a comma separated flag value, dropping empty items.
func ParseList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// NewLogger returns a text logger on stderr; verbose selects debug level.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}
