// Package testutil provides test utilities and fixtures for unit tests.
//
// Multi-file fixtures are txtar archives: one text file holding several
// named source files, each introduced by a "-- name --" line.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/erraggy/annodoc/extract"
)

// LoadArchive reads and parses the txtar archive at path.
func LoadArchive(t testing.TB, path string) *txtar.Archive {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to load archive %s: %v", path, err)
	}
	return ar
}

// ParseArchive parses an inline txtar archive.
func ParseArchive(data string) *txtar.Archive {
	return txtar.Parse([]byte(data))
}

// File returns the content of the named archive member.
func File(t testing.TB, ar *txtar.Archive, name string) string {
	t.Helper()
	for _, f := range ar.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("archive has no file %q", name)
	return ""
}

// Sources returns one in-memory source per archive member, in archive
// order. The language of each member is chosen by its extension.
func Sources(t testing.TB, ar *txtar.Archive) []extract.Source {
	t.Helper()
	sources := make([]extract.Source, 0, len(ar.Files))
	for _, f := range ar.Files {
		lang, ok := extract.LanguageForFile(f.Name)
		if !ok {
			t.Fatalf("archive member %q has no known language", f.Name)
		}
		sources = append(sources, &extract.TextSource{File: f.Name, Lang: lang, Text: string(f.Data)})
	}
	return sources
}

// WriteArchive materializes the archive under a fresh temporary directory
// and returns the directory.
func WriteArchive(t testing.TB, ar *txtar.Archive) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", f.Name, err)
		}
		if err := os.WriteFile(path, f.Data, 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", f.Name, err)
		}
	}
	return dir
}
