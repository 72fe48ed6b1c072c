package extract

import (
	"fmt"
	"os"
)

// Source yields the annotation blocks of one input.
type Source interface {
	// Name identifies the source in diagnostics, usually a file path.
	Name() string
	// Blocks returns the comment blocks in source order.
	Blocks() ([]Block, error)
}

// FileSource reads a source file from disk.
type FileSource struct {
	Path     string
	Lang     *Language
	Encoding string
}

// Name returns the file path.
func (f *FileSource) Name() string {
	return f.Path
}

// Blocks reads, decodes, and extracts the comments of the file.
func (f *FileSource) Blocks() ([]Block, error) {
	lang := f.Lang
	if lang == nil {
		var ok bool
		if lang, ok = LanguageForFile(f.Path); !ok {
			return nil, fmt.Errorf("extract: no language for %s", f.Path)
		}
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	text, err := Decode(data, f.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, f.Path)
	}
	return Extract(lang, f.Path, text), nil
}

// TextSource extracts comments from in-memory source code.
type TextSource struct {
	File string
	Lang *Language
	Text string
}

// Name returns the file name given to the source.
func (t *TextSource) Name() string {
	return t.File
}

// Blocks extracts the comments of the text.
func (t *TextSource) Blocks() ([]Block, error) {
	lang := t.Lang
	if lang == nil {
		var ok bool
		if lang, ok = LanguageForFile(t.File); !ok {
			return nil, fmt.Errorf("extract: no language for %s", t.File)
		}
	}
	return Extract(lang, t.File, t.Text), nil
}

// RawSource serves annotation text that has already been stripped of
// comment syntax. The whole text is one block starting at line 1.
type RawSource struct {
	File string
	Text string
}

// Name returns the file name given to the source.
func (r *RawSource) Name() string {
	return r.File
}

// Blocks returns the text as a single block.
func (r *RawSource) Blocks() ([]Block, error) {
	return []Block{{File: r.File, Line: 1, Text: r.Text}}, nil
}
