package extract

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Input selects source files to scan.
type Input struct {
	// Path is a file or directory
	Path string
	// Recursive descends into subdirectories
	Recursive bool
	// Exts restricts directory walks to these extensions (default: all known)
	Exts []string
	// Lang forces a language instead of detecting it by extension
	Lang string
	// Encoding of the files (default UTF-8)
	Encoding string
}

// Collect resolves inputs to file sources ordered by path. A file named
// directly is always included; directory entries are filtered by extension.
// Files reached through more than one input are returned once.
func Collect(inputs []Input) ([]Source, error) {
	seen := make(map[string]bool)
	var sources []*FileSource

	for i, in := range inputs {
		if err := CheckEncoding(in.Encoding); err != nil {
			return nil, err
		}
		var lang *Language
		if in.Lang != "" {
			l, ok := LookupLanguage(in.Lang)
			if !ok {
				return nil, fmt.Errorf("extract: inputs[%d]: unsupported language %q", i, in.Lang)
			}
			lang = l
		}

		paths, err := collectPaths(in, lang)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if seen[p] {
				continue
			}
			seen[p] = true
			sources = append(sources, &FileSource{Path: p, Lang: lang, Encoding: in.Encoding})
		}
	}

	slices.SortFunc(sources, func(a, b *FileSource) int {
		return strings.Compare(a.Path, b.Path)
	})
	out := make([]Source, len(sources))
	for i, s := range sources {
		out[i] = s
	}
	return out, nil
}

func collectPaths(in Input, lang *Language) ([]string, error) {
	info, err := os.Stat(in.Path)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if !info.IsDir() {
		if lang == nil {
			if _, ok := LanguageForFile(in.Path); !ok {
				return nil, fmt.Errorf("extract: no language for %s", in.Path)
			}
		}
		return []string{filepath.Clean(in.Path)}, nil
	}

	exts := normalizeExts(in.Exts)
	if len(exts) == 0 {
		if lang != nil {
			exts = lang.Exts
		} else {
			exts = AllExts()
		}
	}

	root := filepath.Clean(in.Path)
	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !in.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("extract: walking %s: %w", root, err)
	}
	return paths, nil
}

func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
