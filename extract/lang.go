package extract

import (
	"path/filepath"
	"slices"
	"strings"
)

// Delim is a pair of begin/end markers with an optional escape sequence.
type Delim struct {
	Begin  string
	End    string
	Escape string
}

// Language describes the comment and string syntax of a programming language.
type Language struct {
	Name          string
	Exts          []string
	LineComments  []string
	BlockComments []Delim
	Strings       []Delim
}

var (
	cStrings  = []Delim{{Begin: `"`, End: `"`, Escape: `\`}, {Begin: `'`, End: `'`, Escape: `\`}}
	cComments = []Delim{{Begin: "/*", End: "*/"}}
)

// languages is ordered by name.
var languages = []*Language{
	{Name: "c", Exts: []string{".c", ".h", ".cpp", ".cxx", ".cc", ".hpp"}, LineComments: []string{"//"}, BlockComments: cComments, Strings: cStrings},
	{Name: "csharp", Exts: []string{".cs"}, LineComments: []string{"///", "//"}, BlockComments: cComments, Strings: cStrings},
	{Name: "dart", Exts: []string{".dart"}, LineComments: []string{"///", "//"}, BlockComments: cComments, Strings: cStrings},
	{
		Name:          "go",
		Exts:          []string{".go"},
		LineComments:  []string{"//"},
		BlockComments: cComments,
		Strings:       []Delim{{Begin: `"`, End: `"`, Escape: `\`}, {Begin: "`", End: "`"}, {Begin: `'`, End: `'`, Escape: `\`}},
	},
	{Name: "java", Exts: []string{".java"}, LineComments: []string{"//"}, BlockComments: cComments, Strings: cStrings},
	{
		Name:          "javascript",
		Exts:          []string{".js", ".jsx", ".mjs", ".ts", ".tsx"},
		LineComments:  []string{"//"},
		BlockComments: cComments,
		Strings:       []Delim{{Begin: `"`, End: `"`, Escape: `\`}, {Begin: `'`, End: `'`, Escape: `\`}, {Begin: "`", End: "`", Escape: `\`}},
	},
	{Name: "kotlin", Exts: []string{".kt", ".kts"}, LineComments: []string{"//"}, BlockComments: cComments, Strings: cStrings},
	{
		Name:          "lua",
		Exts:          []string{".lua"},
		LineComments:  []string{"--"},
		BlockComments: []Delim{{Begin: "--[[", End: "]]"}},
		Strings:       cStrings,
	},
	{
		Name:          "perl",
		Exts:          []string{".pl", ".pm"},
		LineComments:  []string{"#"},
		BlockComments: []Delim{{Begin: "\n=pod", End: "\n=cut"}},
		Strings:       cStrings,
	},
	{Name: "php", Exts: []string{".php"}, LineComments: []string{"//", "#"}, BlockComments: cComments, Strings: cStrings},
	{
		Name:          "python",
		Exts:          []string{".py"},
		LineComments:  []string{"#"},
		BlockComments: []Delim{{Begin: `"""`, End: `"""`}, {Begin: `'''`, End: `'''`}},
		Strings:       cStrings,
	},
	{
		Name:          "ruby",
		Exts:          []string{".rb"},
		LineComments:  []string{"#"},
		BlockComments: []Delim{{Begin: "\n=begin", End: "\n=end"}},
		Strings:       cStrings,
	},
	{
		Name:          "rust",
		Exts:          []string{".rs"},
		LineComments:  []string{"///", "//!", "//"},
		BlockComments: cComments,
		Strings:       []Delim{{Begin: `"`, End: `"`, Escape: `\`}},
	},
	{Name: "scala", Exts: []string{".scala"}, LineComments: []string{"//"}, BlockComments: cComments, Strings: cStrings},
	{Name: "shell", Exts: []string{".sh", ".bash"}, LineComments: []string{"#"}, Strings: cStrings},
	{Name: "swift", Exts: []string{".swift"}, LineComments: []string{"///", "//"}, BlockComments: cComments, Strings: []Delim{{Begin: `"`, End: `"`, Escape: `\`}}},
}

// Languages returns the supported languages ordered by name.
func Languages() []*Language {
	return slices.Clone(languages)
}

// LookupLanguage returns the language with the given name.
func LookupLanguage(name string) (*Language, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, l := range languages {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// LanguageForFile picks the language by the file extension.
func LanguageForFile(path string) (*Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}
	for _, l := range languages {
		if slices.Contains(l.Exts, ext) {
			return l, true
		}
	}
	return nil, false
}

// AllExts returns every extension of every language, sorted.
func AllExts() []string {
	var exts []string
	for _, l := range languages {
		exts = append(exts, l.Exts...)
	}
	slices.Sort(exts)
	return slices.Compact(exts)
}
