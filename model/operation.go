package model

import (
	"cmp"
	"slices"
	"strconv"
)

// Key is the identity of an operation.
type Key struct {
	Method string
	Path   string
}

// String renders the key as "METHOD /path".
func (k Key) String() string {
	return k.Method + " " + k.Path
}

// Compare orders keys by path, then method.
func (k Key) Compare(other Key) int {
	if c := cmp.Compare(k.Path, other.Path); c != 0 {
		return c
	}
	return cmp.Compare(k.Method, other.Method)
}

// PathTemplate is an operation path with its placeholders and the
// parameters declared for them.
type PathTemplate struct {
	Raw          string       `yaml:"raw" json:"raw"`
	Placeholders []string     `yaml:"placeholders,omitempty" json:"placeholders,omitempty"`
	Params       []*Parameter `yaml:"params,omitempty" json:"params,omitempty"`
}

// Example is a sample body tagged with its mimetype.
type Example struct {
	Mimetype string `yaml:"mimetype" json:"mimetype"`
	Text     string `yaml:"text" json:"text"`
}

// Body is a request or response payload for one mimetype.
// Status is zero for requests.
type Body struct {
	Status      int          `yaml:"status,omitempty" json:"status,omitempty"`
	Mimetype    string       `yaml:"mimetype" json:"mimetype"`
	Name        string       `yaml:"name,omitempty" json:"name,omitempty"`
	Type        Type         `yaml:"type" json:"type"`
	IsArray     bool         `yaml:"isArray,omitempty" json:"isArray,omitempty"`
	Description *RichText    `yaml:"description,omitempty" json:"description,omitempty"`
	Headers     []*Parameter `yaml:"headers,omitempty" json:"headers,omitempty"`
	Schema      []*Parameter `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example     *Example     `yaml:"example,omitempty" json:"example,omitempty"`
}

// Label identifies a body within its operation, e.g. "200 application/json (users)".
func (b *Body) Label() string {
	label := b.Mimetype
	if b.Status != 0 {
		label = strconv.Itoa(b.Status) + " " + label
	}
	if b.Name != "" {
		label += " (" + b.Name + ")"
	}
	return label
}

// Source locates the annotation block an operation was built from.
type Source struct {
	File string
	Line int
	// Seq orders blocks across a run: file index in the input list, then
	// block index in the file.
	Seq [2]int
}

// Less reports whether s was scanned before other.
func (s Source) Less(other Source) bool {
	if s.Seq[0] != other.Seq[0] {
		return s.Seq[0] < other.Seq[0]
	}
	return s.Seq[1] < other.Seq[1]
}

// Operation is one documented endpoint.
type Operation struct {
	Method          string       `yaml:"method" json:"method"`
	Path            PathTemplate `yaml:"path" json:"path"`
	Summary         string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Group           string       `yaml:"group,omitempty" json:"group,omitempty"`
	DeprecatedSince string       `yaml:"deprecatedSince,omitempty" json:"deprecatedSince,omitempty"`
	Description     *RichText    `yaml:"description,omitempty" json:"description,omitempty"`
	Tags            []string     `yaml:"tags,omitempty" json:"tags,omitempty"`
	Servers         []string     `yaml:"servers,omitempty" json:"servers,omitempty"`
	Headers         []*Parameter `yaml:"headers,omitempty" json:"headers,omitempty"`
	Queries         []*Parameter `yaml:"queries,omitempty" json:"queries,omitempty"`
	Requests        []*Body      `yaml:"requests,omitempty" json:"requests,omitempty"`
	Responses       []*Body      `yaml:"responses,omitempty" json:"responses,omitempty"`

	// Source is not part of the canonical output.
	Source Source `yaml:"-" json:"-"`
}

// Key returns the identity key of the operation.
func (o *Operation) Key() Key {
	return Key{Method: o.Method, Path: o.Path.Raw}
}

// SortedSet returns the distinct non-empty values in ascending order.
func SortedSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}
