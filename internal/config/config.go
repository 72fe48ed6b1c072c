// Package config loads the .annodoc.yaml project file.
//
// The file names the inputs of a scan and the defaults the CLI applies
// before its own flags:
//
//	version: 1
//	inputs:
//	  - dir: ./api
//	    recursive: true
//	    exts: [.go, .rs]
//	    encoding: gbk
//	strict: false
//	strictPaths: true
//	workers: 4
//	collision: accept-right
//	warnings: true
//	mimetypes:
//	  proto: application/x-protobuf
//	output:
//	  path: apidoc.json
//	  format: json
//
// Unknown keys and invalid values are reported as docerrors.ConfigError
// naming the offending field, e.g. "inputs[0].encoding".
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/annodoc/aggregator"
	"github.com/erraggy/annodoc/docerrors"
	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/internal/maputil"
	"github.com/erraggy/annodoc/scanner"
)

// FileName is the name looked up by Find.
const FileName = ".annodoc.yaml"

// CurrentVersion is the only supported file version.
const CurrentVersion = 1

// Output formats accepted by output.format.
var Formats = []string{"text", "json", "yaml"}

// Config is a parsed project file.
type Config struct {
	Version     int
	Inputs      []Input
	Strict      bool
	StrictPaths bool
	Workers     int
	Collision   aggregator.CollisionStrategy
	Warnings    bool
	Mimetypes   map[string]string
	Output      Output
}

// Input is one entry of the inputs list.
type Input struct {
	Dir       string
	Recursive bool
	Exts      []string
	Lang      string
	Encoding  string
}

// Output selects where and how the CLI writes the document.
type Output struct {
	Path   string
	Format string
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:   CurrentVersion,
		Collision: aggregator.DefaultStrategy,
		Warnings:  true,
		Output:    Output{Format: "text"},
	}
}

// Find looks for FileName in dir and its parents.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads and validates a project file. Relative input directories and
// the output path are resolved against the directory holding the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	for i := range c.Inputs {
		if !filepath.IsAbs(c.Inputs[i].Dir) {
			c.Inputs[i].Dir = filepath.Join(base, c.Inputs[i].Dir)
		}
	}
	if c.Output.Path != "" && !filepath.IsAbs(c.Output.Path) {
		c.Output.Path = filepath.Join(base, c.Output.Path)
	}
	return c, nil
}

// Parse decodes and validates the YAML text of a project file.
func Parse(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &docerrors.ConfigError{Option: FileName, Message: "invalid YAML", Cause: err}
	}
	c := Default()
	if len(doc.Content) == 0 {
		return c, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return c, nil
	}
	d := &decoder{}
	d.root(root, c)
	if d.err != nil {
		return nil, d.err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values that the decoder cannot check on its own.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &docerrors.ConfigError{Option: "version", Value: c.Version, Message: fmt.Sprintf("unsupported version, want %d", CurrentVersion)}
	}
	for i, in := range c.Inputs {
		field := fmt.Sprintf("inputs[%d]", i)
		if in.Dir == "" {
			return &docerrors.ConfigError{Option: field + ".dir", Message: "required"}
		}
		if in.Lang != "" {
			if _, ok := extract.LookupLanguage(in.Lang); !ok {
				return &docerrors.ConfigError{Option: field + ".lang", Value: in.Lang, Message: "unknown language"}
			}
		}
		if err := extract.CheckEncoding(in.Encoding); err != nil {
			return &docerrors.ConfigError{Option: field + ".encoding", Value: in.Encoding, Message: "unsupported encoding", Cause: err}
		}
	}
	if c.Workers < 0 {
		return &docerrors.ConfigError{Option: "workers", Value: c.Workers, Message: "must not be negative"}
	}
	if !aggregator.IsValidStrategy(string(c.Collision)) {
		return &docerrors.ConfigError{Option: "collision", Value: c.Collision, Message: fmt.Sprintf("must be one of %v", aggregator.ValidStrategies())}
	}
	for _, alias := range maputil.SortedKeys(c.Mimetypes) {
		if mt := c.Mimetypes[alias]; !strings.Contains(mt, "/") {
			return &docerrors.ConfigError{Option: "mimetypes." + alias, Value: mt, Message: "expected a type/subtype mimetype"}
		}
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return &docerrors.ConfigError{Option: "output.format", Value: c.Output.Format, Message: fmt.Sprintf("must be one of %v", Formats)}
	}
	return nil
}

// ExtractInputs converts the inputs list for extract.Collect.
func (c *Config) ExtractInputs() []extract.Input {
	out := make([]extract.Input, len(c.Inputs))
	for i, in := range c.Inputs {
		out[i] = extract.Input{
			Path:      in.Dir,
			Recursive: in.Recursive,
			Exts:      in.Exts,
			Lang:      in.Lang,
			Encoding:  in.Encoding,
		}
	}
	return out
}

// ScanOptions returns the scanner options the file selects, inputs included
// when the file lists any.
func (c *Config) ScanOptions() []scanner.Option {
	opts := []scanner.Option{
		scanner.WithStrictMode(c.Strict),
		scanner.WithStrictPaths(c.StrictPaths),
		scanner.WithWorkers(c.Workers),
		scanner.WithCollisionStrategy(string(c.Collision)),
		scanner.WithIncludeWarnings(c.Warnings),
	}
	if len(c.Mimetypes) > 0 {
		opts = append(opts, scanner.WithMimetypeAliases(c.Mimetypes))
	}
	if len(c.Inputs) > 0 {
		opts = append(opts, scanner.WithInputs(c.ExtractInputs()...))
	}
	return opts
}
