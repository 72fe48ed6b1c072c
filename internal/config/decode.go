package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/annodoc/aggregator"
	"github.com/erraggy/annodoc/docerrors"
)

// decoder walks the YAML node tree and keeps the first error.
type decoder struct {
	err error
}

func (d *decoder) fail(field string, n *yaml.Node, format string, args ...any) {
	if d.err != nil {
		return
	}
	d.err = &docerrors.ConfigError{
		Option:  field,
		Message: fmt.Sprintf("line %d: ", n.Line) + fmt.Sprintf(format, args...),
	}
}

// mapping calls fn for each key of n, rejecting keys outside known.
func (d *decoder) mapping(field string, n *yaml.Node, known []string, fn func(key string, v *yaml.Node)) {
	if n.Kind != yaml.MappingNode {
		d.fail(field, n, "expected a mapping")
		return
	}
	for i := 0; i+1 < len(n.Content) && d.err == nil; i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if !slices.Contains(known, k.Value) {
			d.fail(join(field, k.Value), k, "unknown key %q", k.Value)
			return
		}
		fn(k.Value, v)
	}
}

func (d *decoder) root(n *yaml.Node, c *Config) {
	known := []string{"version", "inputs", "strict", "strictPaths", "workers", "collision", "warnings", "mimetypes", "output"}
	d.mapping("", n, known, func(key string, v *yaml.Node) {
		switch key {
		case "version":
			c.Version = d.integer(key, v)
		case "inputs":
			c.Inputs = d.inputs(v)
		case "strict":
			c.Strict = d.boolean(key, v)
		case "strictPaths":
			c.StrictPaths = d.boolean(key, v)
		case "workers":
			c.Workers = d.integer(key, v)
		case "collision":
			c.Collision = aggregator.CollisionStrategy(d.str(key, v))
		case "warnings":
			c.Warnings = d.boolean(key, v)
		case "mimetypes":
			c.Mimetypes = d.stringMap(key, v)
		case "output":
			d.mapping(key, v, []string{"path", "format"}, func(k string, v *yaml.Node) {
				switch k {
				case "path":
					c.Output.Path = d.str("output.path", v)
				case "format":
					c.Output.Format = strings.ToLower(d.str("output.format", v))
				}
			})
		}
	})
}

func (d *decoder) inputs(n *yaml.Node) []Input {
	if n.Kind != yaml.SequenceNode {
		d.fail("inputs", n, "expected a list")
		return nil
	}
	known := []string{"dir", "recursive", "exts", "lang", "encoding"}
	out := make([]Input, 0, len(n.Content))
	for i, item := range n.Content {
		field := fmt.Sprintf("inputs[%d]", i)
		var in Input
		// a bare string is shorthand for {dir: ...}
		if item.Kind == yaml.ScalarNode {
			in.Dir = item.Value
			out = append(out, in)
			continue
		}
		d.mapping(field, item, known, func(key string, v *yaml.Node) {
			sub := join(field, key)
			switch key {
			case "dir":
				in.Dir = d.str(sub, v)
			case "recursive":
				in.Recursive = d.boolean(sub, v)
			case "exts":
				in.Exts = d.list(sub, v)
			case "lang":
				in.Lang = d.str(sub, v)
			case "encoding":
				in.Encoding = d.str(sub, v)
			}
		})
		out = append(out, in)
	}
	return out
}

func (d *decoder) scalar(field string, n *yaml.Node) (string, bool) {
	if n.Kind != yaml.ScalarNode {
		d.fail(field, n, "expected a scalar value")
		return "", false
	}
	return n.Value, true
}

func (d *decoder) str(field string, n *yaml.Node) string {
	s, _ := d.scalar(field, n)
	return strings.TrimSpace(s)
}

func (d *decoder) boolean(field string, n *yaml.Node) bool {
	s, ok := d.scalar(field, n)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		d.fail(field, n, "%q is not a boolean", s)
	}
	return b
}

func (d *decoder) integer(field string, n *yaml.Node) int {
	s, ok := d.scalar(field, n)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		d.fail(field, n, "%q is not an integer", s)
	}
	return v
}

// list accepts a YAML sequence or a comma separated string.
func (d *decoder) list(field string, n *yaml.Node) []string {
	var raw []string
	switch n.Kind {
	case yaml.SequenceNode:
		for i, item := range n.Content {
			raw = append(raw, d.str(fmt.Sprintf("%s[%d]", field, i), item))
		}
	case yaml.ScalarNode:
		raw = strings.Split(n.Value, ",")
	default:
		d.fail(field, n, "expected a list")
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (d *decoder) stringMap(field string, n *yaml.Node) map[string]string {
	if n.Kind != yaml.MappingNode {
		d.fail(field, n, "expected a mapping")
		return nil
	}
	out := make(map[string]string, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i].Value
		out[k] = d.str(join(field, k), n.Content[i+1])
	}
	return out
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
