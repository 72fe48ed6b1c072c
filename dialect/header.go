package dialect

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/annodoc/docerrors"
	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/model"
	"github.com/erraggy/annodoc/node"
)

var yamlErrorLine = regexp.MustCompile(`line (\d+)`)

// HeaderParser parses the header dialect: an "@api METHOD PATH SUMMARY"
// line, optional "group NAME" and "tags: [a,b]" lines, and a YAML block.
// The YAML block is translated into the node shape of the XML dialect.
type HeaderParser struct{}

// Parse parses one @api block.
func (HeaderParser) Parse(block extract.Block) (*node.Node, error) {
	lines := block.Lines()
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i == len(lines) {
		return nil, lexError(block, block.LineAt(0), 0, "empty header block")
	}

	headerLine := block.LineAt(i)
	fields := strings.Fields(lines[i])
	if fields[0] != "@api" {
		return nil, lexError(block, headerLine, 0, "expected @api header")
	}
	if len(fields) < 3 {
		return nil, lexError(block, headerLine, 0, "@api header needs a method and a path")
	}

	api := node.New("api", headerLine)
	api.Set("method", fields[1])
	if summary := strings.Join(fields[3:], " "); summary != "" {
		api.Set("summary", summary)
	}
	path := node.New("path", headerLine)
	path.Set("path", fields[2])
	api.Append(path)

	i++
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		line := block.LineAt(i)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "group ") || trimmed == "group":
			name := strings.Fields(trimmed)
			if len(name) != 2 {
				return nil, lexError(block, line, 0, "group line needs exactly one name")
			}
			if _, dup := api.Get("group"); dup {
				return nil, lexError(block, line, 0, "group declared twice")
			}
			api.Set("group", name[1])
			continue
		case strings.HasPrefix(trimmed, "tags:"):
			tags, err := model.ParseListLiteral(strings.TrimPrefix(trimmed, "tags:"))
			if err != nil {
				return nil, &docerrors.LexError{File: block.File, Line: line, Message: "invalid tags line", Cause: err}
			}
			for _, tag := range tags {
				t := node.New("tag", line)
				t.SetText(tag)
				api.Append(t)
			}
			continue
		}
		break
	}

	if i < len(lines) {
		t := &translator{block: block, api: api, path: path, offset: i}
		if err := t.parseBody(lines[i:]); err != nil {
			return nil, err
		}
	}
	return api, nil
}

// translator maps the YAML block of a header annotation onto XML-shaped nodes.
type translator struct {
	block  extract.Block
	api    *node.Node
	path   *node.Node
	offset int
	indent int
}

func (t *translator) parseBody(lines []string) error {
	text, indent, err := t.dedent(lines)
	if err != nil {
		return err
	}
	t.indent = indent
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		line := t.block.LineAt(t.offset)
		if m := yamlErrorLine.FindStringSubmatch(err.Error()); m != nil {
			n, _ := strconv.Atoi(m[1])
			line = t.block.LineAt(t.offset + n - 1)
		}
		return &docerrors.LexError{File: t.block.File, Line: line, Message: "invalid YAML block", Cause: err}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if err := t.rejectUnsupported(root); err != nil {
		return err
	}
	if root.Kind != yaml.MappingNode {
		return t.errorf(root, "expected a mapping after the header lines")
	}
	return t.topLevel(root)
}

// dedent removes the indentation shared by all non-blank lines.
func (t *translator) dedent(lines []string) (string, int, error) {
	indent := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		body := strings.TrimLeft(line, " ")
		if strings.HasPrefix(body, "\t") {
			return "", 0, lexError(t.block, t.block.LineAt(t.offset+i), 0, "tabs are not allowed for indentation")
		}
		if n := len(line) - len(body); indent < 0 || n < indent {
			indent = n
		}
	}
	if indent < 0 {
		return "", 0, nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= indent {
			out[i] = line[indent:]
		}
	}
	return strings.Join(out, "\n"), indent, nil
}

// rejectUnsupported refuses anchors, aliases, and custom tags.
func (t *translator) rejectUnsupported(n *yaml.Node) error {
	switch {
	case n.Kind == yaml.AliasNode:
		return t.errorf(n, "YAML aliases are not supported")
	case n.Anchor != "":
		return t.errorf(n, "YAML anchors are not supported")
	case n.Tag != "" && !strings.HasPrefix(n.Tag, "!!"):
		return t.errorf(n, "YAML tag %s is not supported", n.Tag)
	}
	for _, c := range n.Content {
		if err := t.rejectUnsupported(c); err != nil {
			return err
		}
	}
	return nil
}

func (t *translator) topLevel(root *yaml.Node) error {
	return t.eachPair(root, func(k, v *yaml.Node) error {
		switch k.Value {
		case "description":
			desc, err := t.description(k, v)
			if err != nil {
				return err
			}
			t.api.Append(desc)
		case "deprecated":
			s, err := t.scalar(k, v)
			if err != nil {
				return err
			}
			t.api.Set("deprecated", s)
		case "servers":
			names, err := t.scalarList(k, v)
			if err != nil {
				return err
			}
			for _, name := range names {
				server := node.New("server", t.line(k))
				server.SetText(name)
				t.api.Append(server)
			}
		case "params":
			return t.params(k, v, "param", t.path)
		case "queries":
			return t.params(k, v, "query", t.path)
		case "headers":
			return t.params(k, v, "header", t.api)
		case "request", "response":
			bodies, err := t.bodies(k, v)
			if err != nil {
				return err
			}
			t.api.Append(bodies...)
		default:
			return t.errorf(k, "unexpected key %q at the top level", k.Value)
		}
		return nil
	})
}

// params translates a mapping of name -> parameter spec into elem nodes.
func (t *translator) params(k, v *yaml.Node, elem string, parent *node.Node) error {
	if isNull(v) {
		return nil
	}
	if v.Kind != yaml.MappingNode {
		return t.errorf(k, "%s must be a mapping of names to parameters", k.Value)
	}
	return t.eachPair(v, func(name, spec *yaml.Node) error {
		p, err := t.param(elem, name, spec)
		if err != nil {
			return err
		}
		parent.Append(p)
		return nil
	})
}

func (t *translator) param(elem string, name, spec *yaml.Node) (*node.Node, error) {
	p := node.New(elem, t.line(name))
	p.Set("name", name.Value)
	if isNull(spec) {
		return p, nil
	}
	if spec.Kind == yaml.ScalarNode {
		// shorthand: "id: number"
		if err := t.setType(p, name, spec); err != nil {
			return nil, err
		}
		return p, nil
	}
	if spec.Kind != yaml.MappingNode {
		return nil, t.errorf(name, "parameter %q must be a mapping", name.Value)
	}

	var summary, description *yaml.Node
	err := t.eachPair(spec, func(k, v *yaml.Node) error {
		switch k.Value {
		case "type":
			return t.setType(p, k, v)
		case "items":
			return t.items(p, k, v)
		case "properties":
			return t.params(k, v, "param", p)
		case "enum":
			return t.enums(p, k, v)
		case "default":
			return t.setDefault(p, k, v)
		case "optional", "deprecated":
			s, err := t.scalar(k, v)
			if err != nil {
				return err
			}
			p.Set(k.Value, s)
		case "summary":
			summary = v
		case "description":
			description = v
		default:
			return t.errorf(k, "unexpected key %q in %s %q", k.Value, elem, name.Value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, t.applyText(p, summary, description)
}

// applyText maps summary/description keys: a lone description becomes the
// summary, both together give a summary plus a description element.
func (t *translator) applyText(p *node.Node, summary, description *yaml.Node) error {
	if summary != nil {
		s, err := t.scalar(summary, summary)
		if err != nil {
			return err
		}
		p.Set("summary", s)
		if description != nil {
			desc, err := t.description(description, description)
			if err != nil {
				return err
			}
			p.Append(desc)
		}
		return nil
	}
	if description != nil {
		s, err := t.scalar(description, description)
		if err != nil {
			return err
		}
		p.Set("summary", s)
	}
	return nil
}

// setType handles "type: array" as well as plain scalar types.
func (t *translator) setType(p *node.Node, k, v *yaml.Node) error {
	s, err := t.scalar(k, v)
	if err != nil {
		return err
	}
	if s == "array" {
		p.Set("array", "true")
		return nil
	}
	p.Set("type", s)
	return nil
}

func (t *translator) items(p *node.Node, k, v *yaml.Node) error {
	if v.Kind != yaml.MappingNode {
		return t.errorf(k, "items must be a mapping")
	}
	p.Set("array", "true")
	return t.eachPair(v, func(ik, iv *yaml.Node) error {
		switch ik.Value {
		case "type":
			s, err := t.scalar(ik, iv)
			if err != nil {
				return err
			}
			if s == "array" {
				return t.errorf(ik, "nested arrays are not supported")
			}
			p.Set("type", s)
			return nil
		case "properties":
			return t.params(ik, iv, "param", p)
		case "enum":
			return t.enums(p, ik, iv)
		default:
			return t.errorf(ik, "unexpected key %q in items", ik.Value)
		}
	})
}

// enums accepts a list of values or a mapping of value -> summary.
func (t *translator) enums(p *node.Node, k, v *yaml.Node) error {
	switch v.Kind {
	case yaml.SequenceNode:
		for _, item := range v.Content {
			if item.Kind != yaml.ScalarNode {
				return t.errorf(item, "enum values must be scalars")
			}
			e := node.New("enum", t.line(item))
			e.Set("value", item.Value)
			p.Append(e)
		}
		return nil
	case yaml.MappingNode:
		return t.eachPair(v, func(ek, ev *yaml.Node) error {
			e := node.New("enum", t.line(ek))
			e.Set("value", ek.Value)
			if !isNull(ev) {
				s, err := t.scalar(ek, ev)
				if err != nil {
					return err
				}
				e.Set("summary", s)
			}
			p.Append(e)
			return nil
		})
	default:
		return t.errorf(k, "enum must be a list or a mapping")
	}
}

// setDefault stores scalar defaults as written and list defaults in
// bracketed literal form.
func (t *translator) setDefault(p *node.Node, k, v *yaml.Node) error {
	if v.Kind == yaml.SequenceNode {
		values := make([]any, 0, len(v.Content))
		for _, item := range v.Content {
			if item.Kind != yaml.ScalarNode {
				return t.errorf(item, "default list elements must be scalars")
			}
			values = append(values, item.Value)
		}
		p.Set("default", model.FormatListLiteral(values))
		return nil
	}
	s, err := t.scalar(k, v)
	if err != nil {
		return err
	}
	p.Set("default", s)
	return nil
}

// bodies translates a request or response key; the value may be a single
// body or a list of bodies.
func (t *translator) bodies(k, v *yaml.Node) ([]*node.Node, error) {
	switch {
	case isNull(v):
		return nil, nil
	case v.Kind == yaml.MappingNode:
		return t.body(k.Value, k, v)
	case v.Kind == yaml.SequenceNode:
		var out []*node.Node
		for _, item := range v.Content {
			if item.Kind != yaml.MappingNode {
				return nil, t.errorf(item, "each %s must be a mapping", k.Value)
			}
			bodies, err := t.body(k.Value, item, item)
			if err != nil {
				return nil, err
			}
			out = append(out, bodies...)
		}
		return out, nil
	default:
		return nil, t.errorf(k, "%s must be a mapping or a list", k.Value)
	}
}

// body yields one node per content mimetype, all sharing the body-level keys.
func (t *translator) body(elem string, at, m *yaml.Node) ([]*node.Node, error) {
	shared := node.New(elem, t.line(at))
	var content *yaml.Node
	err := t.eachPair(m, func(k, v *yaml.Node) error {
		switch k.Value {
		case "description":
			desc, err := t.description(k, v)
			if err != nil {
				return err
			}
			shared.Append(desc)
		case "status":
			if elem != "response" {
				return t.errorf(k, "unexpected key %q in %s", k.Value, elem)
			}
			s, err := t.scalar(k, v)
			if err != nil {
				return err
			}
			shared.Set("status", s)
		case "name":
			s, err := t.scalar(k, v)
			if err != nil {
				return err
			}
			shared.Set("name", s)
		case "headers":
			return t.params(k, v, "header", shared)
		case "content":
			if v.Kind != yaml.MappingNode {
				return t.errorf(k, "content must be a mapping of mimetypes")
			}
			content = v
		default:
			return t.errorf(k, "unexpected key %q in %s", k.Value, elem)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if content == nil {
		return []*node.Node{shared}, nil
	}

	var out []*node.Node
	err = t.eachPair(content, func(mk, mv *yaml.Node) error {
		b := node.New(elem, t.line(mk))
		b.Attrs = append(b.Attrs, shared.Attrs...)
		b.Set("mimetype", mk.Value)
		b.Children = append(b.Children, shared.Children...)
		if err := t.media(b, mk, mv); err != nil {
			return err
		}
		out = append(out, b)
		return nil
	})
	return out, err
}

// media handles one content entry: {schema, example}.
func (t *translator) media(b *node.Node, mk, mv *yaml.Node) error {
	if isNull(mv) {
		return nil
	}
	if mv.Kind != yaml.MappingNode {
		return t.errorf(mk, "content %q must be a mapping", mk.Value)
	}
	return t.eachPair(mv, func(k, v *yaml.Node) error {
		switch k.Value {
		case "schema":
			return t.bodySchema(b, k, v)
		case "example":
			s, err := t.scalar(k, v)
			if err != nil {
				return err
			}
			ex := node.New("example", t.line(k))
			ex.Set("mimetype", mk.Value)
			ex.SetText(s)
			b.Append(ex)
			return nil
		default:
			return t.errorf(k, "unexpected key %q in content %q", k.Value, mk.Value)
		}
	})
}

func (t *translator) bodySchema(b *node.Node, k, v *yaml.Node) error {
	if isNull(v) {
		return nil
	}
	if v.Kind != yaml.MappingNode {
		return t.errorf(k, "schema must be a mapping")
	}
	return t.eachPair(v, func(sk, sv *yaml.Node) error {
		switch sk.Value {
		case "type":
			return t.setType(b, sk, sv)
		case "items":
			return t.items(b, sk, sv)
		case "properties":
			return t.params(sk, sv, "param", b)
		default:
			return t.errorf(sk, "unexpected key %q in schema", sk.Value)
		}
	})
}

func (t *translator) description(k, v *yaml.Node) (*node.Node, error) {
	s, err := t.scalar(k, v)
	if err != nil {
		return nil, err
	}
	d := node.New("description", t.line(k))
	d.SetText(s)
	return d, nil
}

func (t *translator) scalar(k, v *yaml.Node) (string, error) {
	if isNull(v) {
		return "", nil
	}
	if v.Kind != yaml.ScalarNode {
		return "", t.errorf(k, "%s must be a scalar", k.Value)
	}
	return v.Value, nil
}

// scalarList accepts a single scalar or a list of scalars.
func (t *translator) scalarList(k, v *yaml.Node) ([]string, error) {
	switch v.Kind {
	case yaml.ScalarNode:
		if isNull(v) {
			return nil, nil
		}
		return []string{v.Value}, nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(v.Content))
		for _, item := range v.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, t.errorf(item, "%s entries must be scalars", k.Value)
			}
			out = append(out, item.Value)
		}
		return out, nil
	default:
		return nil, t.errorf(k, "%s must be a scalar or a list", k.Value)
	}
}

func (t *translator) line(n *yaml.Node) int {
	if n.Line <= 0 {
		return t.block.LineAt(t.offset)
	}
	return t.block.LineAt(t.offset + n.Line - 1)
}

func (t *translator) errorf(n *yaml.Node, format string, args ...any) error {
	col := 0
	if n.Column > 0 {
		col = n.Column + t.indent
	}
	return lexError(t.block, t.line(n), col, fmt.Sprintf(format, args...))
}

// eachPair calls fn for every key/value pair of a mapping node in order.
// A key repeated within the same mapping is an error at its second use.
func (t *translator) eachPair(m *yaml.Node, fn func(k, v *yaml.Node) error) error {
	seen := make(map[string]int, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		if k.Kind == yaml.ScalarNode {
			if first, dup := seen[k.Value]; dup {
				return t.errorf(k, "key %s already defined at line %d", k.Value, t.line(m.Content[first]))
			}
			seen[k.Value] = i
		}
		if err := fn(k, m.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	if n == nil {
		return true
	}
	if n.Kind != yaml.ScalarNode {
		return false
	}
	if n.Tag == "!!null" {
		return true
	}
	return n.Tag == "" && n.Style == 0 && (n.Value == "" || n.Value == "~" || n.Value == "null")
}

func lexError(block extract.Block, line, col int, msg string) error {
	return &docerrors.LexError{File: block.File, Line: line, Column: col, Message: msg}
}
