// Package node defines the generic element tree shared by both annotation
// dialects. A parser produces a tree of [Node] values; the schema builder
// consumes it. Nodes carry the source line they started on so that later
// stages can report positions.
package node

import (
	"strings"
)

// Attr is a single key="value" attribute.
type Attr struct {
	Key   string
	Value string
}

// Node is one element of an annotation tree.
type Node struct {
	// Name is the element name ("api", "param", "response", ...)
	Name string
	// Attrs in source order
	Attrs []Attr
	// Children in source order
	Children []*Node
	// Text is the raw character or CDATA content, nil when absent
	Text *string
	// TextIsHTML is set for description elements declared type="html"
	TextIsHTML bool
	// Line is the 1-based source line of the opening tag or key
	Line int
}

// New returns a node with the given name and line.
func New(name string, line int) *Node {
	return &Node{Name: name, Line: line}
}

// Get returns the value of the attribute key.
func (n *Node) Get(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Attr returns the value of the attribute key, or "" when absent.
func (n *Node) Attr(key string) string {
	v, _ := n.Get(key)
	return v
}

// Set replaces the attribute key, appending it when absent.
func (n *Node) Set(key, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// SetText stores text content.
func (n *Node) SetText(text string) {
	n.Text = &text
}

// TextValue returns the text content, or "" when absent.
func (n *Node) TextValue() string {
	if n.Text == nil {
		return ""
	}
	return *n.Text
}

// Find returns the first direct child with the given name, or nil.
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindAll returns the direct children with the given name in order.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// String renders the tree in a compact indented form for debugging and tests.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Name)
	for _, a := range n.Attrs {
		sb.WriteString(" " + a.Key + "=" + quote(a.Value))
	}
	if n.Text != nil {
		if n.TextIsHTML {
			sb.WriteString(" html")
		}
		sb.WriteString(" text=" + quote(*n.Text))
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		c.write(sb, depth+1)
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
