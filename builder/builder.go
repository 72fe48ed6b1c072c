package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/annodoc/docerrors"
	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/internal/pathutil"
	"github.com/erraggy/annodoc/model"
	"github.com/erraggy/annodoc/node"
)

// Builder converts annotation trees into operations.
type Builder struct {
	aliases       *model.MimetypeAliases
	defaultStatus int
}

// New creates a Builder.
func New(opts ...BuilderOption) *Builder {
	cfg := defaultBuilderConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Builder{
		aliases:       model.NewMimetypeAliases(cfg.mimetypeAliases),
		defaultStatus: cfg.defaultStatus,
	}
}

// Aliases returns the mimetype alias table used by the builder.
func (b *Builder) Aliases() *model.MimetypeAliases {
	return b.aliases
}

// build carries the position of the block being built for error reporting.
type build struct {
	*Builder
	block extract.Block
}

// Build walks the tree rooted at an "api" node and returns the operation it
// describes. The returned operation has not been validated.
func (b *Builder) Build(root *node.Node, block extract.Block) (*model.Operation, error) {
	bd := &build{Builder: b, block: block}
	if root == nil {
		return nil, bd.errorf(nil, "", "no annotation tree")
	}
	if root.Name != "api" {
		return nil, bd.errorf(root, "", "root element must be <api>, found <%s>", root.Name)
	}

	method, _ := model.NormalizeMethod(root.Attr("method"))
	op := &model.Operation{
		Method:          method,
		Summary:         root.Attr("summary"),
		Group:           root.Attr("group"),
		DeprecatedSince: root.Attr("deprecated"),
		Source:          model.Source{File: block.File, Line: root.Line},
	}

	var (
		tags, servers []string
		seenPath      bool
	)
	for _, child := range root.Children {
		switch child.Name {
		case "description":
			if op.Description != nil {
				return nil, bd.errorf(child, "description", "description declared twice")
			}
			op.Description = richText(child)
		case "path":
			if seenPath {
				return nil, bd.errorf(child, "path", "path declared twice")
			}
			seenPath = true
			if err := bd.path(op, child); err != nil {
				return nil, err
			}
		case "tag":
			tags = append(tags, strings.TrimSpace(child.TextValue()))
		case "server":
			servers = append(servers, strings.TrimSpace(child.TextValue()))
		case "header":
			p, err := bd.param(child, indexed("headers", len(op.Headers)))
			if err != nil {
				return nil, err
			}
			op.Headers = append(op.Headers, p)
		case "request":
			body, err := bd.body(child, indexed("requests", len(op.Requests)), false)
			if err != nil {
				return nil, err
			}
			op.Requests = append(op.Requests, body)
		case "response":
			body, err := bd.body(child, indexed("responses", len(op.Responses)), true)
			if err != nil {
				return nil, err
			}
			op.Responses = append(op.Responses, body)
		default:
			return nil, bd.errorf(child, "", "unexpected element <%s> in <api>", child.Name)
		}
	}
	op.Tags = model.SortedSet(tags)
	op.Servers = model.SortedSet(servers)
	return op, nil
}

// path fills the path template, path parameters, and queries.
func (bd *build) path(op *model.Operation, n *node.Node) error {
	raw := strings.TrimSpace(n.Attr("path"))
	op.Path = model.PathTemplate{
		Raw:          raw,
		Placeholders: pathutil.Placeholders(raw),
	}
	for _, child := range n.Children {
		switch child.Name {
		case "param":
			p, err := bd.param(child, indexed("path.params", len(op.Path.Params)))
			if err != nil {
				return err
			}
			op.Path.Params = append(op.Path.Params, p)
		case "query":
			p, err := bd.param(child, indexed("queries", len(op.Queries)))
			if err != nil {
				return err
			}
			op.Queries = append(op.Queries, p)
		default:
			return bd.errorf(child, "path", "unexpected element <%s> in <path>", child.Name)
		}
	}
	return nil
}

// param builds a parameter and its subtree depth first. Nested <param>
// elements become children of the enclosing parameter.
func (bd *build) param(n *node.Node, field string) (*model.Parameter, error) {
	p := &model.Parameter{
		Name:            n.Attr("name"),
		Summary:         n.Attr("summary"),
		DeprecatedSince: n.Attr("deprecated"),
	}

	hasChildren := len(n.FindAll("param")) > 0
	typ, err := bd.resolveType(n, field, hasChildren)
	if err != nil {
		return nil, err
	}
	p.Type = typ

	if p.IsArray, err = bd.flag(n, field, "array"); err != nil {
		return nil, err
	}
	if p.Optional, err = bd.flag(n, field, "optional"); err != nil {
		return nil, err
	}
	if raw, ok := n.Get("default"); ok {
		// an uncoercible literal keeps a nil Value for the validator to report
		value, _ := model.ParseDefault(p.Type, p.IsArray, raw)
		p.Default = &model.Default{Raw: raw, Value: value}
	}

	for _, child := range n.Children {
		switch child.Name {
		case "description":
			if p.Description != nil {
				return nil, bd.errorf(child, field, "description declared twice")
			}
			p.Description = richText(child)
		case "param":
			c, err := bd.param(child, indexed(field+".children", len(p.Children)))
			if err != nil {
				return nil, err
			}
			p.Children = append(p.Children, c)
		case "enum":
			if p.Type == model.TypeObject {
				return nil, bd.schemaError(child, field, p.Name, "enum cannot be attached to an object parameter")
			}
			p.EnumValues = append(p.EnumValues, enumValue(child))
		default:
			return nil, bd.errorf(child, field, "unexpected element <%s> in <%s>", child.Name, n.Name)
		}
	}
	return p, nil
}

// body builds a request or response body.
func (bd *build) body(n *node.Node, field string, isResponse bool) (*model.Body, error) {
	body := &model.Body{
		Mimetype: bd.aliases.Canonical(n.Attr("mimetype")),
		Name:     n.Attr("name"),
	}

	if raw, ok := n.Get("status"); ok {
		if !isResponse {
			return nil, bd.schemaError(n, field, raw, "status is only valid on responses")
		}
		status, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, bd.schemaError(n, field+".status", raw, "status must be an integer")
		}
		body.Status = status
	} else if isResponse {
		body.Status = bd.defaultStatus
	}

	var err error
	if body.Type, err = bd.resolveType(n, field, len(n.FindAll("param")) > 0); err != nil {
		return nil, err
	}
	if body.IsArray, err = bd.flag(n, field, "array"); err != nil {
		return nil, err
	}

	for _, child := range n.Children {
		switch child.Name {
		case "description":
			if body.Description != nil {
				return nil, bd.errorf(child, field, "description declared twice")
			}
			body.Description = richText(child)
		case "header":
			p, err := bd.param(child, indexed(field+".headers", len(body.Headers)))
			if err != nil {
				return nil, err
			}
			body.Headers = append(body.Headers, p)
		case "param":
			p, err := bd.param(child, indexed(field+".schema", len(body.Schema)))
			if err != nil {
				return nil, err
			}
			body.Schema = append(body.Schema, p)
		case "example":
			if body.Example != nil {
				return nil, bd.errorf(child, field, "example declared twice")
			}
			mimetype := child.Attr("mimetype")
			if mimetype == "" {
				mimetype = body.Mimetype
			}
			body.Example = &model.Example{
				Mimetype: bd.aliases.Canonical(mimetype),
				Text:     child.TextValue(),
			}
		default:
			return nil, bd.errorf(child, field, "unexpected element <%s> in <%s>", child.Name, n.Name)
		}
	}
	return body, nil
}

// resolveType applies the type attribute, its aliases, and the default
// (none, or object when the element has child parameters).
func (bd *build) resolveType(n *node.Node, field string, hasChildren bool) (model.Type, error) {
	raw, ok := n.Get("type")
	if !ok || strings.TrimSpace(raw) == "" {
		if hasChildren {
			return model.TypeObject, nil
		}
		return model.TypeNone, nil
	}
	t, ok := model.ParseType(raw)
	if !ok {
		return "", bd.schemaError(n, field+".type", raw, fmt.Sprintf("unknown type %q", raw))
	}
	return t, nil
}

// flag parses a boolean attribute; absent means false.
func (bd *build) flag(n *node.Node, field, key string) (bool, error) {
	raw, ok := n.Get(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, bd.schemaError(n, field+"."+key, raw, fmt.Sprintf("%s must be true or false", key))
	}
	return v, nil
}

func enumValue(n *node.Node) model.Enum {
	e := model.Enum{
		Value:   n.Attr("value"),
		Summary: n.Attr("summary"),
	}
	if d := n.Find("description"); d != nil {
		e.Description = richText(d)
	}
	return e
}

func richText(n *node.Node) *model.RichText {
	return &model.RichText{Text: n.TextValue(), IsHTML: n.TextIsHTML}
}

func indexed(field string, i int) string {
	return field + "[" + strconv.Itoa(i) + "]"
}

func (bd *build) schemaError(n *node.Node, field string, value any, msg string) error {
	line := bd.block.Line
	if n != nil && n.Line > 0 {
		line = n.Line
	}
	return &docerrors.SchemaError{
		File:    bd.block.File,
		Line:    line,
		Field:   field,
		Value:   value,
		Message: msg,
	}
}

func (bd *build) errorf(n *node.Node, field, format string, args ...any) error {
	return bd.schemaError(n, field, nil, fmt.Sprintf(format, args...))
}
