package validator

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/erraggy/annodoc/docerrors"
	"github.com/erraggy/annodoc/internal/pathutil"
	"github.com/erraggy/annodoc/model"
)

func (c *checker) checkMethodAndPath() error {
	op := c.op
	if _, ok := model.NormalizeMethod(op.Method); !ok || op.Method == "" {
		return c.schemaError("method", op.Method, "unrecognized HTTP method %q", op.Method)
	}
	if op.Path.Raw == "" {
		return c.schemaError("path", nil, "path is empty")
	}
	if !strings.HasPrefix(op.Path.Raw, "/") {
		return c.schemaError("path", op.Path.Raw, "path %q must start with /", op.Path.Raw)
	}
	return nil
}

func (c *checker) checkPlaceholders() error {
	op := c.op
	for _, name := range op.Path.Placeholders {
		if model.FindParam(op.Path.Params, name) == nil {
			return &docerrors.ReferenceError{
				File:    op.Source.File,
				Line:    op.Source.Line,
				Ref:     "{" + name + "}",
				Message: fmt.Sprintf("path %s has no parameter named %q", op.Path.Raw, name),
			}
		}
	}
	return nil
}

func (c *checker) checkChildrenAreObjects() error {
	for _, b := range c.bodies() {
		if len(b.Schema) > 0 && b.Type != model.TypeObject {
			return c.schemaError(b.field(), b.Type, "body with parameters must be of type object, not %s", b.Type)
		}
	}
	return c.walk(func(path string, p *model.Parameter) error {
		if len(p.Children) > 0 && p.Type != model.TypeObject {
			return c.schemaError(model.ParamPath(path, p), p.Type, "parameter with children must be of type object, not %s", p.Type)
		}
		return nil
	})
}

func (c *checker) checkEnumsAreScalar() error {
	return c.walk(func(path string, p *model.Parameter) error {
		if len(p.EnumValues) > 0 && !p.Type.IsScalar() {
			return c.schemaError(model.ParamPath(path, p), p.Type, "enum values require a scalar type, not %s", p.Type)
		}
		return nil
	})
}

func (c *checker) checkArrayDefaults() error {
	return c.walk(func(path string, p *model.Parameter) error {
		if p.Default == nil || !p.IsArray {
			return nil
		}
		if _, err := model.ParseDefault(p.Type, true, p.Default.Raw); err != nil {
			return &docerrors.SchemaError{
				File:    c.op.Source.File,
				Line:    c.op.Source.Line,
				Field:   model.ParamPath(path, p) + ".default",
				Value:   p.Default.Raw,
				Message: "array default does not fit the declared type",
				Cause:   err,
			}
		}
		return nil
	})
}

func (c *checker) checkPathTemplate() error {
	if err := pathutil.CheckTemplate(c.op.Path.Raw); err != nil {
		return &docerrors.SchemaError{
			File:    c.op.Source.File,
			Line:    c.op.Source.Line,
			Field:   "path",
			Value:   c.op.Path.Raw,
			Message: "malformed path template",
			Cause:   err,
		}
	}
	return nil
}

func (c *checker) checkScalarDefaults() error {
	return c.walk(func(path string, p *model.Parameter) error {
		if p.Default == nil || p.IsArray {
			return nil
		}
		if _, err := model.ParseDefault(p.Type, false, p.Default.Raw); err != nil {
			return &docerrors.SchemaError{
				File:    c.op.Source.File,
				Line:    c.op.Source.Line,
				Field:   model.ParamPath(path, p) + ".default",
				Value:   p.Default.Raw,
				Message: "default does not fit the declared type",
				Cause:   err,
			}
		}
		return nil
	})
}

func (c *checker) checkEnumValues() error {
	return c.walk(func(path string, p *model.Parameter) error {
		seen := make(map[string]bool, len(p.EnumValues))
		for _, e := range p.EnumValues {
			if seen[e.Value] {
				return c.schemaError(model.ParamPath(path, p)+".enumValues", e.Value, "duplicate enum value %q", e.Value)
			}
			seen[e.Value] = true
			if _, err := model.Coerce(p.Type, e.Value); err != nil {
				return c.schemaError(model.ParamPath(path, p)+".enumValues", e.Value, "enum value %q does not fit type %s", e.Value, p.Type)
			}
		}
		return nil
	})
}

func (c *checker) checkDuplicateNames() error {
	for _, l := range c.lists() {
		if err := c.uniqueNames(l.field, l.params); err != nil {
			return err
		}
	}
	return c.walk(func(path string, p *model.Parameter) error {
		return c.uniqueNames(model.ParamPath(path, p)+".children", p.Children)
	})
}

func (c *checker) uniqueNames(field string, params []*model.Parameter) error {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if p.Name == "" {
			return c.schemaError(field, nil, "parameter without a name")
		}
		if seen[p.Name] {
			return c.schemaError(field, p.Name, "duplicate parameter %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

func (c *checker) checkHeadersAreScalar() error {
	for _, l := range c.lists() {
		if !strings.HasSuffix(l.field, "headers") {
			continue
		}
		for i, p := range l.params {
			if p.Type == model.TypeObject {
				return c.schemaError(fmt.Sprintf("%s[%d](%s)", l.field, i, p.Name), p.Type, "header %q must be a scalar", p.Name)
			}
		}
	}
	return nil
}

func (c *checker) checkStatuses() error {
	for i, b := range c.op.Responses {
		if b.Status < 100 || b.Status > 599 {
			return c.schemaError(fmt.Sprintf("responses[%d].status", i), b.Status, "status %d is outside 100..599", b.Status)
		}
	}
	return nil
}

func (c *checker) checkDeprecations() error {
	if v := c.op.DeprecatedSince; v != "" && !isSemver(v) {
		return c.schemaError("deprecatedSince", v, "%q is not a semantic version", v)
	}
	return c.walk(func(path string, p *model.Parameter) error {
		if v := p.DeprecatedSince; v != "" && !isSemver(v) {
			return c.schemaError(model.ParamPath(path, p)+".deprecatedSince", v, "%q is not a semantic version", v)
		}
		return nil
	})
}

// isSemver accepts versions with or without the leading "v".
func isSemver(v string) bool {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.IsValid(v)
}

func (c *checker) checkDuplicateBodies() error {
	seen := make(map[string]bool)
	for i, b := range c.op.Requests {
		key := b.Mimetype + "\x00" + b.Name
		if seen[key] {
			return c.schemaError(fmt.Sprintf("requests[%d]", i), b.Label(), "duplicate request body %s", b.Label())
		}
		seen[key] = true
	}
	clear(seen)
	for i, b := range c.op.Responses {
		key := fmt.Sprintf("%d\x00%s\x00%s", b.Status, b.Mimetype, b.Name)
		if seen[key] {
			return c.schemaError(fmt.Sprintf("responses[%d]", i), b.Label(), "duplicate response body %s", b.Label())
		}
		seen[key] = true
	}
	return nil
}

func (c *checker) checkPathCharacters() error {
	raw := c.op.Path.Raw
	switch {
	case strings.Contains(raw, "//"):
		return c.schemaError("path", raw, "path contains consecutive slashes")
	case strings.ContainsAny(raw, "?#"):
		return c.schemaError("path", raw, "path contains a reserved character ('?' or '#')")
	case strings.ContainsAny(raw, " \t"):
		return c.schemaError("path", raw, "path contains whitespace")
	}
	return nil
}

// indexedBody pairs a body with its list and position for messages.
type indexedBody struct {
	*model.Body
	list  string
	index int
}

func (b indexedBody) field() string {
	return fmt.Sprintf("%s[%d]", b.list, b.index)
}

func (c *checker) bodies() []indexedBody {
	var out []indexedBody
	for i, b := range c.op.Requests {
		out = append(out, indexedBody{Body: b, list: "requests", index: i})
	}
	for i, b := range c.op.Responses {
		out = append(out, indexedBody{Body: b, list: "responses", index: i})
	}
	return out
}
