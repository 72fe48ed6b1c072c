package model

import (
	"fmt"
	"strconv"
)

// RichText is a description that is either plain text or HTML.
type RichText struct {
	Text   string `yaml:"text" json:"text"`
	IsHTML bool   `yaml:"isHtml" json:"isHtml"`
}

// Default holds a default value both as written and coerced.
// Value is nil when Raw does not coerce to the declared type.
type Default struct {
	Raw   string `yaml:"raw" json:"raw"`
	Value any    `yaml:"value" json:"value"`
}

// Enum is one allowed value of a scalar parameter.
type Enum struct {
	Value       string    `yaml:"value" json:"value"`
	Summary     string    `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description *RichText `yaml:"description,omitempty" json:"description,omitempty"`
}

// Parameter is a query, header, path, request, or response field.
// Children are owned by their parent; a parameter tree never shares nodes.
type Parameter struct {
	Name            string       `yaml:"name" json:"name"`
	Type            Type         `yaml:"type" json:"type"`
	IsArray         bool         `yaml:"isArray,omitempty" json:"isArray,omitempty"`
	Optional        bool         `yaml:"optional,omitempty" json:"optional,omitempty"`
	Default         *Default     `yaml:"default,omitempty" json:"default,omitempty"`
	Summary         string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description     *RichText    `yaml:"description,omitempty" json:"description,omitempty"`
	DeprecatedSince string       `yaml:"deprecatedSince,omitempty" json:"deprecatedSince,omitempty"`
	EnumValues      []Enum       `yaml:"enumValues,omitempty" json:"enumValues,omitempty"`
	Children        []*Parameter `yaml:"children,omitempty" json:"children,omitempty"`
}

// Child returns the direct child with the given name, or nil.
func (p *Parameter) Child(name string) *Parameter {
	if p == nil {
		return nil
	}
	return FindParam(p.Children, name)
}

// FindParam returns the first parameter in params with the given name, or nil.
func FindParam(params []*Parameter, name string) *Parameter {
	for _, p := range params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ParamVisitor is called for every parameter of a tree in depth-first order.
// path locates the parameter, e.g. "responses[0].schema[1].children[0]".
// Returning an error stops the walk.
type ParamVisitor func(path string, p *Parameter) error

// WalkParams visits params and all their descendants depth first.
func WalkParams(prefix string, params []*Parameter, visit ParamVisitor) error {
	for i, p := range params {
		path := prefix + "[" + strconv.Itoa(i) + "]"
		if err := visit(path, p); err != nil {
			return err
		}
		if err := WalkParams(path+".children", p.Children, visit); err != nil {
			return err
		}
	}
	return nil
}

// ParamPath joins a walk path and a parameter name for messages,
// e.g. "queries[0]" and "state" give "queries[0](state)".
func ParamPath(path string, p *Parameter) string {
	if p == nil || p.Name == "" {
		return path
	}
	return fmt.Sprintf("%s(%s)", path, p.Name)
}
