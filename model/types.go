package model

import (
	"strings"
)

// Type is the declared type of a parameter or body.
type Type string

const (
	// TypeNone marks a parameter or body without a value (e.g., an empty response).
	TypeNone Type = "none"
	// TypeString is a string scalar.
	TypeString Type = "string"
	// TypeNumber is a numeric scalar.
	TypeNumber Type = "number"
	// TypeBoolean is a boolean scalar.
	TypeBoolean Type = "boolean"
	// TypeObject is a structure with named children.
	TypeObject Type = "object"
)

// typeAliases maps every accepted spelling to its canonical Type.
var typeAliases = map[string]Type{
	"none":    TypeNone,
	"string":  TypeString,
	"str":     TypeString,
	"number":  TypeNumber,
	"integer": TypeNumber,
	"int":     TypeNumber,
	"float":   TypeNumber,
	"boolean": TypeBoolean,
	"bool":    TypeBoolean,
	"object":  TypeObject,
}

// ParseType resolves a type name, including its aliases, case-insensitively.
// The second result is false for an unknown name.
func ParseType(s string) (Type, bool) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// IsScalar reports whether values of the type are single literals.
func (t Type) IsScalar() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean:
		return true
	default:
		return false
	}
}

// String returns the canonical type name.
func (t Type) String() string {
	return string(t)
}

// Methods lists the recognized HTTP methods in canonical form.
var Methods = []string{
	"GET",
	"POST",
	"PUT",
	"PATCH",
	"DELETE",
	"HEAD",
	"OPTIONS",
	"CONNECT",
	"TRACE",
}

// NormalizeMethod upper-cases a method name and reports whether it is recognized.
func NormalizeMethod(s string) (string, bool) {
	m := strings.ToUpper(strings.TrimSpace(s))
	for _, known := range Methods {
		if m == known {
			return m, true
		}
	}
	return m, false
}
