package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseListLiteral splits a bracketed list literal such as "[normal,lock]"
// into its elements. Elements are separated by unescaped commas and trimmed
// of surrounding whitespace; a backslash escapes the following character.
// "[]" yields an empty, non-nil slice.
func ParseListLiteral(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("list literal %q must be enclosed in brackets", s)
	}
	body := s[1 : len(s)-1]
	if strings.TrimSpace(body) == "" {
		return []string{}, nil
	}

	var (
		items   []string
		current strings.Builder
		escaped bool
	)
	for _, r := range body {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ',':
			items = append(items, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		return nil, fmt.Errorf("list literal %q ends with a dangling escape", s)
	}
	items = append(items, strings.TrimSpace(current.String()))
	return items, nil
}

// FormatListLiteral renders values in the bracketed form accepted by
// ParseListLiteral, escaping commas, brackets, and backslashes.
func FormatListLiteral(values []any) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		for _, r := range FormatScalar(v) {
			if r == ',' || r == '\\' || r == '[' || r == ']' {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// FormatScalar renders a coerced scalar back to its literal form.
func FormatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}

// Coerce converts a scalar literal to the Go value for t:
// string for TypeString, float64 for TypeNumber, bool for TypeBoolean.
// Object and none types do not accept literals.
func Coerce(t Type, s string) (any, error) {
	switch t {
	case TypeString:
		return s, nil
	case TypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%q is not a number", s)
		}
		return n, nil
	case TypeBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", s)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("type %s does not accept a literal value", t)
	}
}

// ParseDefault coerces a raw default literal for a parameter of type t.
// When isArray is true the literal must be a bracketed list and the result
// is a []any whose elements are coerced one by one.
func ParseDefault(t Type, isArray bool, raw string) (any, error) {
	if !isArray {
		return Coerce(t, raw)
	}
	items, err := ParseListLiteral(raw)
	if err != nil {
		return nil, err
	}
	values := make([]any, 0, len(items))
	for i, item := range items {
		v, err := Coerce(t, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		values = append(values, v)
	}
	return values, nil
}
