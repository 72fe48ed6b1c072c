package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListLiteral(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "two strings", input: "[normal,lock]", want: []string{"normal", "lock"}},
		{name: "whitespace trimmed", input: " [ a , b ] ", want: []string{"a", "b"}},
		{name: "empty list", input: "[]", want: []string{}},
		{name: "blank list", input: "[  ]", want: []string{}},
		{name: "single element", input: "[x]", want: []string{"x"}},
		{name: "escaped comma", input: `[a\,b,c]`, want: []string{"a,b", "c"}},
		{name: "escaped bracket", input: `[a\]]`, want: []string{"a]"}},
		{name: "empty element kept", input: "[a,,b]", want: []string{"a", "", "b"}},
		{name: "missing brackets", input: "a,b", wantErr: true},
		{name: "missing closing bracket", input: "[a,b", wantErr: true},
		{name: "dangling escape", input: `[a\]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseListLiteral(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListLiteralRoundTrip(t *testing.T) {
	v, err := ParseDefault(TypeString, true, "[normal,lock]")
	require.NoError(t, err)
	assert.Equal(t, []any{"normal", "lock"}, v)
	assert.Equal(t, "[normal,lock]", FormatListLiteral(v.([]any)))

	values := []any{"a,b", `c\d`, "[e]"}
	again, err := ParseDefault(TypeString, true, FormatListLiteral(values))
	require.NoError(t, err)
	assert.Equal(t, values, again)
}

func TestFormatListLiteral(t *testing.T) {
	assert.Equal(t, "[]", FormatListLiteral(nil))
	assert.Equal(t, "[1,2.5,-3]", FormatListLiteral([]any{1.0, 2.5, -3.0}))
	assert.Equal(t, "[true,false]", FormatListLiteral([]any{true, false}))
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		typ     Type
		input   string
		want    any
		wantErr bool
	}{
		{TypeString, "abc", "abc", false},
		{TypeString, "", "", false},
		{TypeNumber, "20", 20.0, false},
		{TypeNumber, " 1.5 ", 1.5, false},
		{TypeNumber, "twenty", nil, true},
		{TypeNumber, "NaN", nil, true},
		{TypeNumber, "Inf", nil, true},
		{TypeNumber, "-Inf", nil, true},
		{TypeNumber, "+infinity", nil, true},
		{TypeNumber, "1e400", nil, true},
		{TypeBoolean, "true", true, false},
		{TypeBoolean, "0", false, false},
		{TypeBoolean, "yes", nil, true},
		{TypeObject, "{}", nil, true},
		{TypeNone, "", nil, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ)+"/"+tt.input, func(t *testing.T) {
			got, err := Coerce(tt.typ, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDefault(t *testing.T) {
	t.Run("non-finite numbers", func(t *testing.T) {
		for _, raw := range []string{"NaN", "Inf"} {
			_, err := ParseDefault(TypeNumber, false, raw)
			assert.Error(t, err, raw)
		}
		_, err := ParseDefault(TypeNumber, true, "[1,NaN]")
		assert.Error(t, err)
		_, err = ParseDefault(TypeNumber, true, "[-Inf,2]")
		assert.Error(t, err)
	})

	t.Run("scalar number", func(t *testing.T) {
		v, err := ParseDefault(TypeNumber, false, "20")
		require.NoError(t, err)
		assert.Equal(t, 20.0, v)
	})

	t.Run("number list", func(t *testing.T) {
		v, err := ParseDefault(TypeNumber, true, "[1,2,3]")
		require.NoError(t, err)
		assert.Equal(t, []any{1.0, 2.0, 3.0}, v)
	})

	t.Run("empty list", func(t *testing.T) {
		v, err := ParseDefault(TypeNumber, true, "[]")
		require.NoError(t, err)
		assert.Equal(t, []any{}, v)
	})

	t.Run("element not coercible", func(t *testing.T) {
		_, err := ParseDefault(TypeNumber, true, "[1,x]")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "element 1")
	})

	t.Run("array without brackets", func(t *testing.T) {
		_, err := ParseDefault(TypeString, true, "normal,lock")
		assert.Error(t, err)
	})
}
