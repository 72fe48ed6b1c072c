package issues

import "testing"

func TestFormatPath(t *testing.T) {
	tests := []struct {
		segments []string
		want     string
	}{
		{nil, ""},
		{[]string{"queries"}, "queries"},
		{[]string{"responses[0]", "schema", "list"}, "responses[0].schema.list"},
	}

	for _, tt := range tests {
		got := FormatPath(tt.segments...)
		if got != tt.want {
			t.Errorf("FormatPath(%v) = %q, want %q", tt.segments, got, tt.want)
		}
	}
}

func BenchmarkFormatPath_WithPool(b *testing.B) {
	segments := []string{"responses[0]", "schema", "list", "groups", "id"}
	for b.Loop() {
		_ = FormatPath(segments...)
	}
}

func BenchmarkFormatPath_WithoutPool(b *testing.B) {
	segments := []string{"responses[0]", "schema", "list", "groups", "id"}
	for b.Loop() {
		result := ""
		for i, s := range segments {
			if i > 0 {
				result += "."
			}
			result += s
		}
		_ = result
	}
}
