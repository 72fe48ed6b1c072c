package issues

import (
	"errors"
	"slices"
	"testing"

	"github.com/erraggy/annodoc/internal/severity"
	"github.com/stretchr/testify/assert"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name        string
		issue       Issue
		contains    []string
		notContains []string
	}{
		{
			name: "error with file and line",
			issue: Issue{
				File:     "users.rs",
				Line:     12,
				Message:  "placeholder id has no parameter",
				Severity: severity.SeverityError,
				Category: CategoryReference,
			},
			contains: []string{"✗", "users.rs:12", "placeholder id has no parameter"},
		},
		{
			name: "critical without line",
			issue: Issue{
				File:     "broken.go",
				Message:  "unsupported encoding",
				Severity: severity.SeverityCritical,
			},
			contains:    []string{"✗", "broken.go: unsupported encoding"},
			notContains: []string{"broken.go:0"},
		},
		{
			name: "warning with key and path",
			issue: Issue{
				File:     "a.go",
				Line:     3,
				Key:      "GET /users",
				Path:     "summary",
				Message:  "operation has no summary",
				Severity: severity.SeverityWarning,
			},
			contains: []string{"⚠", "a.go:3 [GET /users] summary", "operation has no summary"},
		},
		{
			name:     "info without any location",
			issue:    Issue{Message: "nothing scanned", Severity: severity.SeverityInfo},
			contains: []string{"ℹ nothing scanned"},
		},
		{
			name:     "unknown severity",
			issue:    Issue{Message: "odd", Severity: severity.Severity(42)},
			contains: []string{"?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.issue.String()
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestIssueLocation(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{"file line column", Issue{File: "a.go", Line: 4, Column: 2}, "a.go:4:2"},
		{"file line", Issue{File: "a.go", Line: 4}, "a.go:4"},
		{"line only", Issue{Line: 4, Column: 9}, "4:9"},
		{"file only", Issue{File: "a.go"}, "a.go"},
		{"path fallback", Issue{Path: "queries.state"}, "queries.state"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.Location())
		})
	}
}

func TestIssueHasLocation(t *testing.T) {
	assert.True(t, Issue{Line: 1}.HasLocation())
	assert.False(t, Issue{File: "a.go"}.HasLocation())
}

func TestIssueErrIsNotSerialized(t *testing.T) {
	issue := Issue{Message: "m", Err: errors.New("boom")}
	assert.EqualError(t, issue.Err, "boom")
}

func TestLess(t *testing.T) {
	list := []Issue{
		{File: "b.go", Line: 1, Message: "x"},
		{File: "a.go", Line: 9, Message: "x"},
		{File: "a.go", Line: 2, Category: CategorySchema, Message: "y"},
		{File: "a.go", Line: 2, Category: CategoryLex, Message: "z"},
		{File: "a.go", Line: 2, Category: CategoryLex, Message: "a"},
	}
	slices.SortFunc(list, func(a, b Issue) int {
		switch {
		case Less(a, b):
			return -1
		case Less(b, a):
			return 1
		}
		return 0
	})

	got := make([]string, 0, len(list))
	for _, i := range list {
		got = append(got, i.Location()+"/"+string(i.Category)+"/"+i.Message)
	}
	assert.Equal(t, []string{
		"a.go:2/lex/a",
		"a.go:2/lex/z",
		"a.go:2/schema/y",
		"a.go:9//x",
		"b.go:1//x",
	}, got)
}
