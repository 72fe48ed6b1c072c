package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSetupCheckFlags(t *testing.T) {
	fs, flags := SetupCheckFlags()

	assert.Empty(t, flags.Lang)
	assert.Empty(t, flags.Encoding)
	assert.False(t, flags.StrictPaths)
	assert.False(t, flags.NoWarnings)
	assert.Equal(t, FormatText, flags.Format)

	require.NoError(t, fs.Parse([]string{"--lang", "php", "--encoding", "gbk", "--strict-paths", "--no-warnings", "--format", "yaml", "a.inc"}))
	assert.Equal(t, "php", flags.Lang)
	assert.Equal(t, "gbk", flags.Encoding)
	assert.True(t, flags.StrictPaths)
	assert.True(t, flags.NoWarnings)
	assert.Equal(t, "yaml", flags.Format)
	assert.Equal(t, "a.inc", fs.Arg(0))
}

func TestHandleCheck_Usage(t *testing.T) {
	captureOutput(t)
	assert.NoError(t, HandleCheck([]string{"--help"}))
	assert.Error(t, HandleCheck([]string{}))
	assert.Error(t, HandleCheck([]string{"a.go", "b.go"}))
	assert.Error(t, HandleCheck([]string{"--format", "xml", "a.go"}))
	assert.Error(t, HandleCheck([]string{filepath.Join(t.TempDir(), "missing.go")}))
}

func TestCheckFile(t *testing.T) {
	t.Run("valid blocks with warnings", func(t *testing.T) {
		report, err := CheckFile(writeFile(t, "users.go", usersGo), &CheckFlags{})
		require.NoError(t, err)
		assert.Equal(t, 2, report.Annotations)
		assert.Equal(t, 0, report.Failed)
		require.Len(t, report.Results, 2)
		assert.Equal(t, 3, report.Results[0].Line)
		assert.Equal(t, "xml", report.Results[0].Dialect)
		require.NotNil(t, report.Results[0].Operation)
		assert.Equal(t, "get user", report.Results[0].Operation.Summary)
		assert.NotEmpty(t, report.Results[1].Warnings)
	})

	t.Run("no warnings", func(t *testing.T) {
		report, err := CheckFile(writeFile(t, "users.go", usersGo), &CheckFlags{NoWarnings: true})
		require.NoError(t, err)
		for _, res := range report.Results {
			assert.Empty(t, res.Warnings)
		}
	})

	t.Run("broken block", func(t *testing.T) {
		report, err := CheckFile(writeFile(t, "orders.rs", ordersRs), &CheckFlags{})
		require.NoError(t, err)
		assert.Equal(t, 2, report.Annotations)
		assert.Equal(t, 1, report.Failed)
		require.NotNil(t, report.Results[1].Error)
		assert.Equal(t, 9, report.Results[1].Error.Line)
		assert.Equal(t, "header", report.Results[1].Dialect)
	})

	t.Run("forced language", func(t *testing.T) {
		path := writeFile(t, "handlers.inc", "<?php\n// @api GET /ping ping\nfunction ping() {}\n")
		_, err := CheckFile(path, &CheckFlags{})
		assert.Error(t, err, "no language for .inc")

		report, err := CheckFile(path, &CheckFlags{Lang: "php"})
		require.NoError(t, err)
		require.Len(t, report.Results, 1)
		assert.Equal(t, "ping", report.Results[0].Operation.Summary)
	})

	t.Run("bad options", func(t *testing.T) {
		path := writeFile(t, "users.go", usersGo)
		_, err := CheckFile(path, &CheckFlags{Lang: "cobol"})
		assert.Error(t, err)
		_, err = CheckFile(path, &CheckFlags{Encoding: "klingon"})
		assert.Error(t, err)
	})
}

func TestHandleCheck_Output(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, _ := captureOutput(t)
		require.NoError(t, HandleCheck([]string{writeFile(t, "users.go", usersGo)}))
		text := out.String()
		assert.Contains(t, text, "2 annotations")
		assert.Contains(t, text, "✓")
		assert.Contains(t, text, "GET /users/{id}")
	})

	t.Run("json with failure", func(t *testing.T) {
		out, _ := captureOutput(t)
		err := HandleCheck([]string{"--format", "json", writeFile(t, "orders.rs", ordersRs)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2")

		var report struct {
			Annotations int `json:"annotations"`
			Failed      int `json:"failed"`
			Results     []struct {
				Line  int `json:"line"`
				Error *struct {
					Category string `json:"category"`
					Severity string `json:"severity"`
				} `json:"error"`
			} `json:"results"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, 2, report.Annotations)
		assert.Equal(t, 1, report.Failed)
		require.Len(t, report.Results, 2)
		assert.Nil(t, report.Results[0].Error)
		require.NotNil(t, report.Results[1].Error)
		assert.Equal(t, "lex", report.Results[1].Error.Category)
		assert.Equal(t, "error", report.Results[1].Error.Severity)
	})
}
