package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeOutputPath(t *testing.T) {
	t.Run("existing file accepted", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "apis.json")
		require.NoError(t, os.WriteFile(target, []byte("{}"), 0o600))

		got, err := SanitizeOutputPath(target)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	})

	t.Run("relative path made absolute", func(t *testing.T) {
		got, err := SanitizeOutputPath("apis.yaml")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("dot-dot components cleaned", func(t *testing.T) {
		dir := t.TempDir()
		got, err := SanitizeOutputPath(filepath.Join(dir, "sub", "..", "apis.yaml"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "apis.yaml"), got)
	})

	t.Run("new file accepted", func(t *testing.T) {
		newFile := filepath.Join(t.TempDir(), "new.yaml")
		got, err := SanitizeOutputPath(newFile)
		require.NoError(t, err)
		assert.Equal(t, newFile, got)
	})

	t.Run("empty path rejected", func(t *testing.T) {
		_, err := SanitizeOutputPath("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("directory rejected", func(t *testing.T) {
		_, err := SanitizeOutputPath(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory")
	})

	t.Run("symlink rejected", func(t *testing.T) {
		dir := t.TempDir()
		realFile := filepath.Join(dir, "real.yaml")
		linkFile := filepath.Join(dir, "link.yaml")
		require.NoError(t, os.WriteFile(realFile, []byte("x"), 0o600))
		require.NoError(t, os.Symlink(realFile, linkFile))

		_, err := SanitizeOutputPath(linkFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symlink")
	})
}
