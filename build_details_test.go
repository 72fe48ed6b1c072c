package annodoc

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	v := Version()
	require.NotEmpty(t, v)
	assert.True(t, v == "dev" || strings.HasPrefix(v, "v"), "version %q is neither dev nor a release tag", v)
}

func TestCommitAndBuildTime(t *testing.T) {
	if c := Commit(); c != "unknown" {
		assert.GreaterOrEqual(t, len(c), 7, "short hash expected, got %q", c)
		for _, ch := range c {
			assert.True(t, (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f'), "non-hex commit %q", c)
		}
	}
	if bt := BuildTime(); bt != "unknown" {
		assert.Contains(t, bt, "T", "RFC3339 expected, got %q", bt)
	}
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	assert.Equal(t, "annodoc/"+Version(), ua)
	assert.NotContains(t, ua, " ")
	assert.NotContains(t, ua, "\n")
}

func TestBuildInfo(t *testing.T) {
	info := BuildInfo()
	for _, want := range []string{
		"Version: " + Version(),
		"Commit: " + Commit(),
		"Build Time: " + BuildTime(),
		"Go Version: " + GoVersion(),
	} {
		assert.Contains(t, info, want)
	}
}
