package options

import (
	"errors"
	"runtime"
	"testing"

	"github.com/erraggy/annodoc/docerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantMsg string
	}{
		{name: "none", sources: []bool{false, false}, wantMsg: "no input"},
		{name: "one", sources: []bool{false, true}},
		{name: "two", sources: []bool{true, true, false}, wantMsg: "too many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("no input", "too many", tt.sources...)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, docerrors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestResolveWorkers(t *testing.T) {
	n, err := ResolveWorkers(0)
	require.NoError(t, err)
	assert.Equal(t, runtime.GOMAXPROCS(0), n)

	n, err = ResolveWorkers(8)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	_, err = ResolveWorkers(-1)
	var cfgErr *docerrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "workers", cfgErr.Option)
}
