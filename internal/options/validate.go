// Package options provides shared utilities for option validation across packages.
package options

import (
	"runtime"

	"github.com/erraggy/annodoc/docerrors"
)

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// The returned error is a *docerrors.ConfigError naming the "input" option.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	if sourceCount == 0 {
		return &docerrors.ConfigError{Option: "input", Message: noSourceMsg}
	}
	if sourceCount > 1 {
		return &docerrors.ConfigError{Option: "input", Value: sourceCount, Message: multiSourceMsg}
	}

	return nil
}

// ResolveWorkers returns the effective worker-pool size for n.
// Zero selects runtime.GOMAXPROCS(0); negative values are rejected.
func ResolveWorkers(n int) (int, error) {
	switch {
	case n < 0:
		return 0, &docerrors.ConfigError{Option: "workers", Value: n, Message: "must not be negative"}
	case n == 0:
		return runtime.GOMAXPROCS(0), nil
	default:
		return n, nil
	}
}
