package scanner

import (
	"context"
	"fmt"

	"github.com/erraggy/annodoc/aggregator"
	"github.com/erraggy/annodoc/docerrors"
	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/internal/options"
)

// Option is a function that configures a scan
type Option func(*scanConfig) error

// scanConfig holds configuration for a scan
type scanConfig struct {
	// Input source (exactly one must be set)
	filePaths []string
	inputs    []extract.Input
	sources   []extract.Source

	// Configuration options
	workers         int
	strictMode      bool
	strictPaths     bool
	includeWarnings bool
	collision       aggregator.CollisionStrategy
	collisionReport bool
	mimetypeAliases map[string]string
	logger          Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*scanConfig, error) {
	cfg := &scanConfig{
		includeWarnings: true,
		collision:       aggregator.DefaultStrategy,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePaths, WithInputs, or WithSources)",
		"must specify exactly one input source",
		cfg.filePaths != nil, cfg.inputs != nil, cfg.sources != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ScanWithOptions scans the configured input using functional options.
//
// Example:
//
//	result, err := scanner.ScanWithOptions(ctx,
//	    scanner.WithFilePaths("api/users.go", "api/orders.go"),
//	    scanner.WithStrictMode(true),
//	)
func ScanWithOptions(ctx context.Context, opts ...Option) (*ScanResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("scanner: invalid options: %w", err)
	}

	s := &Scanner{
		Workers:           cfg.workers,
		StrictMode:        cfg.strictMode,
		StrictPaths:       cfg.strictPaths,
		IncludeWarnings:   cfg.includeWarnings,
		CollisionStrategy: cfg.collision,
		CollisionReport:   cfg.collisionReport,
		MimetypeAliases:   cfg.mimetypeAliases,
		Logger:            cfg.logger,
	}

	sources := cfg.sources
	if sources == nil {
		inputs := cfg.inputs
		for _, p := range cfg.filePaths {
			inputs = append(inputs, extract.Input{Path: p})
		}
		if sources, err = extract.Collect(inputs); err != nil {
			return nil, fmt.Errorf("scanner: %w", err)
		}
	}
	return s.Scan(ctx, sources)
}

// WithFilePaths scans the given files or directories (non-recursive)
func WithFilePaths(paths ...string) Option {
	return func(cfg *scanConfig) error {
		cfg.filePaths = append([]string{}, paths...)
		return nil
	}
}

// WithInputs scans the given inputs, which may set recursion, extensions,
// language, and encoding per path
func WithInputs(inputs ...extract.Input) Option {
	return func(cfg *scanConfig) error {
		cfg.inputs = append([]extract.Input{}, inputs...)
		return nil
	}
}

// WithSources scans already constructed sources, such as in-memory text
func WithSources(sources ...extract.Source) Option {
	return func(cfg *scanConfig) error {
		cfg.sources = append([]extract.Source{}, sources...)
		return nil
	}
}

// WithWorkers bounds the worker pool
// Default: 0 (GOMAXPROCS)
func WithWorkers(n int) Option {
	return func(cfg *scanConfig) error {
		if n < 0 {
			return &docerrors.ConfigError{Option: "workers", Value: n, Message: "must not be negative"}
		}
		cfg.workers = n
		return nil
	}
}

// WithStrictMode aborts the scan on the first failure
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *scanConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithStrictPaths rejects paths containing '?', '#', whitespace, or
// consecutive slashes
// Default: false
func WithStrictPaths(enabled bool) Option {
	return func(cfg *scanConfig) error {
		cfg.strictPaths = enabled
		return nil
	}
}

// WithIncludeWarnings enables or disables documentation warnings
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *scanConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithCollisionStrategy selects how operations sharing a key are resolved
// Default: accept-right
func WithCollisionStrategy(strategy string) Option {
	return func(cfg *scanConfig) error {
		if !aggregator.IsValidStrategy(strategy) {
			return &docerrors.ConfigError{Option: "collision", Value: strategy, Message: "unknown strategy"}
		}
		cfg.collision = aggregator.CollisionStrategy(strategy)
		return nil
	}
}

// WithCollisionReport enables the detailed collision report
// Default: false
func WithCollisionReport(enabled bool) Option {
	return func(cfg *scanConfig) error {
		cfg.collisionReport = enabled
		return nil
	}
}

// WithMimetypeAliases adds mimetype shorthands on top of the built-in table
func WithMimetypeAliases(aliases map[string]string) Option {
	return func(cfg *scanConfig) error {
		cfg.mimetypeAliases = aliases
		return nil
	}
}

// WithLogger sets the progress logger
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *scanConfig) error {
		cfg.logger = l
		return nil
	}
}
