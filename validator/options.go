package validator

import (
	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/internal/options"
	"github.com/erraggy/annodoc/model"
)

// Option is a function that configures a validation operation
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation operation
type validateConfig struct {
	// Input source (exactly one must be set)
	operation *model.Operation
	block     *extract.Block

	// Configuration options
	includeWarnings bool
	strictMode      bool
	mimetypeAliases map[string]string
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		includeWarnings: true,
		strictMode:      false,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithOperation or WithBlock)",
		"must specify exactly one input source",
		cfg.operation != nil, cfg.block != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithOperation specifies an already built operation as the input source
func WithOperation(op *model.Operation) Option {
	return func(cfg *validateConfig) error {
		cfg.operation = op
		return nil
	}
}

// WithBlock specifies a raw annotation block as the input source.
// The block is parsed and built before validation.
func WithBlock(block extract.Block) Option {
	return func(cfg *validateConfig) error {
		cfg.block = &block
		return nil
	}
}

// WithIncludeWarnings enables or disables documentation warnings
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithStrictMode enables or disables the path character checks
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithMimetypeAliases extends the mimetype alias table used when building
// a block given through WithBlock.
func WithMimetypeAliases(aliases map[string]string) Option {
	return func(cfg *validateConfig) error {
		cfg.mimetypeAliases = aliases
		return nil
	}
}
