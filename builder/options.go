package builder

// BuilderOption configures a Builder instance.
// Options are applied when creating a new Builder with New().
type BuilderOption func(*builderConfig)

// builderConfig holds builder configuration applied via options.
type builderConfig struct {
	mimetypeAliases map[string]string
	defaultStatus   int
}

// defaultBuilderConfig returns a new builderConfig with default values.
func defaultBuilderConfig() *builderConfig {
	return &builderConfig{
		defaultStatus: 200,
	}
}

// WithMimetypeAliases extends the default mimetype alias table.
// Entries override defaults with the same key.
func WithMimetypeAliases(aliases map[string]string) BuilderOption {
	return func(cfg *builderConfig) {
		if cfg.mimetypeAliases == nil {
			cfg.mimetypeAliases = make(map[string]string, len(aliases))
		}
		for k, v := range aliases {
			cfg.mimetypeAliases[k] = v
		}
	}
}

// WithDefaultStatus sets the status given to responses that declare none.
// The default is 200.
func WithDefaultStatus(status int) BuilderOption {
	return func(cfg *builderConfig) {
		cfg.defaultStatus = status
	}
}
