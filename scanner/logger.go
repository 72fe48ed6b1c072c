package scanner

import "log/slog"

// Logger is the structured logging interface used by the scanner.
//
// It mirrors the variadic key-value convention of log/slog so that adapters
// for zap, zerolog, or any other backend stay a few lines long:
//
//	logger.Debug("scanned file", "file", "users.go", "blocks", 4)
//
// Use [NewSlogAdapter] to plug in a *slog.Logger:
//
//	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	result, err := scanner.ScanWithOptions(ctx,
//	    scanner.WithInputs(extract.Input{Path: "src", Recursive: true}),
//	    scanner.WithLogger(scanner.NewSlogAdapter(slog.New(handler))),
//	)
type Logger interface {
	// Debug logs per-file and per-block progress.
	Debug(msg string, attrs ...any)

	// Info logs run-level summaries.
	Info(msg string, attrs ...any)

	// Warn logs recoverable problems such as skipped blocks.
	Warn(msg string, attrs ...any)

	// Error logs failures that abort a strict run.
	Error(msg string, attrs ...any)

	// With returns a Logger that prepends attrs to every record.
	With(attrs ...any) Logger
}

// NopLogger discards all output. It is the default.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(_ string, _ ...any) {}

// Info implements Logger.
func (NopLogger) Info(_ string, _ ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(_ string, _ ...any) {}

// Error implements Logger.
func (NopLogger) Error(_ string, _ ...any) {}

// With implements Logger.
func (n NopLogger) With(_ ...any) Logger { return n }

var _ Logger = NopLogger{}

// SlogAdapter wraps a *slog.Logger to implement Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter from a *slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements Logger.
func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.logger.Debug(msg, attrs...) }

// Info implements Logger.
func (s *SlogAdapter) Info(msg string, attrs ...any) { s.logger.Info(msg, attrs...) }

// Warn implements Logger.
func (s *SlogAdapter) Warn(msg string, attrs ...any) { s.logger.Warn(msg, attrs...) }

// Error implements Logger.
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.logger.Error(msg, attrs...) }

// With implements Logger.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

var _ Logger = (*SlogAdapter)(nil)
