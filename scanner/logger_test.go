package scanner

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("scanned file", "file", "a.go")
	l.Info("scan complete")
	l.Warn("skipped block")
	l.Error("scan failed")
	_, ok := l.With("worker", 1).(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		assert.NotNil(t, NewSlogAdapter(nil).logger)
	})

	tests := []struct {
		name  string
		log   func(Logger)
		level string
		attr  string
	}{
		{name: "debug", log: func(l Logger) { l.Debug("scanned file", "blocks", 4) }, level: "DEBUG", attr: "blocks=4"},
		{name: "info", log: func(l Logger) { l.Info("scan complete", "operations", 2) }, level: "INFO", attr: "operations=2"},
		{name: "warn", log: func(l Logger) { l.Warn("skipped block", "file", "a.go") }, level: "WARN", attr: "file=a.go"},
		{name: "error", log: func(l Logger) { l.Error("scan failed", "err", "boom") }, level: "ERROR", attr: "err=boom"},
		{name: "with", log: func(l Logger) { l.With("component", "scanner").Info("x") }, level: "INFO", attr: "component=scanner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			tt.log(NewSlogAdapter(slog.New(handler)))
			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), tt.attr)
		})
	}
}
