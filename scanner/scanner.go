package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/annodoc/aggregator"
	"github.com/erraggy/annodoc/builder"
	"github.com/erraggy/annodoc/dialect"
	"github.com/erraggy/annodoc/docerrors"
	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/internal/issues"
	"github.com/erraggy/annodoc/internal/options"
	"github.com/erraggy/annodoc/internal/severity"
	"github.com/erraggy/annodoc/model"
	"github.com/erraggy/annodoc/validator"
)

// Scanner turns source files into an API document
type Scanner struct {
	// Workers bounds the number of files processed at once (0 means GOMAXPROCS)
	Workers int
	// StrictMode aborts the run on the first failure
	StrictMode bool
	// StrictPaths rejects paths containing '?', '#', whitespace, or
	// consecutive slashes, in either mode
	StrictPaths bool
	// IncludeWarnings reports documentation warnings as diagnostics
	IncludeWarnings bool
	// CollisionStrategy resolves operations sharing a method and path
	CollisionStrategy aggregator.CollisionStrategy
	// CollisionReport enables the detailed collision report
	CollisionReport bool
	// MimetypeAliases extends the built-in mimetype shorthand table
	MimetypeAliases map[string]string
	// Logger receives progress messages (nil discards them)
	Logger Logger
}

// Stats counts what a scan touched
type Stats struct {
	Files       int `yaml:"files" json:"files"`
	Blocks      int `yaml:"blocks" json:"blocks"`
	Annotations int `yaml:"annotations" json:"annotations"`
	Operations  int `yaml:"operations" json:"operations"`
	Errors      int `yaml:"errors" json:"errors"`
	Warnings    int `yaml:"warnings" json:"warnings"`
}

// ScanResult contains the outcome of a scan
type ScanResult struct {
	// Document holds the sorted operations and diagnostics
	Document *model.Document
	// Collisions is the collision report, nil unless enabled
	Collisions *aggregator.CollisionReport
	// Stats summarizes the run
	Stats Stats
	// Duration is the wall time of the scan
	Duration time.Duration
}

// New creates a Scanner with default settings
func New() *Scanner {
	return &Scanner{
		IncludeWarnings:   true,
		CollisionStrategy: aggregator.DefaultStrategy,
	}
}

// counters are shared by the workers of one scan.
type counters struct {
	files, blocks, annotations atomic.Int64
}

// Scan processes sources with a bounded pool of workers.
//
// Sources are numbered in slice order; together with each block's index this
// fixes the scan order used to resolve collisions, so the result is the same
// for any worker count.
func (s *Scanner) Scan(ctx context.Context, sources []extract.Source) (*ScanResult, error) {
	start := time.Now()
	workers, err := options.ResolveWorkers(s.Workers)
	if err != nil {
		return nil, fmt.Errorf("scanner: %w", err)
	}
	agg, err := aggregator.New(aggregator.Config{
		Strategy:        s.CollisionStrategy,
		Strict:          s.StrictMode,
		CollisionReport: s.CollisionReport,
		Logger:          s.logger(),
	})
	if err != nil {
		return nil, fmt.Errorf("scanner: %w", err)
	}
	log := s.logger()
	log.Debug("scan started", "files", len(sources), "workers", workers, "strict", s.StrictMode)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type aggregated struct {
		doc *model.Document
		err error
	}
	entries := make(chan aggregator.Entry, workers)
	done := make(chan aggregated, 1)
	go func() {
		doc, err := agg.Run(ctx, entries)
		if err != nil {
			cancel()
		}
		done <- aggregated{doc: doc, err: err}
	}()

	c := s.chain()
	var stats counters
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range sources {
		g.Go(func() error {
			return s.scanSource(gctx, c, i, src, entries, &stats)
		})
	}
	werr := g.Wait()
	close(entries)
	res := <-done

	if err := firstCause(werr, res.err); err != nil {
		log.Error("scan failed", "err", err)
		return nil, err
	}

	doc := res.doc
	result := &ScanResult{
		Document:   doc,
		Collisions: agg.Report(),
		Stats: Stats{
			Files:       int(stats.files.Load()),
			Blocks:      int(stats.blocks.Load()),
			Annotations: int(stats.annotations.Load()),
			Operations:  len(doc.Operations),
			Errors:      doc.ErrorCount(),
			Warnings:    doc.WarningCount(),
		},
		Duration: time.Since(start),
	}
	log.Info("scan complete",
		"files", result.Stats.Files,
		"operations", result.Stats.Operations,
		"diagnostics", len(doc.Diagnostics),
	)
	return result, nil
}

// scanSource is one worker task.
func (s *Scanner) scanSource(ctx context.Context, c *chain, fileIdx int, src extract.Source, out chan<- aggregator.Entry, stats *counters) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log := s.logger().With("file", src.Name())
	stats.files.Add(1)

	blocks, err := src.Blocks()
	if err != nil {
		if s.StrictMode {
			return fmt.Errorf("scanner: %w", err)
		}
		log.Warn("source skipped", "err", err)
		return send(ctx, out, aggregator.Entry{
			Diagnostics: []model.Diagnostic{DiagnosticFor(err, src.Name(), 0)},
		})
	}
	stats.blocks.Add(int64(len(blocks)))
	log.Debug("scanning file", "blocks", len(blocks))

	for _, block := range blocks {
		if err := ctx.Err(); err != nil {
			return err
		}
		op, warnings, err := c.process(block)
		if op == nil && err == nil {
			continue
		}
		stats.annotations.Add(1)
		if err != nil {
			if s.StrictMode && docerrors.IsFatal(err) {
				return err
			}
			log.Debug("block rejected", "line", block.Line, "err", err)
			err = send(ctx, out, aggregator.Entry{
				Diagnostics: []model.Diagnostic{DiagnosticFor(err, block.File, block.Line)},
			})
			if err != nil {
				return err
			}
			continue
		}
		op.Source.Seq = [2]int{fileIdx, block.Index}
		if err := send(ctx, out, aggregator.Entry{Operation: op, Diagnostics: warnings}); err != nil {
			return err
		}
	}
	return nil
}

// ProcessBlock runs one comment block through detection, parsing, building,
// and validation. It returns a nil operation and a nil error for comments
// that are not API annotations. It has no side effects and is safe for
// concurrent use.
func (s *Scanner) ProcessBlock(block extract.Block) (*model.Operation, []model.Diagnostic, error) {
	return s.chain().process(block)
}

// chain holds the stateless stages shared by all workers of a scan.
type chain struct {
	builder   *builder.Builder
	validator *validator.Validator
}

func (s *Scanner) chain() *chain {
	return &chain{
		builder: builder.New(builder.WithMimetypeAliases(s.MimetypeAliases)),
		validator: &validator.Validator{
			IncludeWarnings: s.IncludeWarnings,
			StrictMode:      s.StrictPaths,
		},
	}
}

func (c *chain) process(block extract.Block) (*model.Operation, []model.Diagnostic, error) {
	root, kind, err := dialect.Parse(block)
	if kind == dialect.KindNone {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	op, err := c.builder.Build(root, block)
	if err != nil {
		return nil, nil, err
	}
	result := c.validator.Validate(op)
	if result.Err != nil {
		return nil, nil, result.Err
	}
	return op, result.Warnings, nil
}

func (s *Scanner) logger() Logger {
	if s.Logger == nil {
		return NopLogger{}
	}
	return s.Logger
}

// send delivers e unless ctx is done first.
func send(ctx context.Context, out chan<- aggregator.Entry, e aggregator.Entry) error {
	select {
	case out <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DiagnosticFor converts a block or file failure into a diagnostic.
// The position carried by a typed error wins over the fallback.
func DiagnosticFor(err error, file string, line int) model.Diagnostic {
	d := model.Diagnostic{
		File:     file,
		Line:     line,
		Message:  docerrors.Detail(err),
		Severity: severity.SeverityError,
		Err:      err,
	}
	if f, l, col := docerrors.Position(err); l > 0 {
		d.Line, d.Column = l, col
		if f != "" {
			d.File = f
		}
	}
	switch {
	case errors.Is(err, docerrors.ErrLex):
		d.Category = issues.CategoryLex
	case errors.Is(err, docerrors.ErrSchema):
		d.Category = issues.CategorySchema
	case errors.Is(err, docerrors.ErrReference):
		d.Category = issues.CategoryReference
	default:
		d.Category = issues.CategoryIO
		d.Severity = severity.SeverityCritical
	}
	return d
}

// firstCause prefers a real failure over the cancellations it triggered.
func firstCause(errs ...error) error {
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
