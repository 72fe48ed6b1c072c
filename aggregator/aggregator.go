package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/erraggy/annodoc/docerrors"
	"github.com/erraggy/annodoc/internal/issues"
	"github.com/erraggy/annodoc/internal/severity"
	"github.com/erraggy/annodoc/model"
)

// aggregatorLogger is used for collision notices when Config.Logger is nil.
// Tests may replace it to capture output.
var aggregatorLogger = slog.Default()

// Logger receives collision notices. *slog.Logger and scanner.Logger
// both satisfy it.
type Logger interface {
	Warn(msg string, args ...any)
}

// Entry is one message from a worker: a validated operation, diagnostics
// for a file or block, or both.
type Entry struct {
	Operation   *model.Operation
	Diagnostics []model.Diagnostic
}

// Config configures how operations are aggregated
type Config struct {
	// Strategy resolves operations sharing a key
	Strategy CollisionStrategy
	// Strict makes Add fail on the first duplicate under StrategyFailOnCollision
	Strict bool
	// CollisionReport enables the detailed collision report
	CollisionReport bool
	// Logger receives collision notices (nil uses slog.Default)
	Logger Logger
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Strategy: DefaultStrategy,
	}
}

// Aggregator collects operations and diagnostics into a Document.
//
// Concurrency: an Aggregator is owned by one goroutine. Concurrent producers
// feed it through Run.
type Aggregator struct {
	config      Config
	candidates  map[model.Key][]*model.Operation
	diagnostics []model.Diagnostic
	report      *CollisionReport
}

// New creates an Aggregator, rejecting unknown strategies.
func New(config Config) (*Aggregator, error) {
	if config.Strategy == "" {
		config.Strategy = DefaultStrategy
	}
	if !IsValidStrategy(string(config.Strategy)) {
		return nil, &docerrors.ConfigError{
			Option:  "collision",
			Value:   config.Strategy,
			Message: "must be one of " + strings.Join(ValidStrategies(), ", "),
		}
	}
	a := &Aggregator{
		config:     config,
		candidates: make(map[model.Key][]*model.Operation),
	}
	if config.CollisionReport {
		a.report = NewCollisionReport()
	}
	return a, nil
}

// Run consumes entries until in is closed or ctx is done, then returns the
// resolved document. A strict duplicate under StrategyFailOnCollision ends
// the run early with an AggregationError.
func (a *Aggregator) Run(ctx context.Context, in <-chan Entry) (*model.Document, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case e, ok := <-in:
			if !ok {
				return a.Finish()
			}
			if err := a.Add(e); err != nil {
				return nil, err
			}
		}
	}
}

// Add records one entry.
func (a *Aggregator) Add(e Entry) error {
	a.diagnostics = append(a.diagnostics, e.Diagnostics...)
	op := e.Operation
	if op == nil {
		return nil
	}
	key := op.Key()
	a.candidates[key] = append(a.candidates[key], op)
	if a.config.Strict && a.config.Strategy == StrategyFailOnCollision && len(a.candidates[key]) > 1 {
		return a.duplicateError(key, a.ordered(key))
	}
	return nil
}

// Finish resolves all collisions and builds the document.
func (a *Aggregator) Finish() (*model.Document, error) {
	keys := make([]model.Key, 0, len(a.candidates))
	for key := range a.candidates {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, model.Key.Compare)

	ops := make([]*model.Operation, 0, len(keys))
	for _, key := range keys {
		cands := a.ordered(key)
		if len(cands) == 1 {
			ops = append(ops, cands[0])
			continue
		}
		kept, err := a.resolve(key, cands)
		if err != nil {
			return nil, err
		}
		ops = append(ops, kept)
	}
	return model.NewDocument(ops, a.diagnostics), nil
}

// Report returns the collision report, nil unless enabled.
func (a *Aggregator) Report() *CollisionReport {
	return a.report
}

func (a *Aggregator) logger() Logger {
	if a.config.Logger != nil {
		return a.config.Logger
	}
	return aggregatorLogger
}

// ordered returns the candidates for key in scan order.
func (a *Aggregator) ordered(key model.Key) []*model.Operation {
	cands := slices.Clone(a.candidates[key])
	slices.SortStableFunc(cands, func(x, y *model.Operation) int {
		switch {
		case x.Source.Less(y.Source):
			return -1
		case y.Source.Less(x.Source):
			return 1
		default:
			return 0
		}
	})
	return cands
}

// resolve applies the configured strategy to two or more candidates.
func (a *Aggregator) resolve(key model.Key, cands []*model.Operation) (*model.Operation, error) {
	strategy := a.config.Strategy
	first, last := cands[0], cands[len(cands)-1]

	var (
		kept       *model.Operation
		resolution string
		sev        = severity.SeverityWarning
		msg        string
		err        error
	)
	switch strategy {
	case StrategyAcceptLeft:
		kept, resolution = first, ResolutionKeptLeft
		msg = fmt.Sprintf("duplicate operation %s; kept the definition at %s", key, refOf(kept))
	case StrategyAcceptRight:
		kept, resolution = last, ResolutionKeptRight
		msg = fmt.Sprintf("duplicate operation %s; kept the definition at %s", key, refOf(kept))
	case StrategyMerge:
		kept = first
		for _, other := range cands[1:] {
			mergeOperation(kept, other)
		}
		resolution = ResolutionMerged
		msg = fmt.Sprintf("duplicate operation %s; merged %d definitions", key, len(cands))
	case StrategyDeduplicateEquivalent:
		if allEquivalent(cands) {
			kept, resolution, sev = first, ResolutionDeduplicated, severity.SeverityInfo
			msg = fmt.Sprintf("identical operation %s defined %d times", key, len(cands))
			break
		}
		fallthrough
	default:
		kept, resolution, sev = first, ResolutionFailed, severity.SeverityError
		err = a.duplicateError(key, cands)
		msg = err.Error()
	}

	a.diagnostics = append(a.diagnostics, model.Diagnostic{
		File:     last.Source.File,
		Line:     last.Source.Line,
		Key:      key.String(),
		Message:  msg,
		Severity: sev,
		Category: issues.CategoryAggregation,
		Err:      err,
	})
	if a.report != nil {
		a.report.AddEvent(CollisionEvent{
			Key:        key.String(),
			Sources:    refsOf(cands),
			Kept:       refOf(kept),
			Strategy:   strategy,
			Resolution: resolution,
			Severity:   sev,
		})
	}
	a.logger().Warn("operation collision",
		"key", key.String(),
		"strategy", string(strategy),
		"resolution", resolution,
		"kept", refOf(kept).String(),
	)

	if err != nil && a.config.Strict {
		return nil, err
	}
	return kept, nil
}

func (a *Aggregator) duplicateError(key model.Key, cands []*model.Operation) error {
	refs := refsOf(cands)
	sources := make([]string, len(refs))
	for i, r := range refs {
		sources[i] = r.String()
	}
	last := cands[len(cands)-1]
	return &docerrors.AggregationError{
		Key:     key.String(),
		Sources: sources,
		Message: "operation defined more than once",
		Cause: &docerrors.ReferenceError{
			File:        last.Source.File,
			Line:        last.Source.Line,
			Ref:         key.String(),
			IsDuplicate: true,
			Message:     "first defined at " + sources[0],
		},
	}
}

func refsOf(ops []*model.Operation) []SourceRef {
	refs := make([]SourceRef, len(ops))
	for i, op := range ops {
		refs[i] = refOf(op)
	}
	return refs
}

// allEquivalent compares candidates ignoring where they were defined.
func allEquivalent(cands []*model.Operation) bool {
	base := *cands[0]
	base.Source = model.Source{}
	for _, op := range cands[1:] {
		other := *op
		other.Source = model.Source{}
		if !reflect.DeepEqual(base, other) {
			return false
		}
	}
	return true
}
