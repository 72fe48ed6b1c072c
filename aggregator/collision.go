package aggregator

import (
	"fmt"

	"github.com/erraggy/annodoc/internal/severity"
	"github.com/erraggy/annodoc/model"
)

// Resolution values of a CollisionEvent.
const (
	ResolutionKeptLeft     = "kept-left"
	ResolutionKeptRight    = "kept-right"
	ResolutionMerged       = "merged"
	ResolutionDeduplicated = "deduplicated"
	ResolutionFailed       = "failed"
)

// SourceRef locates one candidate of a collision.
type SourceRef struct {
	File string `yaml:"file" json:"file"`
	Line int    `yaml:"line" json:"line"`
}

// String renders "file:line".
func (s SourceRef) String() string {
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

func refOf(op *model.Operation) SourceRef {
	return SourceRef{File: op.Source.File, Line: op.Source.Line}
}

// CollisionReport provides detailed analysis of collisions encountered during aggregation
type CollisionReport struct {
	TotalCollisions  int              `yaml:"totalCollisions" json:"totalCollisions"`
	ResolvedByAccept int              `yaml:"resolvedByAccept" json:"resolvedByAccept"`
	ResolvedByMerge  int              `yaml:"resolvedByMerge" json:"resolvedByMerge"`
	ResolvedByDedup  int              `yaml:"resolvedByDedup" json:"resolvedByDedup"`
	FailedCollisions int              `yaml:"failedCollisions" json:"failedCollisions"`
	Events           []CollisionEvent `yaml:"events" json:"events"`
}

// CollisionEvent represents one key defined by more than one block
type CollisionEvent struct {
	Key        string            `yaml:"key" json:"key"`
	Sources    []SourceRef       `yaml:"sources" json:"sources"`
	Kept       SourceRef         `yaml:"kept" json:"kept"`
	Strategy   CollisionStrategy `yaml:"strategy" json:"strategy"`
	Resolution string            `yaml:"resolution" json:"resolution"`
	Severity   severity.Severity `yaml:"severity" json:"severity"`
}

// NewCollisionReport creates an empty collision report
func NewCollisionReport() *CollisionReport {
	return &CollisionReport{
		Events: make([]CollisionEvent, 0),
	}
}

// AddEvent adds a collision event to the report and updates counters
func (r *CollisionReport) AddEvent(event CollisionEvent) {
	r.Events = append(r.Events, event)
	r.TotalCollisions++

	switch event.Resolution {
	case ResolutionKeptLeft, ResolutionKeptRight:
		r.ResolvedByAccept++
	case ResolutionMerged:
		r.ResolvedByMerge++
	case ResolutionDeduplicated:
		r.ResolvedByDedup++
	case ResolutionFailed:
		r.FailedCollisions++
	}
}

// HasFailures returns true if any collisions failed to resolve
func (r *CollisionReport) HasFailures() bool {
	return r.FailedCollisions > 0
}

// GetByResolution returns events with a specific resolution type
func (r *CollisionReport) GetByResolution(resolution string) []CollisionEvent {
	var filtered []CollisionEvent
	for _, event := range r.Events {
		if event.Resolution == resolution {
			filtered = append(filtered, event)
		}
	}
	return filtered
}
