// Package docerrors provides structured error types for annodoc.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between malformed annotation
// text, structurally invalid parameter trees, broken cross-references, and
// conflicts discovered while merging operations from many files.
//
// # Error Categories
//
//   - LexError: malformed tags or attributes, unterminated CDATA, bad indentation
//   - SchemaError: invalid parameter trees and uncoercible literals
//   - ReferenceError: path placeholders without parameters, duplicate operation keys
//   - AggregationError: failures surfaced while merging operations across files
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.As
//
//	op, err := scanner.ProcessBlock(block)
//	if err != nil {
//	    var refErr *docerrors.ReferenceError
//	    if errors.As(err, &refErr) {
//	        fmt.Printf("%s:%d: unknown placeholder %s\n", refErr.File, refErr.Line, refErr.Ref)
//	    }
//	}
package docerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrLex indicates an annotation block could not be tokenized or parsed.
	ErrLex = errors.New("lex error")

	// ErrSchema indicates a structurally invalid parameter tree.
	ErrSchema = errors.New("schema error")

	// ErrReference indicates a cross-reference could not be satisfied.
	ErrReference = errors.New("reference error")

	// ErrDuplicate indicates two blocks produced the same operation key.
	ErrDuplicate = errors.New("duplicate operation")

	// ErrAggregation indicates a failure while merging operations.
	ErrAggregation = errors.New("aggregation error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// location renders the " in FILE at line N" suffix shared by the positional errors.
func location(file string, line int) string {
	var msg string
	if file != "" {
		msg += " in " + file
	}
	if line > 0 {
		msg += fmt.Sprintf(" at line %d", line)
	}
	return msg
}

// LexError represents a failure to tokenize or parse an annotation block.
// This includes unbalanced tags, malformed attributes, unterminated CDATA
// sections, and indentation errors in the header dialect.
type LexError struct {
	// File is the source file containing the annotation block
	File string
	// Line is the 1-based line of the offending construct (0 if unknown)
	Line int
	// Column is the 1-based column of the offending construct (0 if unknown)
	Column int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LexError) Error() string {
	msg := "lex error" + location(e.File, e.Line)
	if e.Line > 0 && e.Column > 0 {
		msg += fmt.Sprintf(", column %d", e.Column)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LexError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LexError) Is(target error) bool {
	return target == ErrLex
}

// SchemaError represents a structurally invalid parameter tree, such as an
// enum attached to an object, children under a scalar, or a default literal
// that does not coerce to the declared type.
type SchemaError struct {
	// File is the source file containing the annotation block
	File string
	// Line is the 1-based line of the annotation block (0 if unknown)
	Line int
	// Field is the dotted path of the offending element (e.g., "responses[0].schema.list")
	Field string
	// Value is the problematic value (may be nil)
	Value any
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error" + location(e.File, e.Line)
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// ReferenceError represents an unsatisfied cross-reference: a path
// placeholder with no matching parameter, or a duplicate operation key
// detected at aggregation time.
type ReferenceError struct {
	// File is the source file containing the annotation block
	File string
	// Line is the 1-based line of the annotation block (0 if unknown)
	Line int
	// Ref is the name that failed to resolve (a placeholder or an operation key)
	Ref string
	// IsDuplicate is true when the error reports a duplicate operation key
	IsDuplicate bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsDuplicate {
		msg = "duplicate operation"
	}
	msg += location(e.File, e.Line)
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrDuplicate when IsDuplicate is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrDuplicate && e.IsDuplicate
}

// AggregationError represents a failure surfaced while merging operations
// from many files. It usually wraps a duplicate-key ReferenceError.
type AggregationError struct {
	// Key is the operation identity key ("GET /users/{id}")
	Key string
	// Sources lists the file:line locations that produced the key
	Sources []string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *AggregationError) Error() string {
	msg := "aggregation error"
	if e.Key != "" {
		msg += " for " + e.Key
	}
	if len(e.Sources) > 0 {
		msg += fmt.Sprintf(" (sources: %v)", e.Sources)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *AggregationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *AggregationError) Is(target error) bool {
	return target == ErrAggregation
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// IsFatal reports whether err belongs to the block-level taxonomy that strict
// mode escalates (lex, schema, and reference errors).
func IsFatal(err error) bool {
	return errors.Is(err, ErrLex) || errors.Is(err, ErrSchema) || errors.Is(err, ErrReference)
}
