package validator

import (
	"fmt"

	"github.com/erraggy/annodoc/builder"
	"github.com/erraggy/annodoc/dialect"
	"github.com/erraggy/annodoc/docerrors"
	"github.com/erraggy/annodoc/internal/issues"
	"github.com/erraggy/annodoc/internal/severity"
	"github.com/erraggy/annodoc/model"
)

// ValidationWarning represents a single non-fatal finding
type ValidationWarning = issues.Issue

// ValidationResult contains the result of validating one operation
type ValidationResult struct {
	// Valid is true if no check failed (warnings are allowed)
	Valid bool
	// Key identifies the validated operation
	Key model.Key
	// Operation is the validated operation
	Operation *model.Operation
	// Err is the first violated check (nil when Valid)
	Err error
	// Warnings contains the documentation warnings
	Warnings []ValidationWarning
	// WarningCount is the total number of warnings
	WarningCount int
}

// Validator checks operations
type Validator struct {
	// IncludeWarnings determines whether to report documentation warnings
	IncludeWarnings bool
	// StrictMode rejects paths containing '?', '#', or consecutive slashes
	StrictMode bool
}

// New creates a new Validator instance with default settings
func New() *Validator {
	return &Validator{
		IncludeWarnings: true,
		StrictMode:      false,
	}
}

// ValidateWithOptions validates an operation using functional options.
//
// Example:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithBlock(extract.Block{File: "api.go", Line: 10, Text: text}),
//	    validator.WithIncludeWarnings(false),
//	)
//
// A block that cannot be parsed or built is reported in the result, not as
// the returned error; the error is reserved for invalid options and blocks
// that are not annotations.
func ValidateWithOptions(opts ...Option) (*ValidationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	v := &Validator{
		IncludeWarnings: cfg.includeWarnings,
		StrictMode:      cfg.strictMode,
	}

	if cfg.operation != nil {
		return v.Validate(cfg.operation), nil
	}

	root, kind, err := dialect.Parse(*cfg.block)
	if kind == dialect.KindNone {
		return nil, fmt.Errorf("validator: block is not an API annotation")
	}
	if err != nil {
		return &ValidationResult{Err: err}, nil
	}
	op, err := builder.New(builder.WithMimetypeAliases(cfg.mimetypeAliases)).Build(root, *cfg.block)
	if err != nil {
		return &ValidationResult{Err: err}, nil
	}
	return v.Validate(op), nil
}

// Validate runs the checks on op and stops at the first violation.
// Warnings are collected only for operations that pass every check.
func (v *Validator) Validate(op *model.Operation) *ValidationResult {
	result := &ValidationResult{
		Key:       op.Key(),
		Operation: op,
	}

	c := &checker{op: op, strict: v.StrictMode}
	for _, check := range c.checks() {
		if err := check(); err != nil {
			result.Err = err
			return result
		}
	}
	result.Valid = true

	if v.IncludeWarnings {
		result.Warnings = c.warnings()
		result.WarningCount = len(result.Warnings)
	}
	return result
}

// checker holds one operation under validation.
type checker struct {
	op     *model.Operation
	strict bool
}

// checks returns the checks in the order they must run.
func (c *checker) checks() []func() error {
	checks := []func() error{
		c.checkMethodAndPath,
		c.checkPlaceholders,
		c.checkChildrenAreObjects,
		c.checkEnumsAreScalar,
		c.checkArrayDefaults,
		c.checkPathTemplate,
		c.checkScalarDefaults,
		c.checkEnumValues,
		c.checkDuplicateNames,
		c.checkHeadersAreScalar,
		c.checkStatuses,
		c.checkDeprecations,
		c.checkDuplicateBodies,
	}
	if c.strict {
		checks = append(checks, c.checkPathCharacters)
	}
	return checks
}

// paramList is one top-level parameter list of an operation.
type paramList struct {
	field  string
	params []*model.Parameter
}

// lists returns every top-level parameter list of the operation.
func (c *checker) lists() []paramList {
	op := c.op
	lists := []paramList{
		{field: "path.params", params: op.Path.Params},
		{field: "queries", params: op.Queries},
		{field: "headers", params: op.Headers},
	}
	for i, b := range op.Requests {
		prefix := fmt.Sprintf("requests[%d]", i)
		lists = append(lists,
			paramList{field: issues.FormatPath(prefix, "headers"), params: b.Headers},
			paramList{field: issues.FormatPath(prefix, "schema"), params: b.Schema},
		)
	}
	for i, b := range op.Responses {
		prefix := fmt.Sprintf("responses[%d]", i)
		lists = append(lists,
			paramList{field: issues.FormatPath(prefix, "headers"), params: b.Headers},
			paramList{field: issues.FormatPath(prefix, "schema"), params: b.Schema},
		)
	}
	return lists
}

// walk visits every parameter of the operation depth first.
func (c *checker) walk(visit model.ParamVisitor) error {
	for _, l := range c.lists() {
		if err := model.WalkParams(l.field, l.params, visit); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) schemaError(field string, value any, format string, args ...any) error {
	return &docerrors.SchemaError{
		File:    c.op.Source.File,
		Line:    c.op.Source.Line,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}

func (c *checker) warning(field, message string) ValidationWarning {
	return ValidationWarning{
		File:     c.op.Source.File,
		Line:     c.op.Source.Line,
		Key:      c.op.Key().String(),
		Path:     field,
		Message:  message,
		Severity: severity.SeverityWarning,
		Category: issues.CategoryWarning,
	}
}
