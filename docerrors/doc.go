// Package docerrors provides structured error types for the annodoc library.
//
// Import path: github.com/erraggy/annodoc/docerrors
//
// # Error Types
//
//   - [LexError]: malformed annotation text in either dialect
//   - [SchemaError]: structurally invalid parameter trees
//   - [ReferenceError]: unresolved placeholders and duplicate operation keys
//   - [AggregationError]: merge-time failures across files
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrLex]: Matches any [LexError]
//   - [ErrSchema]: Matches any [SchemaError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrDuplicate]: Matches [ReferenceError] with IsDuplicate=true
//   - [ErrAggregation]: Matches any [AggregationError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// Every positional error carries the originating file path and the absolute
// line of the offending comment so a user can jump straight to it.
package docerrors
