// Package severity provides severity level constants and utilities
// for diagnostics reported by the validator, the aggregator, and the scanner.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	// SeverityError indicates an annotation block that could not become a valid operation.
	SeverityError Severity = iota

	// SeverityWarning indicates a documentation smell or a resolved collision.
	// The operation is still emitted.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo

	// SeverityCritical indicates a failure that aborts a whole source file,
	// such as an unreadable file or an unsupported encoding.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name so JSON and YAML output stays readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsFailure reports whether the severity marks a block or file as failed.
func (s Severity) IsFailure() bool {
	return s == SeverityError || s == SeverityCritical
}
