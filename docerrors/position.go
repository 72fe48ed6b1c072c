package docerrors

import "errors"

// Position extracts the file, line, and column carried by the first
// positional error in err's chain. Zero values mean unknown.
func Position(err error) (file string, line, column int) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.File, lexErr.Line, lexErr.Column
	}
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr.File, schemaErr.Line, 0
	}
	var refErr *ReferenceError
	if errors.As(err, &refErr) {
		return refErr.File, refErr.Line, 0
	}
	return "", 0, 0
}

// Detail renders err without the location prefix, for callers that
// report the position separately.
func Detail(err error) string {
	var msg string
	var cause error
	var lexErr *LexError
	var schemaErr *SchemaError
	var refErr *ReferenceError
	switch {
	case errors.As(err, &lexErr):
		msg, cause = lexErr.Message, lexErr.Cause
	case errors.As(err, &schemaErr):
		msg, cause = schemaErr.Message, schemaErr.Cause
		if schemaErr.Field != "" {
			msg = schemaErr.Field + ": " + msg
		}
	case errors.As(err, &refErr):
		msg, cause = refErr.Message, refErr.Cause
		if refErr.Ref != "" {
			msg = refErr.Ref + ": " + msg
		}
	default:
		return err.Error()
	}
	if cause != nil {
		if msg == "" {
			return cause.Error()
		}
		msg += ": " + cause.Error()
	}
	return msg
}
