// Package validator checks structural and referential rules on operations.
//
// Checks run in a fixed order and stop at the first violation of an
// operation; other operations are unaffected. The core checks are:
//
//  1. the method is a recognized HTTP verb and the path starts with "/"
//  2. every {placeholder} in the path has a same-named path parameter
//     (a ReferenceError otherwise)
//  3. a parameter with children is of type object
//  4. a parameter with enum values is of a scalar type
//  5. an array default parses as a list whose elements fit the type
//
// They are followed by consistency checks on the rest of the operation:
// path template syntax, scalar defaults, enum values, duplicate names,
// header types, response statuses, deprecation versions, and duplicate
// bodies. Strict mode adds path character checks.
//
// # Warnings
//
// When IncludeWarnings is set, non-fatal findings are reported as warnings:
// operations without a summary, path parameters that the path never uses,
// and paths with a trailing slash.
//
// # Usage
//
//	v := validator.New()
//	result := v.Validate(op)
//	if !result.Valid {
//	    fmt.Println(result.Err)
//	}
package validator
