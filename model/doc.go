// Package model defines the canonical, dialect-independent API document.
//
// Both annotation dialects are normalized into the same tree of [Operation]
// and [Parameter] values. The model is plain data: every [Parameter] owns its
// children outright, there are no back references, and a [Document] is
// immutable once the aggregator returns it.
//
// # Identity
//
// An operation is identified by its [Key], the pair (method, path.raw).
// [Document.Operations] is sorted by path then method so that serializing the
// same input twice yields byte-identical output.
//
// # Literals
//
// Default values are kept twice: the raw literal as written in the source and
// the value coerced to the declared type. Array defaults use the bracketed
// list form handled by [ParseListLiteral] and [FormatListLiteral]:
//
//	vals, _ := model.ParseListLiteral("[normal,lock]") // ["normal", "lock"]
//	model.FormatListLiteral(vals)                      // "[normal,lock]"
package model
