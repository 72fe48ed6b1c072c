// Package builder turns a generic annotation tree into a canonical operation.
//
// The builder is dialect-agnostic: it consumes the [node.Node] tree produced
// by either parser in the dialect package and emits one [model.Operation].
//
// # Quick Start
//
//	b := builder.New(builder.WithMimetypeAliases(map[string]string{
//		"msgpack": "application/x-msgpack",
//	}))
//	op, err := b.Build(root, block)
//	if err != nil {
//		var schemaErr *docerrors.SchemaError
//		if errors.As(err, &schemaErr) {
//			log.Printf("%s:%d: %s", schemaErr.File, schemaErr.Line, schemaErr.Message)
//		}
//	}
//
// # Coercion Rules
//
//   - type names are resolved through their aliases ("int" is a number)
//   - a missing type means none, or object when the element has children
//   - array="true" and optional="true" accept any strconv.ParseBool spelling
//   - defaults keep their raw literal; the coerced value is nil when the
//     literal does not fit the declared type (the validator reports it)
//   - an <enum> under an object-typed parameter is a SchemaError
//   - mimetypes are normalized through the alias table
//   - a response without a status is a 200 response
//
// A Builder holds no per-build state and is safe for concurrent use.
package builder
