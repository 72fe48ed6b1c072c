// Package annodoc builds API documentation from annotation comments in source code.
//
// Handlers are documented where they are written: a comment block that starts
// with an <api> element, or with an "@api METHOD /path summary" header followed
// by a YAML body, describes one HTTP operation. annodoc extracts those blocks
// from a tree of source files in many languages, parses them, checks them, and
// merges the results into a single sorted document.
//
// # Overview
//
// The pipeline is split into small packages, each usable on its own:
//
//   - extract: find comment blocks in source files (language table, encodings, directory walk)
//   - dialect: detect the dialect of a block and parse it into a generic node tree
//   - node: the generic, dialect-independent annotation tree
//   - builder: turn a node tree into a typed model.Operation
//   - validator: check an operation and collect documentation warnings
//   - aggregator: merge operations from many workers and resolve collisions
//   - scanner: run the whole pipeline over many files with a bounded worker pool
//   - model: the canonical operation, parameter, and document types
//   - docerrors: typed errors (lex, schema, reference, aggregation, config)
//
// # Quick Start
//
// Scan a directory:
//
//	result, err := scanner.ScanWithOptions(ctx,
//		scanner.WithInputs(extract.Input{Path: "./api", Recursive: true}),
//		scanner.WithWorkers(4),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, op := range result.Document.Operations {
//		fmt.Println(op.Method, op.Path.Raw, op.Summary)
//	}
//	for _, d := range result.Document.Diagnostics {
//		fmt.Println(d)
//	}
//
// Check a single block without touching the file system:
//
//	op, warnings, err := scanner.New().ProcessBlock(extract.Block{
//		File: "users.go",
//		Line: 12,
//		Text: `<api method="GET" summary="get user"><path path="/users/{id}" /></api>`,
//	})
//
// # Annotation Dialects
//
// The XML dialect:
//
//	<api method="GET" summary="get user" group="users">
//	  <path path="/users/{id}">
//	    <param name="id" type="number" summary="user id" />
//	  </path>
//	  <response status="200" mimetype="json" type="object">
//	    <param name="name" type="string" />
//	  </response>
//	</api>
//
// The header dialect describes the same operation:
//
//	@api GET /users/{id} get user
//	group users
//
//	params:
//	  id:
//	    type: number
//	    summary: user id
//	response:
//	  status: 200
//	  content:
//	    json:
//	      schema:
//	        type: object
//	        properties:
//	          name: string
//
// Both dialects build identical operations.
//
// # Strict and Tolerant Modes
//
// In tolerant mode (the default) a broken block becomes a diagnostic and the
// scan goes on. In strict mode the first failure cancels every worker and the
// scan returns that error and no document.
//
// # Determinism
//
// Operations are sorted by path and then method, diagnostics by file and line.
// Collisions between operations sharing a method and path are resolved in
// scan order (file index, then block index), so the document does not depend
// on the number of workers or their timing.
//
// # Error Handling
//
// All errors returned by the pipeline are typed and can be matched with
// errors.Is against the sentinels in docerrors:
//
//	if errors.Is(err, docerrors.ErrLex) {
//		var lexErr *docerrors.LexError
//		errors.As(err, &lexErr)
//		fmt.Printf("%s:%d: %s\n", lexErr.File, lexErr.Line, lexErr.Message)
//	}
//
// # Command-Line Interface
//
//	# Scan a tree and print a summary
//	annodoc scan ./api
//
//	# Write JSON, failing on the first broken block
//	annodoc scan --strict --format json -o apidoc.json ./api
//
//	# Check the blocks of one file
//	annodoc check api/users.go
//
// Install the CLI:
//
//	go install github.com/erraggy/annodoc/cmd/annodoc@latest
package annodoc
