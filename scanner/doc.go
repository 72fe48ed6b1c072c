// Package scanner runs the annotation pipeline over many source files.
//
// Each source is handled by one task of a bounded worker pool. A task
// extracts comment blocks and pushes every block through the pure chain
// detect, parse, build, validate. Results travel over a channel to a single
// aggregating goroutine, which owns the operation map and resolves
// collisions. The final document is sorted, so its content never depends on
// the order in which workers finish.
//
// # Modes
//
// Tolerant mode (the default) processes every file and reports failures as
// diagnostics next to the operations that succeeded. Strict mode cancels all
// in-flight workers on the first failure and returns that error with no
// document.
//
// # Example
//
//	result, err := scanner.ScanWithOptions(ctx,
//	    scanner.WithInputs(extract.Input{Path: "./src", Recursive: true}),
//	    scanner.WithWorkers(8),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, op := range result.Document.Operations {
//	    fmt.Println(op.Key())
//	}
package scanner
