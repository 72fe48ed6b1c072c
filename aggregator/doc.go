// Package aggregator merges operations from many files into one document.
//
// Workers never touch shared state: they send [Entry] values over a channel
// and a single goroutine running [Aggregator.Run] owns the operation map.
// Candidates for the same (method, path) key are kept until the end of the
// run and resolved in scan order, so the result does not depend on the
// order in which workers finish.
//
// # Collision Strategies
//
//   - StrategyAcceptRight: keep the operation scanned last (default)
//   - StrategyAcceptLeft: keep the operation scanned first
//   - StrategyFailOnCollision: report the duplicate as an error
//   - StrategyMerge: merge all candidates into the first one
//   - StrategyDeduplicateEquivalent: collapse identical operations, fail otherwise
//
// Every collision is recorded as a diagnostic and, when enabled, in a
// [CollisionReport].
package aggregator
