// Package reorder moves one category to a new position within its collection
// and applies the resulting renumbering as a single atomic batch.
//
// # Algorithm
//
//  1. Fetch the collection in ascending Order.
//  2. Locate the target. If it already sits at the requested position the
//     call returns Unchanged without writing.
//  3. Remove the target and reinsert it at the new position; every other
//     category keeps its relative order.
//  4. Emit an order update for every category, including unmoved ones, so
//     contiguity is re-asserted from a known-good state on every write.
//  5. Submit all updates to the Port as one batch.
//
// # Results
//
// Reorder never returns an error. Failures from the Port, an unknown target
// or an out-of-range position all surface as an InternalError Result that
// carries the cause.
//
// # Cancellation
//
// Once Reorder is called the fetch-compute-write unit runs to completion even
// if the caller's context is cancelled; context values still propagate.
//
// # Concurrency
//
// Concurrent reorders on one collection are not ordered by default and may
// race to a last-write-wins renumbering. Config.SerializeCollections adds an
// in-process lock per collection.
package reorder
