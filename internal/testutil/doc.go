// Package testutil provides deterministic test doubles shared across packages.
//
// MemoryPort is an in-memory implementation of the reorder persistence port
// and the interactor store. Batches are applied atomically against a copy of
// the rows, so an injected or detected failure leaves the visible state
// untouched. Hooks let tests block inside FetchAll or ApplyBatch to exercise
// cancellation and concurrency paths.
package testutil
