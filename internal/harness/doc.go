// Package harness runs YAML category scenarios and compares their traces
// against golden files.
//
// A scenario seeds one collection, runs a list of steps (reorder, create,
// rename, delete, sort) through the interactors and records, per step, the
// result kind and the batch that was written. After the last step the
// collection must be contiguous and, when expect_order is given, in that
// order.
//
// Each scenario runs against a fresh in-memory SQLite store. Scenarios that
// set fail_batch run against testutil.MemoryPort instead, with every write
// failing with that message.
//
//	name: move_to_front
//	collection: lib
//	seed: [A, B, C, D]
//	steps:
//	  - op: reorder
//	    id: C
//	    position: 0
//	    expect: Success
//	expect_order: [C, A, B, D]
//
// Golden files live in testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
