// Package store provides SQLite-backed durable storage for ordered categories.
//
// The store implements the reorder persistence port (FetchAll, ApplyBatch)
// plus the insert, lookup and delete operations the category interactors
// need.
//
// # Guarantees
//
//   - Deterministic reads: every collection query uses
//     ORDER BY sort_order ASC, id ASC COLLATE BINARY.
//   - Atomic batches: ApplyBatch and DeleteAndRenumber run in one
//     transaction. An update naming an unknown ID rolls the whole batch back
//     and returns category.ErrNotFound.
//   - Sparse updates: absent PartialUpdate fields are passed as NULL and kept
//     via COALESCE.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout: configurable, default 5000ms
//   - foreign_keys=ON
//
// The connection pool is limited to one connection; SQLite allows a single
// writer and this also keeps ":memory:" databases shared across calls.
package store
