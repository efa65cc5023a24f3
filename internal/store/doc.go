// Package store provides SQLite-backed durable storage for reduction runs.
//
// The store is an append-only log. Each row records one reduction: the input
// term (notation, canonical JSON and content hash), how it ended, the realized
// result and the budget statistics.
//
// # Ordering
//
//   - Every run gets seq INTEGER from a logical clock, never a timestamp
//   - Queries order by seq, then id COLLATE BINARY
//
// # Identity
//
//   - Run IDs are UUIDv7 by default (testutil.FixedGenerator in tests)
//   - input_hash and result_hash come from term.Hash, so runs of
//     structurally equal terms can be found with RunsForTerm
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
