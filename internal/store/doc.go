// Package store provides SQLite-backed durable storage for linearizability
// check runs.
//
// The store is an append-only log with:
//   - Runs: one row per Analyze invocation (verdict, prefix length, timing)
//   - Run events: a denormalized copy of the input history, for replay
//   - Run worlds: the deepest worlds found, canonical-JSON encoded
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//   - single writer: max_open_conns=1, since SQLite allows only one
//
// A run's events are read back in seq order and its worlds in
// equivalence-key order, so replay does not depend on wall-clock time.
// ListRuns orders runs by start time, then by ID.
package store
