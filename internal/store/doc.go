// Package store holds the authoritative question records.
//
// RecordStore is the four-operation contract the cache layer consumes
// (List, Add, Update, Remove) plus Get for single-record reads. Two
// implementations are provided:
//
//   - Memory: a mutex-guarded slice, explicitly constructed and seeded.
//     Used by tests and the demo CLI when no database is given.
//   - SQLite: durable storage with the same semantics.
//
// # Semantics
//
//   - List returns a snapshot copy, most recently added first.
//   - Add assigns a fresh identifier from the configured IDGenerator and
//     prepends. Title uniqueness is NOT checked here.
//   - Update merges a question.Patch; an unknown ID yields a not-found error.
//   - Remove returns the ID whether or not a record matched.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Ordering uses the pos INTEGER column (a logical insertion counter), never
// timestamps. Tags are stored in their comma-joined form.
package store
