// Package kv implements the durable key/value slots the dashboard keeps its
// state in: the session slot and the cached directory snapshot.
//
// Values are opaque byte payloads (JSON in practice). A Get on a missing key
// returns (nil, nil); callers decide on their own fallback.
//
// Backends:
//   - SQLiteRepository:   default, a local file (modernc.org/sqlite)
//   - PostgresRepository: shared database via the pgx stdlib driver
//   - MemoryRepository:   process-local map, nothing survives a restart
//
// The SQL backends expect the kv_slots table created by the migrations in
// internal/storage/migrations.
package kv
