// Package database provides SQLite-based storage of examination history.
//
// This package implements the SmellDB, which stores:
//   - Runs: one row per scan invocation with its total smell count
//   - Examinations: one row per examined source, with its warnings as JSON
//
// Stored history lets the compare command tell which smells were
// introduced or resolved between two scans of the same source.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the
// database is a single file and the CGO-free driver keeps cross-compilation
// easy.
package database
