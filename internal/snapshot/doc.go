// Package snapshot exports the clip database into a standalone SQLite file
// for ad-hoc querying with external tools.
//
// A snapshot is write-once: Export always produces a fresh file and nothing
// reads a snapshot back into the clip database. Inspect only verifies the
// schema version and counts rows.
package snapshot
