// Package clipdb ties clips, lists, shows and tags into one in-memory
// database backed by three flat files.
//
// The main list "General" holds every clip. Sub lists reference the same
// clip values, so metadata merged through AddRecord is visible everywhere the
// clip appears. Lookups are linear scans over the main list; the database is
// sized for a personal collection and is not safe for concurrent use.
//
// Save writes the clip, show and tag files atomically while holding a lock
// file in the data directory, then copies them into a timestamped backup
// directory and prunes old backups.
package clipdb
