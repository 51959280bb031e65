// Package config loads, normalizes, and validates aniclip configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and still accepts the older whitespace
// key/value config naming clips_filename, tags_filename and shows_filename.
// Data file paths are resolved against the data directory so the rest of the
// program only ever sees absolute paths.
package config
