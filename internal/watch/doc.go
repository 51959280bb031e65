// Package watch reports changes to the clip database files.
//
// The data directory is watched rather than the files themselves because
// saves replace files by renaming a temporary sibling into place. Events are
// debounced so one save, which touches three files, produces one callback.
package watch
