// Package main hosts the aniclip CLI entrypoint and command graph.
//
// Every command loads the clip database from the configured data directory,
// applies one change or renders one view, and saves when something changed.
// Saving writes all three data files and a backup, so commands stay
// stateless between invocations.
package main
