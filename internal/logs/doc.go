// Package logs reads the aniclip log file for the `aniclip logs` command.
//
// Last returns the final lines with bounded memory; Follow polls for lines
// appended after an offset until its context is cancelled.
package logs
