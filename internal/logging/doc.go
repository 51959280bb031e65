// Package logging assembles structured slog loggers and formatting helpers used
// across aniclip.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and defines the standardized field keys (component, event_type,
// error_hint, impact) so warnings read as cause, impact and next step. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail, and prunes old log files.
package logging
