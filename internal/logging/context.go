package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering (e.g. clip_rejected).
	FieldEventType = "event_type"
	// FieldErrorHint tells the reader what to check next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldList is the standardized key for clip list names.
	FieldList = "list"
	// FieldShow is the standardized key for show titles.
	FieldShow = "show"
	// FieldPath is the standardized key for file system paths.
	FieldPath = "path"
)
