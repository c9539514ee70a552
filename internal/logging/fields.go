package logging

// Standardized attribute keys. Keeping these as constants makes log queries
// stable across components.
const (
	FieldComponent = "component"

	FieldCapability = "capability"

	FieldService = "service"

	FieldPage = "page"

	FieldEventType = "event_type"

	FieldErrorHint = "error_hint"

	FieldImpact = "impact"

	FieldSessionID = "session_id"
)
