// pkg/security/event_types.go
package security

// EventType names an entry in the audit log.
type EventType string

const (
	EventTypeAccountRegistered  EventType = "account_registered"
	EventTypeRegisterRejected   EventType = "register_rejected"
	EventTypeLoginSuccess       EventType = "login_success"
	EventTypeLoginFailed        EventType = "login_failed"
	EventTypeLogout             EventType = "logout"
	EventTypeBoardReset         EventType = "board_reset"
	EventTypeUnauthenticatedUse EventType = "unauthenticated_use"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// DefaultSeverity is the severity an event is logged with unless overridden.
func (e EventType) DefaultSeverity() Severity {
	switch e {
	case EventTypeLoginFailed, EventTypeRegisterRejected, EventTypeUnauthenticatedUse:
		return SeverityMedium
	case EventTypeBoardReset:
		return SeverityHigh
	default:
		return SeverityLow
	}
}
