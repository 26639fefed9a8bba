package domain

import "time"

// SessionEventType identifies what happened to a session
type SessionEventType string

const (
	EventAttached       SessionEventType = "attached"
	EventCreateFailed   SessionEventType = "create_failed"
	EventCreated        SessionEventType = "created"
	EventDestroyed      SessionEventType = "destroyed"
	EventDetached       SessionEventType = "detached"
	EventOrphanDetected SessionEventType = "orphan_detected"
)

// SessionEvent is one journaled lifecycle event
type SessionEvent struct {
	Detail         string           `json:"detail,omitempty"`
	ID             string           `json:"id"`
	InstanceID     string           `json:"instance_id,omitempty"`
	LayoutTemplate string           `json:"layout_template,omitempty"`
	OccurredAt     time.Time        `json:"occurred_at"`
	SessionName    string           `json:"session_name"`
	Status         SessionStatus    `json:"status,omitempty"`
	Type           SessionEventType `json:"type"`
	WorkingDir     string           `json:"working_dir,omitempty"`
}

// EventFilter narrows journal queries. Zero values mean "any".
type EventFilter struct {
	InstanceID  string
	Limit       int
	SessionName string
	Type        SessionEventType
}

// ValidEventType reports whether t is one of the journaled event types
func ValidEventType(t SessionEventType) bool {
	switch t {
	case EventAttached, EventCreateFailed, EventCreated, EventDestroyed, EventDetached, EventOrphanDetected:
		return true
	}
	return false
}
