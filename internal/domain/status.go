package domain

// SessionStatus represents where a session is in its lifecycle
type SessionStatus string

const (
	StatusActive   SessionStatus = "active"
	StatusCreating SessionStatus = "creating"
	StatusDetached SessionStatus = "detached"
	StatusError    SessionStatus = "error"
	StatusStopped  SessionStatus = "stopped"
	StatusStopping SessionStatus = "stopping"
)

// Status symbols (Unicode)
const (
	SymbolActive   = "●"
	SymbolCreating = "◌"
	SymbolDetached = "○"
	SymbolError    = "✗"
	SymbolStopped  = "■"
	SymbolStopping = "◐"
)

var statusTransitions = map[SessionStatus][]SessionStatus{
	StatusCreating: {StatusActive, StatusError},
	StatusActive:   {StatusDetached, StatusStopping, StatusError},
	StatusDetached: {StatusActive, StatusStopping, StatusError},
	StatusStopping: {StatusStopped, StatusError},
	// A failed session kept for inspection can still be attached or destroyed
	StatusError: {StatusActive, StatusDetached, StatusStopping},
}

// CanTransition reports whether moving from one status to another is allowed.
// Setting the same status again is always allowed.
func CanTransition(from, to SessionStatus) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Symbol returns the display symbol for the status
func (s SessionStatus) Symbol() string {
	switch s {
	case StatusActive:
		return SymbolActive
	case StatusCreating:
		return SymbolCreating
	case StatusDetached:
		return SymbolDetached
	case StatusError:
		return SymbolError
	case StatusStopped:
		return SymbolStopped
	case StatusStopping:
		return SymbolStopping
	default:
		return "?"
	}
}
