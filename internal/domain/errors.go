package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionBusy     = errors.New("session has attached clients")
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionResource = errors.New("session resource failure")
)

// ErrorKind classifies a SessionError
type ErrorKind string

const (
	KindBusy     ErrorKind = "busy"
	KindConflict ErrorKind = "conflict"
	KindResource ErrorKind = "resource"
)

// SessionError is returned by setup operations that must fail loudly.
// Steady-state operations report failure through their return values instead.
type SessionError struct {
	Err         error
	Kind        ErrorKind
	Message     string
	SessionName string
}

func (e *SessionError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.SessionName != "" {
		return fmt.Sprintf("session %s: %s", e.SessionName, msg)
	}
	return msg
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a SessionError against the kind sentinels
func (e *SessionError) Is(target error) bool {
	switch target {
	case ErrSessionExists:
		return e.Kind == KindConflict
	case ErrSessionBusy:
		return e.Kind == KindBusy
	case ErrSessionResource:
		return e.Kind == KindResource
	}
	return false
}

// NewConflictError reports a session that already exists
func NewConflictError(sessionName string) *SessionError {
	return &SessionError{
		Kind:        KindConflict,
		Message:     "already exists",
		SessionName: sessionName,
	}
}

// NewBusyError reports a session that cannot be destroyed without force
func NewBusyError(sessionName string, clients int) *SessionError {
	return &SessionError{
		Kind:        KindBusy,
		Message:     fmt.Sprintf("has %d attached client(s), use force to destroy", clients),
		SessionName: sessionName,
	}
}

// NewResourceError wraps a failure while preparing or materializing a session
func NewResourceError(sessionName, message string, err error) *SessionError {
	return &SessionError{
		Err:         err,
		Kind:        KindResource,
		Message:     message,
		SessionName: sessionName,
	}
}
