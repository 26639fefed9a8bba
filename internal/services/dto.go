package services

import "time"

// DefaultListConcurrency bounds parallel session inspection in ListSessions
const DefaultListConcurrency = 8

// SessionServiceOptions tunes a SessionService
type SessionServiceOptions struct {
	// KeepFailedSessions leaves a session that failed mid-create in tmux,
	// tracked with status ERROR, instead of killing it
	KeepFailedSessions bool
	ListConcurrency    int
	Now                func() time.Time
}

