package domain

import (
	"strings"
	"time"
)

// SessionPrefix is the namespace every orchestrator-managed tmux session carries
const SessionPrefix = "cc-orchestrator-"

// DefaultLayoutTemplate is applied when a requested template is unknown
const DefaultLayoutTemplate = "default"

// SessionConfig describes a session to be created. It is consumed once by create.
type SessionConfig struct {
	AutoAttach       bool
	Environment      map[string]string
	InstanceID       string
	LayoutTemplate   string
	PersistAfterExit bool
	SessionName      string
	WorkingDirectory string
}

// TemplateName returns the requested layout template, defaulting to "default"
func (c SessionConfig) TemplateName() string {
	if c.LayoutTemplate == "" {
		return DefaultLayoutTemplate
	}
	return c.LayoutTemplate
}

// SessionInfo is the tracked state of one orchestrator session
type SessionInfo struct {
	ActiveWindow     string        `json:"active_window,omitempty"`
	AttachedClients  int           `json:"attached_clients"`
	CreatedAt        time.Time     `json:"created_at"`
	InstanceID       string        `json:"instance_id"`
	LastActivity     *time.Time    `json:"last_activity,omitempty"`
	LayoutTemplate   string        `json:"layout_template"`
	SessionName      string        `json:"session_name"`
	Status           SessionStatus `json:"status"`
	Windows          []string      `json:"windows"`
	WorkingDirectory string        `json:"working_directory"`
}

// Clone returns a copy that shares no mutable state with the receiver
func (s SessionInfo) Clone() SessionInfo {
	out := s
	if s.Windows != nil {
		out.Windows = append([]string(nil), s.Windows...)
	}
	if s.LastActivity != nil {
		t := *s.LastActivity
		out.LastActivity = &t
	}
	return out
}

// Touch sets the last activity timestamp
func (s *SessionInfo) Touch(now time.Time) {
	s.LastActivity = &now
}

// NormalizeSessionName prefixes name with SessionPrefix unless it already carries it.
// Normalizing is idempotent.
func NormalizeSessionName(name string) string {
	if strings.HasPrefix(name, SessionPrefix) {
		return name
	}
	return SessionPrefix + name
}

// IsManagedSessionName reports whether a tmux session name belongs to the orchestrator
func IsManagedSessionName(name string) bool {
	return strings.HasPrefix(name, SessionPrefix)
}
