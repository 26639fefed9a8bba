package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/logging"
	"github.com/renato0307/cc-orchestrator/internal/ui"
)

// sessionView is the JSON shape of a listed session
type sessionView struct {
	domain.SessionInfo
	Tracked bool `json:"tracked"`
}

// SessionsListCmd lists sessions
type SessionsListCmd struct {
	Format      string `help:"Output format: table or json" enum:"table,json" default:"table"`
	TrackedOnly bool   `help:"Hide orchestrator sessions that are not tracked" short:"t"`
}

// Run executes the list command
func (s *SessionsListCmd) Run(container *Container) error {
	logging.Logger.Debug("Executing sessions list command", "trackedOnly", s.TrackedOnly)

	sessions := container.SessionService.ListSessions(context.Background(), !s.TrackedOnly)
	tracked := isTracked(container)
	if s.TrackedOnly {
		sessions = onlyTracked(sessions, tracked)
	}

	if s.Format == "json" {
		views := make([]sessionView, 0, len(sessions))
		for _, info := range sessions {
			views = append(views, sessionView{SessionInfo: info, Tracked: tracked(info.SessionName)})
		}
		return printJSON(container.Stdout, views)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(container.Stdout, "No sessions")
		return nil
	}
	fmt.Fprintln(container.Stdout, ui.SessionsTable(sessions, tracked, time.Now()))
	return nil
}

// SessionsInfoCmd shows one session
type SessionsInfoCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Name   string `arg:"" help:"Name of the session to show"`
}

// Run executes the info command
func (s *SessionsInfoCmd) Run(container *Container) error {
	name := domain.NormalizeSessionName(s.Name)
	tracked := isTracked(container)

	// Listing refreshes the tracked record from tmux
	for _, info := range container.SessionService.ListSessions(context.Background(), true) {
		if info.SessionName != name {
			continue
		}
		if s.Format == "json" {
			return printJSON(container.Stdout, sessionView{SessionInfo: info, Tracked: tracked(name)})
		}
		fmt.Fprint(container.Stdout, ui.SessionDetail(info, tracked(name), time.Now()))
		return nil
	}

	return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, name)
}

// SessionsOrphansCmd lists untracked orchestrator sessions
type SessionsOrphansCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the orphans command
func (s *SessionsOrphansCmd) Run(container *Container) error {
	orphans, err := container.SessionService.DetectOrphanedSessions(context.Background())
	if err != nil {
		return fmt.Errorf("failed to detect orphaned sessions: %w", err)
	}

	if s.Format == "json" {
		return printJSON(container.Stdout, orphans)
	}

	if len(orphans) == 0 {
		fmt.Fprintln(container.Stdout, "No orphaned sessions")
		return nil
	}
	for _, name := range orphans {
		fmt.Fprintln(container.Stdout, name)
	}
	fmt.Fprintln(container.Stdout, "\nUse 'sessions adopt NAME' to track, or 'sessions destroy NAME' to remove.")
	return nil
}

func onlyTracked(sessions []domain.SessionInfo, tracked ui.TrackedFunc) []domain.SessionInfo {
	out := sessions[:0:0]
	for _, info := range sessions {
		if tracked(info.SessionName) {
			out = append(out, info)
		}
	}
	return out
}

func isTracked(container *Container) ui.TrackedFunc {
	return func(name string) bool {
		return container.SessionService.GetSessionInfo(name) != nil
	}
}
