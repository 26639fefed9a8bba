package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/logging"
	"github.com/renato0307/cc-orchestrator/internal/ports"
)

// unknownLayout marks sessions whose layout the orchestrator did not apply
const unknownLayout = "unknown"

// ListSessions returns every orchestrator session live in tmux, sorted by
// name. Tracked sessions are refreshed from tmux and untracked ones are
// synthesized. includeOrphaned only controls whether untracked sessions are
// reported in the log. A session that cannot be inspected is skipped.
func (s *SessionService) ListSessions(ctx context.Context, includeOrphaned bool) []domain.SessionInfo {
	live, err := s.tmuxClient.ListSessions(ctx)
	if err != nil {
		logging.Logger.Error("Failed to list tmux sessions", "error", err)
		return []domain.SessionInfo{}
	}

	candidates := managedSessions(live)

	if includeOrphaned {
		tracked := s.registry.Names()
		var orphans []string
		for _, session := range candidates {
			if _, ok := tracked[session.Name]; !ok {
				orphans = append(orphans, session.Name)
			}
		}
		if len(orphans) > 0 {
			logging.Logger.Warn("Untracked orchestrator sessions found", "orphans", orphans)
		}
	}

	results := make([]*domain.SessionInfo, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.listConcurrency)
	for i, session := range candidates {
		g.Go(func() error {
			info, err := s.inspectSession(gctx, session)
			if err != nil {
				logging.Logger.Warn("Skipping session that failed inspection", "session", session.Name, "error", err)
				return nil
			}
			results[i] = info
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.SessionInfo, 0, len(results))
	for _, info := range results {
		if info != nil {
			out = append(out, *info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionName < out[j].SessionName })
	return out
}

// inspectSession builds the record for one live session, refreshing the
// registry entry when the session is tracked.
func (s *SessionService) inspectSession(ctx context.Context, live ports.TmuxSession) (*domain.SessionInfo, error) {
	windows, err := s.tmuxClient.ListWindows(ctx, live.Name)
	if err != nil {
		return nil, err
	}
	names, active := windowNames(windows)

	refresh := func(info *domain.SessionInfo) {
		info.ActiveWindow = active
		info.AttachedClients = live.AttachedClients
		info.Windows = names
		if !live.Activity.IsZero() {
			activity := live.Activity
			info.LastActivity = &activity
		}
	}

	if tracked, ok := s.registry.Get(live.Name); ok {
		refresh(&tracked)
		s.registry.Update(live.Name, refresh)
		return &tracked, nil
	}

	info := synthesizeInfo(live)
	refresh(&info)
	return &info, nil
}

// synthesizeInfo builds a best-effort record for a session the registry does not know
func synthesizeInfo(live ports.TmuxSession) domain.SessionInfo {
	status := domain.StatusDetached
	if live.AttachedClients > 0 {
		status = domain.StatusActive
	}

	workDir := live.Path
	if workDir == "" {
		workDir = "/"
	}

	return domain.SessionInfo{
		CreatedAt:        live.CreatedAt,
		LayoutTemplate:   unknownLayout,
		SessionName:      domain.NormalizeSessionName(live.Name),
		Status:           status,
		WorkingDirectory: workDir,
	}
}

// DetectOrphanedSessions returns the names of orchestrator sessions live in
// tmux but absent from the registry, sorted. Each orphan is journaled.
func (s *SessionService) DetectOrphanedSessions(ctx context.Context) ([]string, error) {
	live, err := s.tmuxClient.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	orphans := []string{}
	for _, session := range managedSessions(live) {
		if !s.registry.Has(session.Name) {
			orphans = append(orphans, session.Name)
		}
	}
	sort.Strings(orphans)

	if len(orphans) > 0 {
		logging.Logger.Warn("Orphaned sessions detected", "count", len(orphans), "orphans", orphans)
	}
	for _, name := range orphans {
		s.record(ctx, domain.SessionEvent{SessionName: name, Type: domain.EventOrphanDetected})
	}
	return orphans, nil
}

// managedSessions filters out sessions that do not carry the orchestrator prefix
func managedSessions(sessions []ports.TmuxSession) []ports.TmuxSession {
	out := make([]ports.TmuxSession, 0, len(sessions))
	for _, session := range sessions {
		if domain.IsManagedSessionName(session.Name) {
			out = append(out, session)
		}
	}
	return out
}
