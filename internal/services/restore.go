package services

import (
	"context"
	"fmt"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/logging"
)

// adoptedDetail marks journal entries written by AdoptSession
const adoptedDetail = "adopted"

// RestoreFromJournal re-tracks sessions a previous process created that are
// still live in tmux. Sessions already tracked are left alone. It returns the
// number of sessions restored.
func (s *SessionService) RestoreFromJournal(ctx context.Context) (int, error) {
	if s.journal == nil {
		return 0, nil
	}

	events, err := s.journal.LatestCreated(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read journal: %w", err)
	}

	restored := 0
	for _, event := range events {
		name := domain.NormalizeSessionName(event.SessionName)
		if s.registry.Has(name) {
			continue
		}

		live, err := s.tmuxClient.GetSession(ctx, name)
		if err != nil {
			logging.Logger.Debug("Journaled session no longer live", "session", name, "error", err)
			continue
		}

		info := synthesizeInfo(*live)
		info.CreatedAt = event.OccurredAt
		info.InstanceID = event.InstanceID
		if event.LayoutTemplate != "" {
			info.LayoutTemplate = event.LayoutTemplate
		}
		if event.WorkingDir != "" {
			info.WorkingDirectory = event.WorkingDir
		}
		info.AttachedClients = live.AttachedClients
		info.Windows, info.ActiveWindow = s.snapshotWindows(ctx, name)

		s.registry.Put(info)
		restored++
	}

	if restored > 0 {
		logging.Logger.Info("Restored sessions from journal", "count", restored)
	}
	return restored, nil
}

// AdoptSession starts tracking a live session that the registry does not
// know, typically an orphan. Its layout is left untouched; layoutName is
// recorded only, defaulting to "unknown".
func (s *SessionService) AdoptSession(ctx context.Context, name, instanceID, layoutName string) (*domain.SessionInfo, error) {
	name = domain.NormalizeSessionName(name)

	unlock := s.registry.Lock(name)
	defer unlock()

	if s.registry.Has(name) {
		return nil, domain.NewConflictError(name)
	}

	live, err := s.tmuxClient.GetSession(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("cannot adopt %s: %w: %w", name, domain.ErrSessionNotFound, err)
	}

	info := synthesizeInfo(*live)
	info.InstanceID = instanceID
	if layoutName != "" {
		info.LayoutTemplate = layoutName
	}
	info.AttachedClients = live.AttachedClients
	info.Windows, info.ActiveWindow = s.snapshotWindows(ctx, name)
	if info.CreatedAt.IsZero() {
		info.CreatedAt = s.now()
	}

	s.registry.Put(info)
	s.record(ctx, domain.SessionEvent{
		Detail:         adoptedDetail,
		InstanceID:     instanceID,
		LayoutTemplate: info.LayoutTemplate,
		SessionName:    name,
		Status:         info.Status,
		Type:           domain.EventCreated,
		WorkingDir:     info.WorkingDirectory,
	})

	logging.Logger.Info("Session adopted", "session", name, "instance", instanceID)
	return s.GetSessionInfo(name), nil
}
