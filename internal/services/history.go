package services

import (
	"context"
	"fmt"

	"github.com/renato0307/cc-orchestrator/internal/domain"
)

// History returns journaled events, newest first. Without a journal it is empty.
func (s *SessionService) History(ctx context.Context, filter domain.EventFilter) ([]domain.SessionEvent, error) {
	if s.journal == nil {
		return []domain.SessionEvent{}, nil
	}
	if filter.SessionName != "" {
		filter.SessionName = domain.NormalizeSessionName(filter.SessionName)
	}

	events, err := s.journal.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return events, nil
}
