package ports

import (
	"context"

	"github.com/renato0307/cc-orchestrator/internal/domain"
)

// SessionEventWriter records lifecycle events
type SessionEventWriter interface {
	Record(ctx context.Context, event domain.SessionEvent) error
}

// SessionEventReader queries recorded lifecycle events
type SessionEventReader interface {
	// LatestCreated returns the newest "created" event per session that has no later "destroyed" event
	LatestCreated(ctx context.Context) ([]domain.SessionEvent, error)
	List(ctx context.Context, filter domain.EventFilter) ([]domain.SessionEvent, error)
}

// SessionJournal is the composite interface
type SessionJournal interface {
	SessionEventReader
	SessionEventWriter
	Close() error
}
