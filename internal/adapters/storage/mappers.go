package storage

import (
	"github.com/renato0307/cc-orchestrator/internal/domain"
)

// eventModelToDomain converts a SessionEventModel (GORM) to domain.SessionEvent
func eventModelToDomain(m SessionEventModel) domain.SessionEvent {
	return domain.SessionEvent{
		Detail:         m.Detail,
		ID:             m.ID,
		InstanceID:     m.InstanceID,
		LayoutTemplate: m.LayoutTemplate,
		OccurredAt:     m.OccurredAt,
		SessionName:    m.SessionName,
		Status:         domain.SessionStatus(m.Status),
		Type:           domain.SessionEventType(m.Type),
		WorkingDir:     m.WorkingDir,
	}
}

// domainToEventModel converts a domain.SessionEvent to SessionEventModel (GORM)
func domainToEventModel(e domain.SessionEvent) SessionEventModel {
	return SessionEventModel{
		Detail:         e.Detail,
		ID:             e.ID,
		InstanceID:     e.InstanceID,
		LayoutTemplate: e.LayoutTemplate,
		OccurredAt:     e.OccurredAt.UTC(),
		SessionName:    e.SessionName,
		Status:         string(e.Status),
		Type:           string(e.Type),
		WorkingDir:     e.WorkingDir,
	}
}
