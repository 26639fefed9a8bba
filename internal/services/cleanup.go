package services

import (
	"context"

	"github.com/renato0307/cc-orchestrator/internal/logging"
)

// CleanupSessions destroys every tracked session, or only those owned by
// instanceID when it is not empty, and returns how many were destroyed.
// A session that fails to be destroyed is logged and skipped.
func (s *SessionService) CleanupSessions(ctx context.Context, instanceID string, force bool) int {
	destroyed := 0
	attempted := 0

	for _, info := range s.registry.Snapshot() {
		if instanceID != "" && info.InstanceID != instanceID {
			continue
		}
		attempted++

		ok, err := s.DestroySession(ctx, info.SessionName, force)
		if err != nil {
			logging.Logger.Warn("Cleanup skipped session", "session", info.SessionName, "error", err)
			continue
		}
		if ok {
			destroyed++
		}
	}

	logging.Logger.Info("Cleanup finished", "instance", instanceID, "attempted", attempted, "destroyed", destroyed)
	return destroyed
}
