package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/logging"
)

// SessionsAdoptCmd starts tracking a live session the orchestrator does not know
type SessionsAdoptCmd struct {
	Instance string `help:"Id of the instance that owns the session" short:"i"`
	Layout   string `help:"Layout name to record (the session is not changed)" short:"l"`
	Name     string `arg:"" help:"Name of the session to adopt"`
}

// Run executes the adopt command
func (s *SessionsAdoptCmd) Run(container *Container) error {
	logging.Logger.Info("Executing sessions adopt command", "session", s.Name, "instance", s.Instance)

	var info *domain.SessionInfo
	err := container.withLock(func() error {
		var err error
		info, err = container.SessionService.AdoptSession(context.Background(), s.Name, s.Instance, s.Layout)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to adopt session: %w", err)
	}

	fmt.Fprintf(container.Stdout, "Session '%s' is now tracked (%d window(s))\n", info.SessionName, len(info.Windows))
	return nil
}
