package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/logging"
)

// SessionsDestroyCmd destroys a session
type SessionsDestroyCmd struct {
	Force bool   `help:"Destroy even when clients are attached" short:"f"`
	Name  string `arg:"" help:"Name of the session to destroy"`
}

// Run executes the destroy command
func (s *SessionsDestroyCmd) Run(container *Container) error {
	logging.Logger.Info("Executing sessions destroy command", "session", s.Name, "force", s.Force)

	ctx := context.Background()
	destroyed, err := s.destroy(ctx, container, s.Force)

	var sessionErr *domain.SessionError
	if errors.Is(err, domain.ErrSessionBusy) && errors.As(err, &sessionErr) && container.Interactive != nil && container.Interactive() {
		confirmed, confirmErr := container.Confirm(
			fmt.Sprintf("Session %s has attached clients", sessionErr.SessionName),
			"Destroying it disconnects them. Destroy anyway?",
		)
		if confirmErr != nil {
			return confirmErr
		}
		if !confirmed {
			fmt.Fprintln(container.Stdout, "Cancelled")
			return nil
		}
		destroyed, err = s.destroy(ctx, container, true)
	}
	if err != nil {
		return err
	}

	if !destroyed {
		return fmt.Errorf("session %s was not destroyed (not found or tmux refused)", domain.NormalizeSessionName(s.Name))
	}

	fmt.Fprintf(container.Stdout, "Session '%s' destroyed\n", domain.NormalizeSessionName(s.Name))
	return nil
}

func (s *SessionsDestroyCmd) destroy(ctx context.Context, container *Container, force bool) (bool, error) {
	var destroyed bool
	err := container.withLock(func() error {
		var err error
		destroyed, err = container.SessionService.DestroySession(ctx, s.Name, force)
		return err
	})
	return destroyed, err
}

// SessionsCleanupCmd destroys tracked sessions in bulk
type SessionsCleanupCmd struct {
	Force    bool   `help:"Destroy sessions even when clients are attached" short:"f"`
	Instance string `help:"Only destroy sessions owned by this instance id" short:"i"`
	Yes      bool   `help:"Do not ask for confirmation" short:"y"`
}

// Run executes the cleanup command
func (s *SessionsCleanupCmd) Run(container *Container) error {
	logging.Logger.Info("Executing sessions cleanup command", "instance", s.Instance, "force", s.Force)

	ctx := context.Background()
	var targets []string
	for _, info := range onlyTracked(container.SessionService.ListSessions(ctx, false), isTracked(container)) {
		if s.Instance == "" || info.InstanceID == s.Instance {
			targets = append(targets, info.SessionName)
		}
	}

	if len(targets) == 0 {
		fmt.Fprintln(container.Stdout, "Nothing to clean up")
		return nil
	}

	if !s.Yes {
		if container.Interactive == nil || !container.Interactive() {
			return errors.New("refusing to clean up without --yes in a non-interactive shell")
		}
		confirmed, err := container.Confirm(
			fmt.Sprintf("Destroy %d session(s)?", len(targets)),
			strings.Join(targets, "\n"),
		)
		if err != nil {
			return err
		}
		if !confirmed {
			logging.Logger.Info("User cancelled cleanup")
			fmt.Fprintln(container.Stdout, "Cancelled")
			return nil
		}
	}

	var destroyed int
	err := container.withLock(func() error {
		destroyed = container.SessionService.CleanupSessions(ctx, s.Instance, s.Force)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(container.Stdout, "Destroyed %d of %d session(s)\n", destroyed, len(targets))
	return nil
}
