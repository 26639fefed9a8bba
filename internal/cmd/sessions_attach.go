package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/logging"
)

var errNoTerminal = errors.New("attaching needs a terminal; run from a TTY or inside tmux")

// SessionsAttachCmd attaches to a session
type SessionsAttachCmd struct {
	Name string `arg:"" help:"Name of the session to attach to"`
}

// Run executes the attach command
func (s *SessionsAttachCmd) Run(container *Container) error {
	logging.Logger.Info("Executing sessions attach command", "session", s.Name)
	return attach(context.Background(), container, s.Name)
}

// attach switches the current tmux client when running inside tmux, and
// otherwise hands this terminal to a tmux client until it detaches.
func attach(ctx context.Context, container *Container, name string) error {
	if os.Getenv("TMUX") != "" {
		return container.withLock(func() error {
			if !container.SessionService.AttachSession(ctx, name) {
				return fmt.Errorf("failed to attach to session %s", name)
			}
			return nil
		})
	}

	if container.Interactive == nil || !container.Interactive() {
		return errNoTerminal
	}

	var cmd *exec.Cmd
	err := container.withLock(func() error {
		var err error
		cmd, err = container.SessionService.ForegroundAttachCommand(ctx, name)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to attach: %w", err)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logging.Logger.Info("Handing terminal to tmux client", "session", name)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux client exited: %w", err)
	}
	logging.Logger.Info("tmux client detached", "session", name)
	return nil
}

// SessionsDetachCmd detaches every client from a session
type SessionsDetachCmd struct {
	Name string `arg:"" help:"Name of the session to detach"`
}

// Run executes the detach command
func (s *SessionsDetachCmd) Run(container *Container) error {
	logging.Logger.Info("Executing sessions detach command", "session", s.Name)

	err := container.withLock(func() error {
		if !container.SessionService.DetachSession(context.Background(), s.Name) {
			return fmt.Errorf("failed to detach session %s", s.Name)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(container.Stdout, "Session '%s' detached\n", domain.NormalizeSessionName(s.Name))
	return nil
}
