package services

import (
	"context"
	"fmt"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/logging"
	"github.com/renato0307/cc-orchestrator/internal/ports"
)

// remainOnExit keeps panes open after their command exits
const remainOnExit = "remain-on-exit"

// applyLayout materializes template in a freshly created session.
//
// The first window spec replaces the window tmux created with the session;
// that window is looked up by position before the replacement exists. Later
// window specs always add a window. Within a window the first pane is the
// window's own pane and every later pane is a split. A failure stops the
// layout where it is; nothing already created is undone here.
func (s *SessionService) applyLayout(
	ctx context.Context,
	sessionName string,
	workDir string,
	template domain.LayoutTemplate,
	persistAfterExit bool,
) *domain.SessionError {
	logging.Logger.Debug("Applying layout", "session", sessionName, "template", template.Name, "windows", len(template.Windows))

	for i, spec := range template.Windows {
		var implicit *ports.TmuxWindow
		if i == 0 {
			existing, err := s.tmuxClient.ListWindows(ctx, sessionName)
			if err != nil {
				return domain.NewResourceError(sessionName, "failed to list windows", err)
			}
			if len(existing) > 0 {
				implicit = &existing[0]
			}
		}

		window, err := s.tmuxClient.NewWindow(ctx, sessionName, spec.Name, workDir)
		if err != nil {
			return domain.NewResourceError(sessionName, fmt.Sprintf("failed to create window %q", spec.Name), err)
		}

		if implicit != nil {
			if err := s.tmuxClient.KillWindow(ctx, implicit.ID); err != nil {
				return domain.NewResourceError(sessionName, "failed to replace default window", err)
			}
		}

		if persistAfterExit {
			if err := s.tmuxClient.SetWindowOption(ctx, window.ID, remainOnExit, "on"); err != nil {
				return domain.NewResourceError(sessionName, fmt.Sprintf("failed to set %s on window %q", remainOnExit, spec.Name), err)
			}
		}

		if err := s.applyPanes(ctx, sessionName, workDir, template, spec, window); err != nil {
			return err
		}
	}

	return nil
}

func (s *SessionService) applyPanes(
	ctx context.Context,
	sessionName string,
	workDir string,
	template domain.LayoutTemplate,
	spec domain.WindowSpec,
	window *ports.TmuxWindow,
) *domain.SessionError {
	for j, pane := range spec.EffectivePanes() {
		paneID := window.PaneID
		if j > 0 {
			split, err := s.tmuxClient.SplitWindow(ctx, window.ID, pane.IsHorizontal(), workDir)
			if err != nil {
				return domain.NewResourceError(sessionName, fmt.Sprintf("failed to split window %q", spec.Name), err)
			}
			paneID = split.ID
		}

		command := template.ResolvePaneCommand(spec, pane)
		if command == "" {
			continue
		}

		if err := s.tmuxClient.SendKeys(ctx, paneID, command); err != nil {
			return domain.NewResourceError(sessionName, fmt.Sprintf("failed to start %q in window %q", command, spec.Name), err)
		}
	}
	return nil
}
