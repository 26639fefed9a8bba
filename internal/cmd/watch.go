package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/cc-orchestrator/internal/logging"
	"github.com/renato0307/cc-orchestrator/internal/ui"
)

// WatchCmd opens the live session dashboard
type WatchCmd struct {
	Interval    time.Duration `help:"Refresh interval" default:"2s"`
	TrackedOnly bool          `help:"Hide orchestrator sessions that are not tracked" short:"t"`
}

// Run executes the watch command
func (w *WatchCmd) Run(container *Container) error {
	if container.Interactive != nil && !container.Interactive() {
		return errors.New("the dashboard needs a terminal")
	}
	if w.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", w.Interval)
	}

	logging.Logger.Info("Starting dashboard", "interval", w.Interval, "trackedOnly", w.TrackedOnly)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := ui.NewWatchModel(ctx, container.SessionService, ui.WatchOptions{
		IncludeOrphaned: !w.TrackedOnly,
		Interval:        w.Interval,
		Lock:            container.Lock,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	logging.Logger.Info("Dashboard closed")
	return nil
}
