package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/logging"
)

// SessionsCreateCmd creates a session
type SessionsCreateCmd struct {
	Attach   bool              `help:"Attach to the session once it is created" short:"a"`
	Dir      string            `help:"Working directory, created when missing (default: current directory)" type:"path"`
	Env      map[string]string `help:"Session environment variable KEY=VALUE (repeatable)" short:"e"`
	Format   string            `help:"Output format: table or json" enum:"table,json" default:"table"`
	Instance string            `help:"Id of the instance that owns the session" short:"i"`
	Layout   string            `help:"Layout template (default: settings default_layout, then 'default')" short:"l"`
	Name     string            `arg:"" help:"Session name, prefixed with cc-orchestrator- when missing"`
	Persist  bool              `help:"Keep panes open after their command exits"`
}

// Run executes the create command
func (s *SessionsCreateCmd) Run(container *Container, cli *CLI) error {
	layoutName := s.Layout
	if layoutName == "" {
		layoutName = cli.settings.GetDefaultLayout()
	}

	logging.Logger.Info("Executing sessions create command", "session", s.Name, "layout", layoutName, "instance", s.Instance)

	cfg := domain.SessionConfig{
		Environment:      s.Env,
		InstanceID:       s.Instance,
		LayoutTemplate:   layoutName,
		PersistAfterExit: s.Persist,
		SessionName:      s.Name,
		WorkingDirectory: s.Dir,
	}

	ctx := context.Background()
	var info *domain.SessionInfo
	err := container.withLock(func() error {
		var err error
		info, err = container.SessionService.CreateSession(ctx, cfg)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if s.Format == "json" {
		if err := printJSON(container.Stdout, info); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(container.Stdout, "Session '%s' created with layout '%s' (%d window(s)) in %s\n",
			info.SessionName, info.LayoutTemplate, len(info.Windows), info.WorkingDirectory)
	}

	if s.Attach {
		return attach(ctx, container, info.SessionName)
	}
	return nil
}
