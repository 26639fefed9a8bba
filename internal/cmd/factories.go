package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"golang.org/x/term"

	adapterstorage "github.com/renato0307/cc-orchestrator/internal/adapters/storage"
	adaptertmux "github.com/renato0307/cc-orchestrator/internal/adapters/tmux"
	"github.com/renato0307/cc-orchestrator/internal/layout"
	"github.com/renato0307/cc-orchestrator/internal/logging"
	"github.com/renato0307/cc-orchestrator/internal/ports"
	"github.com/renato0307/cc-orchestrator/internal/services"
	"github.com/renato0307/cc-orchestrator/internal/ui"
)

// ContainerOptions configures NewContainer
type ContainerOptions struct {
	JournalPath        string
	KeepFailedSessions bool
	LayoutsFile        string
	ListConcurrency    int
	SocketName         string
	// TmuxClient overrides the exec-based client, for tests
	TmuxClient  ports.TmuxClient
	TmuxCommand string
}

// Container holds all dependencies for the application
type Container struct {
	// Services
	Layouts        *layout.Registry
	SessionService *services.SessionService

	// Terminal interaction, replaceable in tests
	Confirm     func(title, description string) (bool, error)
	Interactive func() bool
	Lock        func() (func(), error)
	Stdout      io.Writer

	LayoutsFile string

	// Internal - for cleanup only
	journal    ports.SessionJournal
	tmuxClient ports.TmuxClient
}

// NewContainer creates a new Container with all dependencies wired. Sessions
// journaled by earlier runs and still live in tmux are tracked again.
func NewContainer(opts ContainerOptions) (*Container, error) {
	journal, err := adapterstorage.NewSQLiteJournal(opts.JournalPath)
	if err != nil {
		return nil, err
	}

	layouts := layout.NewRegistry()
	if _, err := layouts.LoadFile(opts.LayoutsFile); err != nil {
		journal.Close()
		return nil, err
	}

	tmuxClient := opts.TmuxClient
	if tmuxClient == nil {
		tmuxClient = adaptertmux.NewClient(opts.TmuxCommand, opts.SocketName)
	}

	sessionService := services.NewSessionService(tmuxClient, layouts, journal, services.SessionServiceOptions{
		KeepFailedSessions: opts.KeepFailedSessions,
		ListConcurrency:    opts.ListConcurrency,
	})

	restored, err := sessionService.RestoreFromJournal(context.Background())
	if err != nil {
		logging.Logger.Warn("Failed to restore sessions from journal", "error", err)
	}
	logging.Logger.Debug("Container ready", "restored", restored, "templates", len(layouts.All()))

	return &Container{
		Confirm:        ui.Confirm,
		Interactive:    stdinIsTerminal,
		LayoutsFile:    opts.LayoutsFile,
		Layouts:        layouts,
		Lock:           acquireLock,
		SessionService: sessionService,
		Stdout:         os.Stdout,
		journal:        journal,
		tmuxClient:     tmuxClient,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error
	if closer, ok := c.tmuxClient.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	if c.journal != nil {
		errs = append(errs, c.journal.Close())
	}
	return errors.Join(errs...)
}

// withLock runs fn while holding the cross-process lock
func (c *Container) withLock(fn func() error) error {
	if c.Lock == nil {
		return fn()
	}
	release, err := c.Lock()
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
