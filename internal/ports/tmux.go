package ports

import (
	"context"
	"errors"
	"os/exec"
	"time"
)

// Error sentinels for tmux operations
var (
	ErrTmuxNoServer        = errors.New("tmux server not running")
	ErrTmuxSessionNotFound = errors.New("tmux session not found")
)

// TmuxSession is a live session as reported by the tmux server
type TmuxSession struct {
	Activity        time.Time
	AttachedClients int
	CreatedAt       time.Time
	Name            string
	Path            string
}

// TmuxWindow is a live window. ID is the stable tmux identifier (@N).
type TmuxWindow struct {
	Active bool
	ID     string
	Index  int
	Name   string
	PaneID string
}

// TmuxPane is a live pane. ID is the stable tmux identifier (%N).
type TmuxPane struct {
	ID    string
	Index int
}

// TmuxSessionLifecycle handles session existence, creation and removal
type TmuxSessionLifecycle interface {
	GetSession(ctx context.Context, name string) (*TmuxSession, error)
	HasSession(ctx context.Context, name string) (bool, error)
	KillSession(ctx context.Context, name string) error
	ListSessions(ctx context.Context) ([]TmuxSession, error)
	NewSession(ctx context.Context, name, startDir string) error
}

// TmuxEnvironment handles per-session environment variables
type TmuxEnvironment interface {
	SetEnvironment(ctx context.Context, sessionName, key, value string) error
}

// TmuxWindowController handles windows inside a session
type TmuxWindowController interface {
	KillWindow(ctx context.Context, windowID string) error
	ListWindows(ctx context.Context, sessionName string) ([]TmuxWindow, error)
	NewWindow(ctx context.Context, sessionName, windowName, startDir string) (*TmuxWindow, error)
	SetWindowOption(ctx context.Context, windowID, option, value string) error
}

// TmuxPaneController handles panes inside a window
type TmuxPaneController interface {
	SendKeys(ctx context.Context, paneID, keys string) error
	SplitWindow(ctx context.Context, windowID string, horizontal bool, startDir string) (*TmuxPane, error)
}

// TmuxSessionAttacher handles terminal clients of a session
type TmuxSessionAttacher interface {
	AttachSession(ctx context.Context, name string) error
	DetachClients(ctx context.Context, name string) error
	GetAttachCommand(name string) *exec.Cmd
}

// TmuxClient is the composite tmux interface
type TmuxClient interface {
	TmuxEnvironment
	TmuxPaneController
	TmuxSessionAttacher
	TmuxSessionLifecycle
	TmuxWindowController
}
