package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/renato0307/cc-orchestrator/internal/config"
	"github.com/renato0307/cc-orchestrator/internal/lockfile"
	"github.com/renato0307/cc-orchestrator/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	Socket      string           `help:"tmux socket name (tmux -L) sessions live on" env:"CC_ORCHESTRATOR_SOCKET"`
	Tmux        string           `help:"tmux binary to run" default:"tmux"`

	History  HistoryCmd  `cmd:"history" help:"Show the session event journal"`
	Layouts  LayoutsCmd  `cmd:"layouts" help:"Manage layout templates (list, show, add)"`
	Sessions SessionsCmd `cmd:"sessions" help:"Manage orchestrator tmux sessions"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (meta)"`
	Watch    WatchCmd    `cmd:"watch" help:"Live dashboard of orchestrator sessions"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing, applies settings and
// binds the Container for the commands
func (c *CLI) AfterApply(kctx *kong.Context) error {
	c.applySettings()

	logFilePath, err := logging.Initialize(logging.Options{
		Debug:       c.Debug,
		DebugFile:   c.DebugFile,
		MaxLogFiles: c.MaxLogFiles,
		Stdout:      os.Stderr,
	})
	if err != nil {
		return err
	}

	// Child processes (tmux panes running this binary) share the log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv(logging.EnvDebug, "1")
		if logFilePath != "" {
			os.Setenv(logging.EnvDebugFile, logFilePath)
		}
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv(logging.EnvMaxLogFiles, fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Container is created after logging so gorm logs through the real logger
	container, err := NewContainer(ContainerOptions{
		JournalPath:        config.GetJournalPath(),
		KeepFailedSessions: c.settings.GetKeepFailedSessions(),
		LayoutsFile:        c.settings.GetLayoutsFile(),
		ListConcurrency:    c.settings.GetListConcurrency(),
		SocketName:         c.Socket,
		TmuxCommand:        c.Tmux,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container
	kctx.Bind(container)

	logging.Logger.Debug("CLI initialized", "command", kctx.Command(), "socket", c.Socket, "tmux", c.Tmux)
	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// acquireLock takes the cross-process lock held by mutating commands
func acquireLock() (func(), error) {
	lock, err := lockfile.Acquire(config.GetLockPath())
	if err != nil {
		return nil, err
	}
	logging.Logger.Debug("Acquired orchestrator lock")

	return func() {
		if err := lock.Release(); err != nil {
			logging.Logger.Warn("Failed to release orchestrator lock", "error", err)
		}
	}, nil
}

// applySettings fills flags still at their defaults from settings.json.
// Precedence: CLI flags > env vars > settings.json > defaults.
func (c *CLI) applySettings() {
	if c.settings == nil {
		return
	}

	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv(logging.EnvMaxLogFiles); !hasEnv {
			c.MaxLogFiles = c.settings.GetMaxLogFiles()
		}
	}

	if !c.Debug {
		if _, hasEnv := os.LookupEnv(logging.EnvDebug); !hasEnv {
			c.Debug = c.settings.GetDebug()
		}
	}

	if c.Socket == "" {
		c.Socket = c.settings.SocketName
	}

	if c.Tmux == config.DefaultTmuxCommand {
		c.Tmux = c.settings.GetTmuxCommand()
	}
}
