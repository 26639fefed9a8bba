package tmux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"

	"github.com/renato0307/cc-orchestrator/internal/logging"
	"github.com/renato0307/cc-orchestrator/internal/ports"
)

const (
	sessionFormat = "#{session_name}\t#{session_created}\t#{session_activity}\t#{session_attached}\t#{session_path}"
	windowFormat  = "#{window_id}\t#{window_index}\t#{window_name}\t#{window_active}\t#{pane_id}"
	paneFormat    = "#{pane_id}\t#{pane_index}"
)

// attachmentState tracks a headless client attached through a PTY
type attachmentState struct {
	cmd  *exec.Cmd
	ptmx *os.File
}

// DefaultClient is the default implementation of the ports.TmuxClient interface.
// It shells out to the tmux binary for every operation.
type DefaultClient struct {
	attachedSessions map[string]*attachmentState
	command          string
	mu               sync.Mutex
	socketName       string
}

// Compile-time interface verification
var _ ports.TmuxClient = (*DefaultClient)(nil)

// NewClient creates a new DefaultClient. An empty command means "tmux";
// an empty socketName targets the default server.
func NewClient(command, socketName string) *DefaultClient {
	if command == "" {
		command = "tmux"
	}
	return &DefaultClient{
		attachedSessions: make(map[string]*attachmentState),
		command:          command,
		socketName:       socketName,
	}
}

// exactSession builds a target that matches the session name exactly.
// Without the "=" prefix tmux falls back to prefix matching.
func exactSession(name string) string {
	return "=" + name
}

func (c *DefaultClient) args(args ...string) []string {
	if c.socketName == "" {
		return args
	}
	return append([]string{"-L", c.socketName}, args...)
}

// run executes a tmux subcommand and returns its stdout
func (c *DefaultClient) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.command, c.args(args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", classifyError(args[0], err, stderr.String())
	}
	return stdout.String(), nil
}

// classifyError wraps a failed tmux invocation, attaching a port sentinel when
// stderr identifies a known condition.
func classifyError(subcommand string, err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	switch {
	case strings.Contains(stderr, "no server running"),
		strings.Contains(stderr, "error connecting to"):
		return fmt.Errorf("tmux %s: %w: %w (%s)", subcommand, ports.ErrTmuxNoServer, err, stderr)
	case strings.Contains(stderr, "can't find session"),
		strings.Contains(stderr, "session not found"):
		return fmt.Errorf("tmux %s: %w: %w (%s)", subcommand, ports.ErrTmuxSessionNotFound, err, stderr)
	}
	return fmt.Errorf("tmux %s: %w (%s)", subcommand, err, stderr)
}

// HasSession reports whether a session with exactly this name exists.
// A stopped server means no sessions, not an error.
func (c *DefaultClient) HasSession(ctx context.Context, name string) (bool, error) {
	_, err := c.run(ctx, "has-session", "-t", exactSession(name))
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, err
}

// NewSession creates a detached session rooted at startDir
func (c *DefaultClient) NewSession(ctx context.Context, name, startDir string) error {
	logging.Logger.Debug("Creating tmux session", "name", name, "start_dir", startDir)

	args := []string{"new-session", "-d", "-s", name}
	if startDir != "" {
		args = append(args, "-c", startDir)
	}
	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to create tmux session: %w", err)
	}
	return nil
}

// GetSession returns the live state of one session
func (c *DefaultClient) GetSession(ctx context.Context, name string) (*ports.TmuxSession, error) {
	sessions, err := c.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].Name == name {
			return &sessions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ports.ErrTmuxSessionNotFound, name)
}

// ListSessions returns every session on the server
func (c *DefaultClient) ListSessions(ctx context.Context) ([]ports.TmuxSession, error) {
	output, err := c.run(ctx, "list-sessions", "-F", sessionFormat)
	if err != nil {
		if errors.Is(err, ports.ErrTmuxNoServer) {
			return []ports.TmuxSession{}, nil
		}
		return nil, err
	}

	var sessions []ports.TmuxSession
	for _, line := range splitLines(output) {
		session, err := parseSessionLine(line)
		if err != nil {
			logging.Logger.Warn("Skipping unparsable tmux session line", "line", line, "error", err)
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// KillSession terminates the session
func (c *DefaultClient) KillSession(ctx context.Context, name string) error {
	logging.Logger.Debug("Killing tmux session", "name", name)
	c.closeHeadless(name)

	if _, err := c.run(ctx, "kill-session", "-t", exactSession(name)); err != nil {
		return fmt.Errorf("failed to kill tmux session: %w", err)
	}
	return nil
}

// SetEnvironment sets a variable in the session environment
func (c *DefaultClient) SetEnvironment(ctx context.Context, sessionName, key, value string) error {
	if _, err := c.run(ctx, "set-environment", "-t", exactSession(sessionName), key, value); err != nil {
		return fmt.Errorf("failed to set environment %s for session %s: %w", key, sessionName, err)
	}
	return nil
}

// ListWindows returns the windows of a session in index order
func (c *DefaultClient) ListWindows(ctx context.Context, sessionName string) ([]ports.TmuxWindow, error) {
	output, err := c.run(ctx, "list-windows", "-t", exactSession(sessionName), "-F", windowFormat)
	if err != nil {
		return nil, err
	}

	var windows []ports.TmuxWindow
	for _, line := range splitLines(output) {
		window, err := parseWindowLine(line)
		if err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}
	return windows, nil
}

// NewWindow creates a window after the session's last window without
// switching to it. Targeting the session alone would take the lowest free
// index, which puts windows out of order once an earlier one is killed.
func (c *DefaultClient) NewWindow(ctx context.Context, sessionName, windowName, startDir string) (*ports.TmuxWindow, error) {
	windows, err := c.ListWindows(ctx, sessionName)
	if err != nil {
		return nil, fmt.Errorf("failed to create window %s: %w", windowName, err)
	}

	args := []string{"new-window", "-d", "-P", "-F", windowFormat}
	if len(windows) > 0 {
		// list-windows reports windows in index order
		args = append(args, "-a", "-t", windows[len(windows)-1].ID)
	} else {
		args = append(args, "-t", exactSession(sessionName)+":")
	}
	if windowName != "" {
		args = append(args, "-n", windowName)
	}
	if startDir != "" {
		args = append(args, "-c", startDir)
	}

	output, err := c.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create window %s: %w", windowName, err)
	}

	window, err := parseWindowLine(strings.TrimSpace(output))
	if err != nil {
		return nil, err
	}
	return &window, nil
}

// KillWindow removes a window by id
func (c *DefaultClient) KillWindow(ctx context.Context, windowID string) error {
	if _, err := c.run(ctx, "kill-window", "-t", windowID); err != nil {
		return fmt.Errorf("failed to kill window %s: %w", windowID, err)
	}
	return nil
}

// SetWindowOption sets a window option such as remain-on-exit
func (c *DefaultClient) SetWindowOption(ctx context.Context, windowID, option, value string) error {
	if _, err := c.run(ctx, "set-option", "-w", "-t", windowID, option, value); err != nil {
		return fmt.Errorf("failed to set %s on window %s: %w", option, windowID, err)
	}
	return nil
}

// SplitWindow splits the active pane of a window without selecting the new pane
func (c *DefaultClient) SplitWindow(ctx context.Context, windowID string, horizontal bool, startDir string) (*ports.TmuxPane, error) {
	orientation := "-v"
	if horizontal {
		orientation = "-h"
	}

	args := []string{"split-window", "-d", orientation, "-P", "-F", paneFormat, "-t", windowID}
	if startDir != "" {
		args = append(args, "-c", startDir)
	}

	output, err := c.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to split window %s: %w", windowID, err)
	}

	pane, err := parsePaneLine(strings.TrimSpace(output))
	if err != nil {
		return nil, err
	}
	return &pane, nil
}

// SendKeys types keys literally into a pane and presses Enter
func (c *DefaultClient) SendKeys(ctx context.Context, paneID, keys string) error {
	if _, err := c.run(ctx, "send-keys", "-t", paneID, "-l", "--", keys); err != nil {
		return fmt.Errorf("failed to send keys to pane %s: %w", paneID, err)
	}
	if _, err := c.run(ctx, "send-keys", "-t", paneID, "Enter"); err != nil {
		return fmt.Errorf("failed to send Enter to pane %s: %w", paneID, err)
	}
	return nil
}

// AttachSession attaches a client to the session. Inside tmux the current
// client is switched; otherwise a headless client is started on a PTY so the
// session counts as attached until DetachClients is called.
func (c *DefaultClient) AttachSession(ctx context.Context, name string) error {
	if os.Getenv("TMUX") != "" {
		if _, err := c.run(ctx, "switch-client", "-t", exactSession(name)); err != nil {
			return fmt.Errorf("failed to switch client: %w", err)
		}
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.attachedSessions[name]; exists {
		return nil
	}

	cmd := c.GetAttachCommand(name)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to attach to session: %w", err)
	}

	state := &attachmentState{cmd: cmd, ptmx: ptmx}
	c.attachedSessions[name] = state

	go func() {
		_, _ = io.Copy(io.Discard, ptmx)
	}()

	go func() {
		_ = cmd.Wait()
		c.mu.Lock()
		if c.attachedSessions[name] == state {
			delete(c.attachedSessions, name)
		}
		c.mu.Unlock()
		_ = ptmx.Close()
		logging.Logger.Debug("Headless tmux client exited", "session", name)
	}()

	logging.Logger.Info("Attached headless tmux client", "session", name)
	return nil
}

// DetachClients detaches every client attached to the session
func (c *DefaultClient) DetachClients(ctx context.Context, name string) error {
	c.closeHeadless(name)

	if _, err := c.run(ctx, "detach-client", "-s", exactSession(name)); err != nil {
		return fmt.Errorf("failed to detach clients: %w", err)
	}
	return nil
}

// closeHeadless drops the PTY of a headless client, if any
func (c *DefaultClient) closeHeadless(name string) {
	c.mu.Lock()
	state, exists := c.attachedSessions[name]
	delete(c.attachedSessions, name)
	c.mu.Unlock()

	if exists && state.ptmx != nil {
		_ = state.ptmx.Close()
	}
}

// GetAttachCommand returns an exec.Cmd configured for attaching to a session.
// It unsets TMUX and TMUX_PANE so the attach works from inside tmux too.
func (c *DefaultClient) GetAttachCommand(name string) *exec.Cmd {
	cmd := exec.Command(c.command, c.args("attach-session", "-t", exactSession(name))...)

	var cleanEnv []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "TMUX=") && !strings.HasPrefix(e, "TMUX_PANE=") {
			cleanEnv = append(cleanEnv, e)
		}
	}
	cmd.Env = cleanEnv

	return cmd
}

// Close releases every headless client started by this client
func (c *DefaultClient) Close() error {
	c.mu.Lock()
	names := make([]string, 0, len(c.attachedSessions))
	for name := range c.attachedSessions {
		names = append(names, name)
	}
	c.mu.Unlock()

	for _, name := range names {
		c.closeHeadless(name)
	}
	return nil
}
