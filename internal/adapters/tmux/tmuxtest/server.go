// Package tmuxtest provides an in-memory tmux server for tests.
package tmuxtest

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/renato0307/cc-orchestrator/internal/ports"
)

// DefaultWindowName is the name tmux gives the implicit first window
const DefaultWindowName = "bash"

// SentKeys records one SendKeys call
type SentKeys struct {
	Keys   string
	PaneID string
}

// Split records one SplitWindow call
type Split struct {
	Horizontal bool
	WindowID   string
}

type window struct {
	id    string
	index int
	name  string
	panes []ports.TmuxPane
}

type session struct {
	activity    time.Time
	attached    int
	createdAt   time.Time
	environment map[string]string
	name        string
	path        string
	windows     []*window
}

// Server is a fake ports.TmuxClient. Failure fields inject errors into the
// matching operation; they are read under the server lock.
type Server struct {
	mu sync.Mutex

	nextPane   int
	nextWindow int
	sessions   map[string]*session

	// NoDefaultWindow makes NewSession create sessions without windows
	NoDefaultWindow bool

	AttachErr         error
	DetachErr         error
	GetSessionErr     map[string]error
	HasSessionErr     error
	KillSessionErr    error
	ListSessionsErr   error
	ListWindowsErr    map[string]error
	NewSessionErr     error
	NewWindowErr      error
	SendKeysErr       error
	SetEnvironmentErr error
	SetWindowOptErr   error
	SplitWindowErr    error

	KilledWindows []string
	Sent          []SentKeys
	Splits        []Split
	WindowOptions map[string]map[string]string
}

var _ ports.TmuxClient = (*Server)(nil)

// NewServer returns an empty fake server
func NewServer() *Server {
	return &Server{
		GetSessionErr:  make(map[string]error),
		ListWindowsErr: make(map[string]error),
		WindowOptions:  make(map[string]map[string]string),
		sessions:       make(map[string]*session),
	}
}

func (s *Server) newWindow(name string) *window {
	w := &window{
		id:   fmt.Sprintf("@%d", s.nextWindow),
		name: name,
	}
	s.nextWindow++
	w.panes = []ports.TmuxPane{{ID: s.newPaneID(), Index: 0}}
	return w
}

func (s *Server) newPaneID() string {
	id := fmt.Sprintf("%%%d", s.nextPane)
	s.nextPane++
	return id
}

func (s *Server) findWindow(windowID string) (*session, int) {
	for _, sess := range s.sessions {
		for i, w := range sess.windows {
			if w.id == windowID {
				return sess, i
			}
		}
	}
	return nil, -1
}

func (s *Server) paneExists(paneID string) bool {
	for _, sess := range s.sessions {
		for _, w := range sess.windows {
			for _, p := range w.panes {
				if p.ID == paneID {
					return true
				}
			}
		}
	}
	return false
}

// AddSession registers a session created outside the orchestrator
func (s *Server) AddSession(name, path string, attachedClients int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &session{
		activity:    now,
		attached:    attachedClients,
		createdAt:   now,
		environment: make(map[string]string),
		name:        name,
		path:        path,
	}
	sess.windows = []*window{s.newWindow(DefaultWindowName)}
	s.sessions[name] = sess
}

// SetAttached overrides the attached client count of a session
func (s *Server) SetAttached(name string, clients int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[name]; ok {
		sess.attached = clients
	}
}

// Exists reports whether the session is live
func (s *Server) Exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[name]
	return ok
}

// WindowNames returns the window names of a session in index order
func (s *Server) WindowNames(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[name]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sess.windows))
	for _, w := range sess.windows {
		names = append(names, w.name)
	}
	return names
}

// PaneCount returns the number of panes in the named window of a session
func (s *Server) PaneCount(sessionName, windowName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionName]
	if !ok {
		return 0
	}
	for _, w := range sess.windows {
		if w.name == windowName {
			return len(w.panes)
		}
	}
	return 0
}

// Environment returns a copy of a session's environment
func (s *Server) Environment(name string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string)
	if sess, ok := s.sessions[name]; ok {
		for k, v := range sess.environment {
			out[k] = v
		}
	}
	return out
}

// SentKeys returns a copy of every SendKeys call
func (s *Server) SentKeys() []SentKeys {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SentKeys(nil), s.Sent...)
}

func (s *Server) GetSession(_ context.Context, name string) (*ports.TmuxSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.GetSessionErr[name]; err != nil {
		return nil, err
	}
	sess, ok := s.sessions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrTmuxSessionNotFound, name)
	}
	return sess.snapshot(), nil
}

func (sess *session) snapshot() *ports.TmuxSession {
	return &ports.TmuxSession{
		Activity:        sess.activity,
		AttachedClients: sess.attached,
		CreatedAt:       sess.createdAt,
		Name:            sess.name,
		Path:            sess.path,
	}
}

func (s *Server) HasSession(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.HasSessionErr != nil {
		return false, s.HasSessionErr
	}
	_, ok := s.sessions[name]
	return ok, nil
}

func (s *Server) KillSession(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.KillSessionErr != nil {
		return s.KillSessionErr
	}
	if _, ok := s.sessions[name]; !ok {
		return fmt.Errorf("%w: %s", ports.ErrTmuxSessionNotFound, name)
	}
	delete(s.sessions, name)
	return nil
}

func (s *Server) ListSessions(_ context.Context) ([]ports.TmuxSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ListSessionsErr != nil {
		return nil, s.ListSessionsErr
	}
	out := make([]ports.TmuxSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, *sess.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Server) NewSession(_ context.Context, name, startDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.NewSessionErr != nil {
		return s.NewSessionErr
	}
	if _, ok := s.sessions[name]; ok {
		return fmt.Errorf("duplicate session: %s", name)
	}

	now := time.Now()
	sess := &session{
		activity:    now,
		createdAt:   now,
		environment: make(map[string]string),
		name:        name,
		path:        startDir,
	}
	if !s.NoDefaultWindow {
		sess.windows = []*window{s.newWindow(DefaultWindowName)}
	}
	s.sessions[name] = sess
	return nil
}

func (s *Server) SetEnvironment(_ context.Context, sessionName, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SetEnvironmentErr != nil {
		return s.SetEnvironmentErr
	}
	sess, ok := s.sessions[sessionName]
	if !ok {
		return fmt.Errorf("%w: %s", ports.ErrTmuxSessionNotFound, sessionName)
	}
	sess.environment[key] = value
	return nil
}

func (s *Server) KillWindow(_ context.Context, windowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, i := s.findWindow(windowID)
	if sess == nil {
		return fmt.Errorf("can't find window: %s", windowID)
	}
	sess.windows = append(sess.windows[:i], sess.windows[i+1:]...)
	s.KilledWindows = append(s.KilledWindows, windowID)
	return nil
}

func (s *Server) ListWindows(_ context.Context, sessionName string) ([]ports.TmuxWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ListWindowsErr[sessionName]; err != nil {
		return nil, err
	}
	sess, ok := s.sessions[sessionName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrTmuxSessionNotFound, sessionName)
	}

	windows := append([]*window(nil), sess.windows...)
	sort.SliceStable(windows, func(i, j int) bool { return windows[i].index < windows[j].index })

	out := make([]ports.TmuxWindow, 0, len(windows))
	for i, w := range windows {
		out = append(out, ports.TmuxWindow{
			Active: i == 0,
			ID:     w.id,
			Index:  w.index,
			Name:   w.name,
			PaneID: w.panes[0].ID,
		})
	}
	return out, nil
}

// NewWindow places the window after the session's last one, like
// new-window -a targeting the highest-indexed window.
func (s *Server) NewWindow(_ context.Context, sessionName, windowName, _ string) (*ports.TmuxWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.NewWindowErr != nil {
		return nil, s.NewWindowErr
	}
	sess, ok := s.sessions[sessionName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrTmuxSessionNotFound, sessionName)
	}

	w := s.newWindow(windowName)
	for _, existing := range sess.windows {
		if existing.index >= w.index {
			w.index = existing.index + 1
		}
	}
	sess.windows = append(sess.windows, w)

	return &ports.TmuxWindow{ID: w.id, Index: w.index, Name: w.name, PaneID: w.panes[0].ID}, nil
}

func (s *Server) SetWindowOption(_ context.Context, windowID, option, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SetWindowOptErr != nil {
		return s.SetWindowOptErr
	}
	if sess, _ := s.findWindow(windowID); sess == nil {
		return fmt.Errorf("can't find window: %s", windowID)
	}
	if s.WindowOptions[windowID] == nil {
		s.WindowOptions[windowID] = make(map[string]string)
	}
	s.WindowOptions[windowID][option] = value
	return nil
}

func (s *Server) SendKeys(_ context.Context, paneID, keys string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SendKeysErr != nil {
		return s.SendKeysErr
	}
	if !s.paneExists(paneID) {
		return fmt.Errorf("can't find pane: %s", paneID)
	}
	s.Sent = append(s.Sent, SentKeys{Keys: keys, PaneID: paneID})
	return nil
}

func (s *Server) SplitWindow(_ context.Context, windowID string, horizontal bool, _ string) (*ports.TmuxPane, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SplitWindowErr != nil {
		return nil, s.SplitWindowErr
	}
	sess, i := s.findWindow(windowID)
	if sess == nil {
		return nil, fmt.Errorf("can't find window: %s", windowID)
	}

	w := sess.windows[i]
	pane := ports.TmuxPane{ID: s.newPaneID(), Index: len(w.panes)}
	w.panes = append(w.panes, pane)
	s.Splits = append(s.Splits, Split{Horizontal: horizontal, WindowID: windowID})
	return &pane, nil
}

func (s *Server) AttachSession(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.AttachErr != nil {
		return s.AttachErr
	}
	sess, ok := s.sessions[name]
	if !ok {
		return fmt.Errorf("%w: %s", ports.ErrTmuxSessionNotFound, name)
	}
	sess.attached++
	sess.activity = time.Now()
	return nil
}

func (s *Server) DetachClients(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DetachErr != nil {
		return s.DetachErr
	}
	sess, ok := s.sessions[name]
	if !ok {
		return fmt.Errorf("%w: %s", ports.ErrTmuxSessionNotFound, name)
	}
	sess.attached = 0
	return nil
}

func (s *Server) GetAttachCommand(name string) *exec.Cmd {
	return exec.Command("true", name)
}
