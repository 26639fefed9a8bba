package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/layout"
	"github.com/renato0307/cc-orchestrator/internal/logging"
	"github.com/renato0307/cc-orchestrator/internal/ports"
	"github.com/renato0307/cc-orchestrator/internal/registry"
)

// SessionService orchestrates tmux sessions: lifecycle, layouts, listing and cleanup.
// tmux is the source of truth for existence; the registry owns metadata.
type SessionService struct {
	journal         ports.SessionJournal
	keepFailed      bool
	layouts         *layout.Registry
	listConcurrency int
	now             func() time.Time
	registry        *registry.Registry
	tmuxClient      ports.TmuxClient
}

// NewSessionService creates a new SessionService. journal may be nil, in
// which case nothing is recorded and RestoreFromJournal is a no-op.
func NewSessionService(
	tmuxClient ports.TmuxClient,
	layouts *layout.Registry,
	journal ports.SessionJournal,
	opts SessionServiceOptions,
) *SessionService {
	if layouts == nil {
		layouts = layout.NewRegistry()
	}
	if opts.ListConcurrency < 1 {
		opts.ListConcurrency = DefaultListConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &SessionService{
		journal:         journal,
		keepFailed:      opts.KeepFailedSessions,
		layouts:         layouts,
		listConcurrency: opts.ListConcurrency,
		now:             opts.Now,
		registry:        registry.New(),
		tmuxClient:      tmuxClient,
	}
}

// CreateSession creates a tmux session, applies its layout and starts tracking it.
// Failures are returned as *domain.SessionError. Unless the service keeps
// failed sessions, a session that fails after tmux created it is killed.
func (s *SessionService) CreateSession(ctx context.Context, cfg domain.SessionConfig) (*domain.SessionInfo, error) {
	name := domain.NormalizeSessionName(cfg.SessionName)
	templateName := cfg.TemplateName()

	unlock := s.registry.Lock(name)
	defer unlock()

	logging.Logger.Info("Creating session", "session", name, "instance", cfg.InstanceID, "layout", templateName)

	exists, err := s.tmuxClient.HasSession(ctx, name)
	if err != nil {
		return nil, domain.NewResourceError(name, "failed to query tmux", err)
	}
	if exists {
		logging.Logger.Warn("Session already exists", "session", name)
		return nil, domain.NewConflictError(name)
	}

	workDir, err := resolveWorkingDirectory(cfg.WorkingDirectory)
	if err != nil {
		return nil, domain.NewResourceError(name, "failed to resolve working directory", err)
	}

	now := s.now()
	s.registry.Put(domain.SessionInfo{
		CreatedAt:        now,
		InstanceID:       cfg.InstanceID,
		LayoutTemplate:   templateName,
		SessionName:      name,
		Status:           domain.StatusCreating,
		WorkingDirectory: workDir,
	})

	created := false
	fail := func(sessionErr *domain.SessionError) (*domain.SessionInfo, error) {
		s.abortCreate(ctx, name, cfg, workDir, created, sessionErr)
		return nil, sessionErr
	}

	if err := os.MkdirAll(workDir, 0755); err != nil {
		return fail(domain.NewResourceError(name, "failed to create working directory "+workDir, err))
	}

	if err := s.tmuxClient.NewSession(ctx, name, workDir); err != nil {
		return fail(domain.NewResourceError(name, "failed to create tmux session", err))
	}
	created = true

	for _, key := range sortedKeys(cfg.Environment) {
		if err := s.tmuxClient.SetEnvironment(ctx, name, key, cfg.Environment[key]); err != nil {
			return fail(domain.NewResourceError(name, fmt.Sprintf("failed to set environment variable %s", key), err))
		}
	}

	template, ok := s.layouts.Get(templateName)
	if !ok {
		logging.Logger.Warn("Unknown layout template, using default", "session", name, "requested", templateName)
		template, _ = s.layouts.Get(domain.DefaultLayoutTemplate)
		templateName = domain.DefaultLayoutTemplate
	}

	if err := s.applyLayout(ctx, name, workDir, template, cfg.PersistAfterExit); err != nil {
		return fail(err)
	}

	windows, activeWindow := s.snapshotWindows(ctx, name)

	info := domain.SessionInfo{
		ActiveWindow:     activeWindow,
		CreatedAt:        now,
		InstanceID:       cfg.InstanceID,
		LayoutTemplate:   templateName,
		SessionName:      name,
		Status:           domain.StatusActive,
		Windows:          windows,
		WorkingDirectory: workDir,
	}
	s.registry.Put(info)

	s.record(ctx, domain.SessionEvent{
		InstanceID:     cfg.InstanceID,
		LayoutTemplate: templateName,
		SessionName:    name,
		Status:         domain.StatusActive,
		Type:           domain.EventCreated,
		WorkingDir:     workDir,
	})

	logging.Logger.Info("Session created", "session", name, "windows", len(windows))

	if cfg.AutoAttach {
		if !s.attachLocked(ctx, name) {
			logging.Logger.Warn("Auto-attach failed, session left detached", "session", name)
		}
	}

	return s.GetSessionInfo(name), nil
}

// abortCreate compensates a failed create: the tmux session is killed and
// untracked, or kept in ERROR for inspection when the service keeps failed sessions.
func (s *SessionService) abortCreate(
	ctx context.Context,
	name string,
	cfg domain.SessionConfig,
	workDir string,
	created bool,
	cause *domain.SessionError,
) {
	logging.Logger.Error("Session creation failed", "session", name, "error", cause)

	switch {
	case created && s.keepFailed:
		s.registry.SetStatus(name, domain.StatusError, s.now())
		logging.Logger.Warn("Keeping failed session for inspection", "session", name)
	case created:
		if err := s.tmuxClient.KillSession(ctx, name); err != nil {
			logging.Logger.Error("Failed to roll back partial session", "session", name, "error", err)
		}
		s.registry.Delete(name)
	default:
		s.registry.Delete(name)
	}

	s.record(ctx, domain.SessionEvent{
		Detail:         cause.Error(),
		InstanceID:     cfg.InstanceID,
		LayoutTemplate: cfg.TemplateName(),
		SessionName:    name,
		Status:         domain.StatusError,
		Type:           domain.EventCreateFailed,
		WorkingDir:     workDir,
	})
}

// DestroySession kills a session. It returns false without error when the
// session does not exist or the kill fails. A session with attached clients
// is only destroyed with force; otherwise a Busy *domain.SessionError is returned.
func (s *SessionService) DestroySession(ctx context.Context, name string, force bool) (bool, error) {
	name = domain.NormalizeSessionName(name)

	unlock := s.registry.Lock(name)
	defer unlock()

	live, err := s.tmuxClient.GetSession(ctx, name)
	if err != nil {
		if errors.Is(err, ports.ErrTmuxSessionNotFound) {
			if s.registry.Delete(name) {
				logging.Logger.Info("Dropped tracking for session gone from tmux", "session", name)
			}
			logging.Logger.Debug("Session to destroy does not exist", "session", name)
			return false, nil
		}
		logging.Logger.Error("Failed to inspect session before destroy", "session", name, "error", err)
		return false, nil
	}

	if live.AttachedClients > 0 && !force {
		logging.Logger.Warn("Refusing to destroy session with attached clients", "session", name, "clients", live.AttachedClients)
		return false, domain.NewBusyError(name, live.AttachedClients)
	}

	tracked, isTracked := s.registry.Get(name)
	s.registry.SetStatus(name, domain.StatusStopping, s.now())

	if err := s.tmuxClient.KillSession(ctx, name); err != nil {
		logging.Logger.Error("Failed to destroy session", "session", name, "error", err)
		if isTracked {
			s.registry.Update(name, func(info *domain.SessionInfo) { info.Status = tracked.Status })
		}
		return false, nil
	}

	s.registry.Delete(name)
	s.record(ctx, domain.SessionEvent{
		InstanceID:     tracked.InstanceID,
		LayoutTemplate: tracked.LayoutTemplate,
		SessionName:    name,
		Status:         domain.StatusStopped,
		Type:           domain.EventDestroyed,
		WorkingDir:     tracked.WorkingDirectory,
	})

	logging.Logger.Info("Session destroyed", "session", name, "forced", force && live.AttachedClients > 0)
	return true, nil
}

// AttachSession attaches a client to the session. Only tracked sessions have
// their record updated; untracked ones are attached all the same.
func (s *SessionService) AttachSession(ctx context.Context, name string) bool {
	name = domain.NormalizeSessionName(name)

	unlock := s.registry.Lock(name)
	defer unlock()

	return s.attachLocked(ctx, name)
}

func (s *SessionService) attachLocked(ctx context.Context, name string) bool {
	exists, err := s.tmuxClient.HasSession(ctx, name)
	if err != nil || !exists {
		logging.Logger.Error("Cannot attach, session does not exist", "session", name, "error", err)
		return false
	}

	if err := s.tmuxClient.AttachSession(ctx, name); err != nil {
		logging.Logger.Error("Failed to attach session", "session", name, "error", err)
		return false
	}

	s.markAttached(ctx, name)
	return true
}

// ForegroundAttachCommand returns a command that attaches the caller's
// terminal to the session. The record is updated as by AttachSession; the
// caller runs the command.
func (s *SessionService) ForegroundAttachCommand(ctx context.Context, name string) (*exec.Cmd, error) {
	name = domain.NormalizeSessionName(name)

	unlock := s.registry.Lock(name)
	defer unlock()

	exists, err := s.tmuxClient.HasSession(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check session %s: %w", name, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, name)
	}

	s.markAttached(ctx, name)
	return s.tmuxClient.GetAttachCommand(name), nil
}

func (s *SessionService) markAttached(ctx context.Context, name string) {
	now := s.now()
	tracked := s.registry.Update(name, func(info *domain.SessionInfo) {
		if domain.CanTransition(info.Status, domain.StatusActive) {
			info.Status = domain.StatusActive
		}
		info.AttachedClients++
		info.Touch(now)
	})

	s.record(ctx, domain.SessionEvent{SessionName: name, Status: domain.StatusActive, Type: domain.EventAttached})
	logging.Logger.Info("Session attached", "session", name, "tracked", tracked)
}

// DetachSession detaches every client from the session. The session does not
// need to be tracked.
func (s *SessionService) DetachSession(ctx context.Context, name string) bool {
	name = domain.NormalizeSessionName(name)

	unlock := s.registry.Lock(name)
	defer unlock()

	exists, err := s.tmuxClient.HasSession(ctx, name)
	if err != nil {
		logging.Logger.Error("Failed to check session before detach", "session", name, "error", err)
		return false
	}
	if !exists {
		logging.Logger.Debug("Session to detach does not exist", "session", name)
		return false
	}

	if err := s.tmuxClient.DetachClients(ctx, name); err != nil {
		logging.Logger.Error("Failed to detach session", "session", name, "error", err)
		return false
	}

	now := s.now()
	s.registry.Update(name, func(info *domain.SessionInfo) {
		if domain.CanTransition(info.Status, domain.StatusDetached) {
			info.Status = domain.StatusDetached
		}
		info.AttachedClients = 0
		info.Touch(now)
	})

	s.record(ctx, domain.SessionEvent{SessionName: name, Status: domain.StatusDetached, Type: domain.EventDetached})
	logging.Logger.Info("Session detached", "session", name)
	return true
}

// GetSessionInfo returns a copy of the tracked record, or nil if untracked
func (s *SessionService) GetSessionInfo(name string) *domain.SessionInfo {
	info, ok := s.registry.Get(name)
	if !ok {
		return nil
	}
	return &info
}

// AddLayoutTemplate inserts or replaces a layout template
func (s *SessionService) AddLayoutTemplate(template domain.LayoutTemplate) {
	s.layouts.Add(template)
	logging.Logger.Info("Layout template registered", "template", template.Name, "windows", len(template.Windows))
}

// GetLayoutTemplates returns a copy of every registered template
func (s *SessionService) GetLayoutTemplates() map[string]domain.LayoutTemplate {
	return s.layouts.All()
}

// snapshotWindows reads window names and the active window from tmux.
// Failures leave the window list empty.
func (s *SessionService) snapshotWindows(ctx context.Context, name string) ([]string, string) {
	windows, err := s.tmuxClient.ListWindows(ctx, name)
	if err != nil {
		logging.Logger.Warn("Failed to read session windows", "session", name, "error", err)
		return []string{}, ""
	}
	return windowNames(windows)
}

func windowNames(windows []ports.TmuxWindow) ([]string, string) {
	names := make([]string, 0, len(windows))
	active := ""
	for _, w := range windows {
		names = append(names, w.Name)
		if w.Active {
			active = w.Name
		}
	}
	return names, active
}

// resolveWorkingDirectory makes dir absolute, using the current directory when empty
func resolveWorkingDirectory(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

// record journals an event. Journal failures are logged, never returned.
func (s *SessionService) record(ctx context.Context, event domain.SessionEvent) {
	if s.journal == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}
	if err := s.journal.Record(ctx, event); err != nil {
		logging.Logger.Warn("Failed to journal session event", "session", event.SessionName, "type", event.Type, "error", err)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
