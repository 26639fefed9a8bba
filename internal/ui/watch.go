package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/logging"
	"github.com/renato0307/cc-orchestrator/internal/theme"
)

// DefaultWatchInterval is how often the dashboard polls tmux
const DefaultWatchInterval = 2 * time.Second

// SessionController is the part of the session service the dashboard drives
type SessionController interface {
	DestroySession(ctx context.Context, name string, force bool) (bool, error)
	DetachSession(ctx context.Context, name string) bool
	GetSessionInfo(name string) *domain.SessionInfo
	ListSessions(ctx context.Context, includeOrphaned bool) []domain.SessionInfo
}

// WatchOptions configures the dashboard
type WatchOptions struct {
	IncludeOrphaned bool
	Interval        time.Duration
	// Lock serializes mutating actions with other orchestrator processes.
	// Nil means no locking.
	Lock func() (func(), error)
	Now  func() time.Time
}

type sessionsLoadedMsg struct {
	at       time.Time
	sessions []domain.SessionInfo
	tracked  map[string]bool
}

type tickMsg time.Time

type actionDoneMsg struct {
	err     error
	message string
}

// WatchModel is a live dashboard of orchestrator sessions
type WatchModel struct {
	ctx             context.Context
	controller      SessionController
	err             error
	help            help.Model
	includeOrphaned bool
	interval        time.Duration
	keys            KeyMap
	lastRefresh     time.Time
	loading         bool
	lock            func() (func(), error)
	now             func() time.Time
	sessions        []domain.SessionInfo
	spinner         spinner.Model
	status          string
	table           table.Model
	tracked         map[string]bool
}

// NewWatchModel creates the dashboard model
func NewWatchModel(ctx context.Context, controller SessionController, opts WatchOptions) *WatchModel {
	if opts.Interval <= 0 {
		opts.Interval = DefaultWatchInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	t := table.New(
		table.WithColumns(watchColumns(100)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorMuted).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.ColorHighlight).
		Background(theme.ColorPrimary)
	t.SetStyles(styles)

	return &WatchModel{
		ctx:             ctx,
		controller:      controller,
		help:            help.New(),
		includeOrphaned: opts.IncludeOrphaned,
		interval:        opts.Interval,
		keys:            NewKeyMap(),
		lock:            opts.Lock,
		now:             opts.Now,
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.SpinnerStyle)),
		table:           t,
		tracked:         map[string]bool{},
	}
}

func watchColumns(width int) []table.Column {
	nameWidth := max(width-70, 24)
	return []table.Column{
		{Title: "SESSION", Width: nameWidth},
		{Title: "STATUS", Width: 12},
		{Title: "INSTANCE", Width: 12},
		{Title: "LAYOUT", Width: 12},
		{Title: "WINDOWS", Width: 20},
		{Title: "CLIENTS", Width: 7},
	}
}

func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh(), m.tick())
}

func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetColumns(watchColumns(msg.Width))
		m.table.SetHeight(max(msg.Height-8, 3))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		case key.Matches(msg, m.keys.ToggleOrphans):
			m.includeOrphaned = !m.includeOrphaned
			return m, m.refresh()
		case key.Matches(msg, m.keys.Detach):
			if name := m.selected(); name != "" {
				return m, m.detach(name)
			}
			return m, nil
		case key.Matches(msg, m.keys.Destroy):
			if name := m.selected(); name != "" {
				return m, m.destroy(name)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case sessionsLoadedMsg:
		m.loading = false
		m.lastRefresh = msg.at
		m.sessions = msg.sessions
		m.tracked = msg.tracked
		m.table.SetRows(m.rows())
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), m.tick())

	case actionDoneMsg:
		m.err = msg.err
		m.status = msg.message
		return m, m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *WatchModel) View() string {
	var b strings.Builder

	header := theme.AppNameStyle.Render("cc-orchestrator") + " " +
		theme.VersionStyle.Render(GetVersionInfo().Version) + "  " +
		theme.MutedStyle.Render(fmt.Sprintf("%d session(s)", len(m.sessions)))
	if !m.includeOrphaned {
		header += theme.MutedStyle.Render(", tracked only")
	}
	switch {
	case m.loading:
		header += "  " + m.spinner.View()
	case !m.lastRefresh.IsZero():
		header += "  " + theme.MutedStyle.Render("updated "+m.lastRefresh.Format(time.TimeOnly))
	}
	b.WriteString(header + "\n\n")

	if len(m.sessions) == 0 && !m.loading {
		b.WriteString(theme.MutedStyle.Render("No sessions") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString("\n" + theme.ErrorStyle.Render(m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString("\n" + theme.NormalStyle.Render(m.status) + "\n")
	}

	b.WriteString(theme.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *WatchModel) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.sessions))
	for _, info := range m.sessions {
		name := info.SessionName
		if !m.tracked[name] {
			name += orphanMarker
		}
		rows = append(rows, table.Row{
			name,
			info.Status.Symbol() + " " + string(info.Status),
			orDash(info.InstanceID),
			info.LayoutTemplate,
			strings.Join(info.Windows, ","),
			strconv.Itoa(info.AttachedClients),
		})
	}
	return rows
}

func (m *WatchModel) selected() string {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.sessions) {
		return ""
	}
	return m.sessions[cursor].SessionName
}

func (m *WatchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *WatchModel) refresh() tea.Cmd {
	m.loading = true
	ctx, controller, includeOrphaned, now := m.ctx, m.controller, m.includeOrphaned, m.now

	return func() tea.Msg {
		listed := controller.ListSessions(ctx, includeOrphaned)
		sessions := make([]domain.SessionInfo, 0, len(listed))
		tracked := make(map[string]bool, len(listed))
		for _, info := range listed {
			isTracked := controller.GetSessionInfo(info.SessionName) != nil
			// Untracked sessions are hidden unless orphans are shown
			if !isTracked && !includeOrphaned {
				continue
			}
			sessions = append(sessions, info)
			tracked[info.SessionName] = isTracked
		}
		return sessionsLoadedMsg{at: now(), sessions: sessions, tracked: tracked}
	}
}

func (m *WatchModel) detach(name string) tea.Cmd {
	return m.action(func(ctx context.Context) actionDoneMsg {
		if !m.controller.DetachSession(ctx, name) {
			return actionDoneMsg{err: fmt.Errorf("failed to detach %s", name)}
		}
		return actionDoneMsg{message: "Detached " + name}
	})
}

func (m *WatchModel) destroy(name string) tea.Cmd {
	return m.action(func(ctx context.Context) actionDoneMsg {
		destroyed, err := m.controller.DestroySession(ctx, name, false)
		switch {
		case errors.Is(err, domain.ErrSessionBusy):
			return actionDoneMsg{err: fmt.Errorf("%s has attached clients, use 'sessions destroy --force'", name)}
		case err != nil:
			return actionDoneMsg{err: err}
		case !destroyed:
			return actionDoneMsg{err: fmt.Errorf("%s was not destroyed", name)}
		}
		return actionDoneMsg{message: "Destroyed " + name}
	})
}

func (m *WatchModel) action(run func(ctx context.Context) actionDoneMsg) tea.Cmd {
	ctx, lock := m.ctx, m.lock

	return func() tea.Msg {
		if lock != nil {
			release, err := lock()
			if err != nil {
				logging.Logger.Warn("Dashboard action blocked by lock", "error", err)
				return actionDoneMsg{err: err}
			}
			defer release()
		}
		return run(ctx)
	}
}
