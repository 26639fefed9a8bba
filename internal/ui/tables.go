package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/theme"
)

const orphanMarker = " (untracked)"

// TrackedFunc reports whether the orchestrator tracks a session
type TrackedFunc func(name string) bool

func newTable(headers []string, highlighted map[int]bool) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.MutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.HeaderStyle
			case highlighted[row]:
				return theme.OrphanStyle
			default:
				return theme.CellStyle
			}
		})
}

// SessionsTable renders sessions as a table. Untracked sessions are marked
// and highlighted.
func SessionsTable(sessions []domain.SessionInfo, tracked TrackedFunc, now time.Time) string {
	orphans := make(map[int]bool)
	t := newTable([]string{"SESSION", "STATUS", "INSTANCE", "LAYOUT", "WINDOWS", "CLIENTS", "CREATED", "DIRECTORY"}, orphans)

	for i, info := range sessions {
		name := info.SessionName
		if tracked != nil && !tracked(name) {
			name += orphanMarker
			orphans[i] = true
		}
		t.Row(
			name,
			theme.RenderStatus(info.Status),
			orDash(info.InstanceID),
			info.LayoutTemplate,
			strings.Join(info.Windows, ", "),
			strconv.Itoa(info.AttachedClients),
			relativeTime(info.CreatedAt, now),
			info.WorkingDirectory,
		)
	}
	return t.Render()
}

// TemplatesTable renders layout templates sorted by name
func TemplatesTable(templates map[string]domain.LayoutTemplate) string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	t := newTable([]string{"TEMPLATE", "DESCRIPTION", "WINDOWS", "PANES", "DEFAULT COMMAND"}, nil)
	for _, name := range names {
		tmpl := templates[name]
		windows := make([]string, 0, len(tmpl.Windows))
		panes := 0
		for _, w := range tmpl.Windows {
			windows = append(windows, w.Name)
			panes += len(w.EffectivePanes())
		}
		t.Row(name, orDash(tmpl.Description), strings.Join(windows, ", "), strconv.Itoa(panes), orDash(tmpl.DefaultPaneCommand))
	}
	return t.Render()
}

// TemplateDetail renders the window and pane structure of one template
func TemplateDetail(tmpl domain.LayoutTemplate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", theme.AppNameStyle.Render(tmpl.Name))
	if tmpl.Description != "" {
		fmt.Fprintf(&b, "%s\n", theme.MutedStyle.Render(tmpl.Description))
	}

	t := newTable([]string{"WINDOW", "PANE", "SPLIT", "COMMAND"}, nil)
	for _, w := range tmpl.Windows {
		for i, pane := range w.EffectivePanes() {
			split := "-"
			if i > 0 {
				split = "vertical"
				if pane.IsHorizontal() {
					split = domain.SplitHorizontal
				}
			}
			t.Row(w.Name, strconv.Itoa(i), split, orDash(tmpl.ResolvePaneCommand(w, pane)))
		}
	}
	b.WriteString(t.Render())
	return b.String()
}

// EventsTable renders journal events in the order given
func EventsTable(events []domain.SessionEvent) string {
	failures := make(map[int]bool)
	t := newTable([]string{"TIME", "EVENT", "SESSION", "INSTANCE", "LAYOUT", "DETAIL"}, failures)
	for i, e := range events {
		if e.Type == domain.EventCreateFailed || e.Type == domain.EventOrphanDetected {
			failures[i] = true
		}
		t.Row(
			e.OccurredAt.Local().Format(time.DateTime),
			string(e.Type),
			e.SessionName,
			orDash(e.InstanceID),
			orDash(e.LayoutTemplate),
			e.Detail,
		)
	}
	return t.Render()
}

// SessionDetail renders one session as aligned key/value lines
func SessionDetail(info domain.SessionInfo, tracked bool, now time.Time) string {
	lastActivity := "-"
	if info.LastActivity != nil {
		lastActivity = relativeTime(*info.LastActivity, now)
	}

	rows := [][2]string{
		{"Session", info.SessionName},
		{"Tracked", strconv.FormatBool(tracked)},
		{"Status", theme.RenderStatus(info.Status)},
		{"Instance", orDash(info.InstanceID)},
		{"Layout", info.LayoutTemplate},
		{"Windows", strings.Join(info.Windows, ", ")},
		{"Active window", orDash(info.ActiveWindow)},
		{"Attached clients", strconv.Itoa(info.AttachedClients)},
		{"Working directory", info.WorkingDirectory},
		{"Created", relativeTime(info.CreatedAt, now)},
		{"Last activity", lastActivity},
	}

	label := lipgloss.NewStyle().Foreground(theme.ColorSubtle).Width(19)
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%s%s\n", label.Render(row[0]+":"), row[1])
	}
	return b.String()
}

func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
