package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/layout"
)

func TestSessionsTable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := []domain.SessionInfo{
		{
			AttachedClients:  1,
			CreatedAt:        now.Add(-2 * time.Hour),
			InstanceID:       "i1",
			LayoutTemplate:   "claude",
			SessionName:      "cc-orchestrator-tracked",
			Status:           domain.StatusActive,
			Windows:          []string{"claude", "shell"},
			WorkingDirectory: "/work",
		},
		{
			LayoutTemplate:   "unknown",
			SessionName:      "cc-orchestrator-orphan",
			Status:           domain.StatusDetached,
			WorkingDirectory: "/",
		},
	}
	tracked := func(name string) bool { return name == "cc-orchestrator-tracked" }

	out := SessionsTable(sessions, tracked, now)

	assert.Contains(t, out, "SESSION")
	assert.Contains(t, out, "cc-orchestrator-tracked")
	assert.NotContains(t, out, "cc-orchestrator-tracked (untracked)")
	assert.Contains(t, out, "cc-orchestrator-orphan (untracked)")
	assert.Contains(t, out, "claude, shell")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, domain.SymbolActive+" active")
	assert.Contains(t, out, domain.SymbolDetached+" detached")
}

func TestSessionsTable_NilTrackedMarksNothing(t *testing.T) {
	out := SessionsTable([]domain.SessionInfo{{SessionName: "cc-orchestrator-x", Status: domain.StatusActive}}, nil, time.Now())

	assert.Contains(t, out, "cc-orchestrator-x")
	assert.NotContains(t, out, "untracked")
}

func TestTemplatesTable(t *testing.T) {
	out := TemplatesTable(layout.NewRegistry().All())

	assert.Contains(t, out, "TEMPLATE")
	assert.Contains(t, out, "claude")
	assert.Contains(t, out, "development")
	assert.Contains(t, out, "editor, server, git")
	assert.Contains(t, out, "claude, shell")
}

func TestTemplateDetail(t *testing.T) {
	tmpl, ok := layout.NewRegistry().Get("claude")
	assert.True(t, ok)

	out := TemplateDetail(tmpl)

	assert.Contains(t, out, "claude")
	assert.Contains(t, out, "shell")
	assert.Contains(t, out, "vertical")
	assert.Contains(t, out, "bash")
}

func TestEventsTable(t *testing.T) {
	events := []domain.SessionEvent{
		{OccurredAt: time.Now(), SessionName: "cc-orchestrator-a", Type: domain.EventCreated, InstanceID: "i1"},
		{OccurredAt: time.Now(), SessionName: "cc-orchestrator-b", Type: domain.EventCreateFailed, Detail: "boom"},
	}

	out := EventsTable(events)

	assert.Contains(t, out, "created")
	assert.Contains(t, out, "create_failed")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "i1")
}

func TestSessionDetail(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	activity := now.Add(-time.Minute)

	out := SessionDetail(domain.SessionInfo{
		ActiveWindow:     "main",
		CreatedAt:        now.Add(-time.Hour),
		LastActivity:     &activity,
		LayoutTemplate:   "default",
		SessionName:      "cc-orchestrator-x",
		Status:           domain.StatusDetached,
		Windows:          []string{"main"},
		WorkingDirectory: "/tmp",
	}, true, now)

	assert.Contains(t, out, "cc-orchestrator-x")
	assert.Contains(t, out, "Tracked:")
	assert.Contains(t, out, "true")
	assert.Contains(t, out, "1 minute ago")
	assert.Contains(t, out, "1 hour ago")
	assert.Contains(t, out, "/tmp")
}

func TestRelativeTime_Zero(t *testing.T) {
	assert.Equal(t, "-", relativeTime(time.Time{}, time.Now()))
}
