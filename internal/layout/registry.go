// Package layout holds the named window/pane blueprints applied to new sessions.
package layout

import (
	"sync"

	"github.com/renato0307/cc-orchestrator/internal/domain"
)

// Registry maps template names to layout templates. Templates can be added or
// overwritten but never removed.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]domain.LayoutTemplate
}

// NewRegistry returns a registry seeded with the built-in templates
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]domain.LayoutTemplate)}
	for _, t := range BuiltinTemplates() {
		r.Add(t)
	}
	return r
}

// BuiltinTemplates returns fresh copies of the seed templates
func BuiltinTemplates() []domain.LayoutTemplate {
	return []domain.LayoutTemplate{
		{
			Name:               domain.DefaultLayoutTemplate,
			Description:        "Single window with a shell",
			DefaultPaneCommand: "bash",
			Windows: []domain.WindowSpec{
				{Name: "main"},
			},
		},
		{
			Name:               "development",
			Description:        "Editor, dev server and git windows",
			DefaultPaneCommand: "bash",
			Windows: []domain.WindowSpec{
				{Name: "editor", Panes: []domain.PaneSpec{{Command: "${EDITOR:-vim} ."}}},
				{Name: "server", Panes: []domain.PaneSpec{{}}},
				{Name: "git", Panes: []domain.PaneSpec{{Command: "git status"}}},
			},
		},
		{
			Name:               "claude",
			Description:        "Claude Code with a side shell",
			DefaultPaneCommand: "bash",
			Windows: []domain.WindowSpec{
				{Name: "claude", Panes: []domain.PaneSpec{{Command: "claude"}}},
				{Name: "shell", Panes: []domain.PaneSpec{{}, {Split: "vertical"}}},
			},
		},
	}
}

// Add inserts or overwrites a template. The structure is not validated.
func (r *Registry) Add(template domain.LayoutTemplate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates[template.Name] = template.Clone()
}

// Get returns the named template
func (r *Registry) Get(name string) (domain.LayoutTemplate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[name]
	if !ok {
		return domain.LayoutTemplate{}, false
	}
	return t.Clone(), true
}

// All returns a copy of every template keyed by name
func (r *Registry) All() map[string]domain.LayoutTemplate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.LayoutTemplate, len(r.templates))
	for name, t := range r.templates {
		out[name] = t.Clone()
	}
	return out
}
