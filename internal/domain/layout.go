package domain

// SplitHorizontal is the only split value that produces a side-by-side pane.
// Any other value splits vertically.
const SplitHorizontal = "horizontal"

// PaneSpec describes one pane inside a window
type PaneSpec struct {
	Command string
	Split   string
}

// IsHorizontal reports whether the pane is created with a horizontal split
func (p PaneSpec) IsHorizontal() bool {
	return p.Split == SplitHorizontal
}

// WindowSpec describes one window and its panes
type WindowSpec struct {
	Command string
	Name    string
	Panes   []PaneSpec
}

// EffectivePanes returns the panes to materialize. A window without panes
// gets a single synthesized pane running the window command.
func (w WindowSpec) EffectivePanes() []PaneSpec {
	if len(w.Panes) == 0 {
		return []PaneSpec{{Command: w.Command}}
	}
	return w.Panes
}

// LayoutTemplate is a named blueprint for the windows and panes of a new session
type LayoutTemplate struct {
	DefaultPaneCommand string
	Description        string
	Name               string
	Windows            []WindowSpec
}

// ResolvePaneCommand picks the command for a pane: pane, then window, then template default
func (t LayoutTemplate) ResolvePaneCommand(window WindowSpec, pane PaneSpec) string {
	if pane.Command != "" {
		return pane.Command
	}
	if window.Command != "" {
		return window.Command
	}
	return t.DefaultPaneCommand
}

// Clone returns a deep copy of the template
func (t LayoutTemplate) Clone() LayoutTemplate {
	out := t
	if t.Windows == nil {
		return out
	}
	out.Windows = make([]WindowSpec, len(t.Windows))
	for i, w := range t.Windows {
		out.Windows[i] = w
		if w.Panes != nil {
			out.Windows[i].Panes = append([]PaneSpec(nil), w.Panes...)
		}
	}
	return out
}
