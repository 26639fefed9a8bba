package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/logging"
)

type paneFile struct {
	Command string `yaml:"command,omitempty"`
	Split   string `yaml:"split,omitempty"`
}

type windowFile struct {
	Command string     `yaml:"command,omitempty"`
	Name    string     `yaml:"name"`
	Panes   []paneFile `yaml:"panes,omitempty"`
}

type templateFile struct {
	DefaultPaneCommand string       `yaml:"default_pane_command,omitempty"`
	Description        string       `yaml:"description,omitempty"`
	Name               string       `yaml:"name"`
	Windows            []windowFile `yaml:"windows"`
}

type layoutsFile struct {
	Templates []templateFile `yaml:"templates"`
}

// Parse decodes a YAML layouts document
func Parse(data []byte) ([]domain.LayoutTemplate, error) {
	var doc layoutsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse layouts: %w", err)
	}

	templates := make([]domain.LayoutTemplate, 0, len(doc.Templates))
	for i, t := range doc.Templates {
		if t.Name == "" {
			return nil, fmt.Errorf("template %d has no name", i)
		}
		templates = append(templates, t.toDomain())
	}
	return templates, nil
}

func (t templateFile) toDomain() domain.LayoutTemplate {
	out := domain.LayoutTemplate{
		DefaultPaneCommand: t.DefaultPaneCommand,
		Description:        t.Description,
		Name:               t.Name,
	}
	for _, w := range t.Windows {
		window := domain.WindowSpec{Command: w.Command, Name: w.Name}
		for _, p := range w.Panes {
			window.Panes = append(window.Panes, domain.PaneSpec{Command: p.Command, Split: p.Split})
		}
		out.Windows = append(out.Windows, window)
	}
	return out
}

// Marshal encodes templates as a YAML layouts document
func Marshal(templates []domain.LayoutTemplate) ([]byte, error) {
	var doc layoutsFile
	for _, t := range templates {
		tf := templateFile{
			DefaultPaneCommand: t.DefaultPaneCommand,
			Description:        t.Description,
			Name:               t.Name,
		}
		for _, w := range t.Windows {
			wf := windowFile{Command: w.Command, Name: w.Name}
			for _, p := range w.Panes {
				wf.Panes = append(wf.Panes, paneFile{Command: p.Command, Split: p.Split})
			}
			tf.Windows = append(tf.Windows, wf)
		}
		doc.Templates = append(doc.Templates, tf)
	}
	return yaml.Marshal(doc)
}

// LoadFile adds every template in the YAML file at path to the registry and
// returns how many were loaded. A missing file loads nothing.
func (r *Registry) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Logger.Debug("No layouts file", "path", path)
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read layouts file: %w", err)
	}

	templates, err := Parse(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	for _, t := range templates {
		r.Add(t)
	}
	logging.Logger.Info("Loaded layout templates", "path", path, "count", len(templates))
	return len(templates), nil
}

// MergeFile writes templates into the YAML file at path, replacing templates
// with the same name and keeping the rest in file order.
func MergeFile(path string, templates []domain.LayoutTemplate) error {
	var existing []domain.LayoutTemplate

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		existing, err = Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to read layouts file: %w", err)
	}

	index := make(map[string]int, len(existing))
	for i, t := range existing {
		index[t.Name] = i
	}
	for _, t := range templates {
		if i, ok := index[t.Name]; ok {
			existing[i] = t
			continue
		}
		index[t.Name] = len(existing)
		existing = append(existing, t)
	}

	out, err := Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to encode layouts: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create layouts directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write layouts file: %w", err)
	}
	return nil
}
