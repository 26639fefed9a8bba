package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/layout"
	"github.com/renato0307/cc-orchestrator/internal/logging"
	"github.com/renato0307/cc-orchestrator/internal/ui"
)

// LayoutsCmd manages layout templates
type LayoutsCmd struct {
	Add  LayoutsAddCmd  `cmd:"add" help:"Register templates from a YAML file"`
	List LayoutsListCmd `cmd:"list" aliases:"ls" help:"List layout templates" default:"1"`
	Show LayoutsShowCmd `cmd:"show" help:"Show the windows and panes of a template"`
}

// LayoutsListCmd lists layout templates
type LayoutsListCmd struct {
	Format string `help:"Output format: table, json or yaml" enum:"table,json,yaml" default:"table"`
}

// Run executes the list command
func (l *LayoutsListCmd) Run(container *Container) error {
	templates := container.SessionService.GetLayoutTemplates()

	switch l.Format {
	case "json":
		return printJSON(container.Stdout, templates)
	case "yaml":
		names := make([]string, 0, len(templates))
		for name := range templates {
			names = append(names, name)
		}
		sort.Strings(names)
		list := make([]domain.LayoutTemplate, 0, len(names))
		for _, name := range names {
			list = append(list, templates[name])
		}
		data, err := layout.Marshal(list)
		if err != nil {
			return fmt.Errorf("failed to encode layouts: %w", err)
		}
		_, err = container.Stdout.Write(data)
		return err
	}

	fmt.Fprintln(container.Stdout, ui.TemplatesTable(templates))
	return nil
}

// LayoutsShowCmd shows one layout template
type LayoutsShowCmd struct {
	Name string `arg:"" help:"Template name"`
}

// Run executes the show command
func (l *LayoutsShowCmd) Run(container *Container) error {
	tmpl, ok := container.SessionService.GetLayoutTemplates()[l.Name]
	if !ok {
		return fmt.Errorf("unknown layout template: %s", l.Name)
	}
	fmt.Fprintln(container.Stdout, ui.TemplateDetail(tmpl))
	return nil
}

// LayoutsAddCmd registers templates from a file
type LayoutsAddCmd struct {
	File string `arg:"" help:"YAML file with a 'templates' list" type:"existingfile"`
	Save bool   `help:"Persist the templates to the layouts file so later runs see them" default:"true" negatable:""`
}

// Run executes the add command
func (l *LayoutsAddCmd) Run(container *Container) error {
	data, err := os.ReadFile(l.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", l.File, err)
	}

	templates, err := layout.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", l.File, err)
	}
	if len(templates) == 0 {
		return fmt.Errorf("%s: no templates found", l.File)
	}

	for _, tmpl := range templates {
		container.SessionService.AddLayoutTemplate(tmpl)
	}

	if l.Save {
		err := container.withLock(func() error {
			return layout.MergeFile(container.LayoutsFile, templates)
		})
		if err != nil {
			return err
		}
		logging.Logger.Info("Layout templates saved", "file", container.LayoutsFile, "count", len(templates))
	}

	for _, tmpl := range templates {
		fmt.Fprintf(container.Stdout, "Template '%s' registered (%d window(s))\n", tmpl.Name, len(tmpl.Windows))
	}
	if l.Save {
		fmt.Fprintf(container.Stdout, "Saved to %s\n", container.LayoutsFile)
	}
	return nil
}
