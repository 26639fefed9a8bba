package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/renato0307/cc-orchestrator/internal/config"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options" default:"1"`
	Show SettingsShowCmd `cmd:"show" help:"Show the settings in effect"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(container *Container) error {
	settingsFile := config.GetSettingsPath()
	example := config.GetSettingsExample()

	if s.Format == "json" {
		return printJSON(container.Stdout, map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		})
	}

	out := container.Stdout
	fmt.Fprintf(out, "Settings file: %s\n\n", settingsFile)
	fmt.Fprintln(out, "Example settings.json:")
	fmt.Fprintln(out)

	keys := make([]string, 0, len(example))
	for key := range example {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%v\n", key, example[key])
	}
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Create or edit this file to configure cc-orchestrator.")
	fmt.Fprintln(out, "All settings are optional and have sensible defaults.")
	return nil
}

// SettingsShowCmd prints the resolved settings
type SettingsShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI, container *Container) error {
	effective := map[string]any{
		"debug":                cli.Debug,
		"default_layout":       cli.settings.GetDefaultLayout(),
		"keep_failed_sessions": cli.settings.GetKeepFailedSessions(),
		"layouts_file":         container.LayoutsFile,
		"list_concurrency":     cli.settings.GetListConcurrency(),
		"max_log_files":        cli.MaxLogFiles,
		"socket_name":          cli.Socket,
		"tmux_command":         cli.Tmux,
	}

	if s.Format == "json" {
		return printJSON(container.Stdout, effective)
	}

	keys := make([]string, 0, len(effective))
	for key := range effective {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(container.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%v\n", key, effective[key])
	}
	return w.Flush()
}
