package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when neither flags, env nor settings.json provide a value
const (
	DefaultListConcurrency = 8
	DefaultMaxLogFiles     = 1000
	DefaultTmuxCommand     = "tmux"
)

// Settings represents the structure of $CC_ORCHESTRATOR_HOME/settings.json.
// Pointer fields distinguish "unset" from the zero value.
type Settings struct {
	Debug              *bool  `json:"debug,omitempty"`
	DefaultLayout      string `json:"default_layout,omitempty"`
	KeepFailedSessions *bool  `json:"keep_failed_sessions,omitempty"`
	LayoutsFile        string `json:"layouts_file,omitempty"`
	ListConcurrency    *int   `json:"list_concurrency,omitempty"`
	MaxLogFiles        *int   `json:"max_log_files,omitempty"`
	SocketName         string `json:"socket_name,omitempty"`
	TmuxCommand        string `json:"tmux_command,omitempty"`
}

// LoadSettings loads settings from path.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.LayoutsFile != "" {
		settings.LayoutsFile = ExpandPath(settings.LayoutsFile)
	}
	if settings.ListConcurrency != nil && *settings.ListConcurrency < 1 {
		return nil, fmt.Errorf("invalid settings.json: list_concurrency must be at least 1")
	}

	return &settings, nil
}

// SaveSettings writes settings to path, creating the parent directory
func SaveSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// GetDebug returns the debug setting, false when unset
func (s *Settings) GetDebug() bool {
	return s != nil && s.Debug != nil && *s.Debug
}

// GetKeepFailedSessions reports whether failed creates stay behind for inspection
func (s *Settings) GetKeepFailedSessions() bool {
	return s != nil && s.KeepFailedSessions != nil && *s.KeepFailedSessions
}

// GetListConcurrency returns how many sessions are inspected in parallel
func (s *Settings) GetListConcurrency() int {
	if s == nil || s.ListConcurrency == nil {
		return DefaultListConcurrency
	}
	return *s.ListConcurrency
}

// GetMaxLogFiles returns the configured rotation limit. 0 means unlimited.
func (s *Settings) GetMaxLogFiles() int {
	if s == nil || s.MaxLogFiles == nil {
		return DefaultMaxLogFiles
	}
	return *s.MaxLogFiles
}

// GetTmuxCommand returns the tmux binary to run
func (s *Settings) GetTmuxCommand() string {
	if s == nil || s.TmuxCommand == "" {
		return DefaultTmuxCommand
	}
	return s.TmuxCommand
}

// GetLayoutsFile returns the layouts file, defaulting to the one in the home directory
func (s *Settings) GetLayoutsFile() string {
	if s == nil || s.LayoutsFile == "" {
		return GetLayoutsPath()
	}
	return ExpandPath(s.LayoutsFile)
}

// GetDefaultLayout returns the layout used when a create names none
func (s *Settings) GetDefaultLayout() string {
	if s == nil {
		return ""
	}
	return s.DefaultLayout
}
