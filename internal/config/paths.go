package config

import (
	"os"
	"path/filepath"
)

// EnvHome overrides the orchestrator home directory
const EnvHome = "CC_ORCHESTRATOR_HOME"

// GetHome returns CC_ORCHESTRATOR_HOME or the ~/.cc-orchestrator default
func GetHome() string {
	home := os.Getenv(EnvHome)
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".cc-orchestrator"
		}
		return filepath.Join(homeDir, ".cc-orchestrator")
	}
	return ExpandPath(home)
}

// GetSettingsPath returns $CC_ORCHESTRATOR_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// GetJournalPath returns $CC_ORCHESTRATOR_HOME/journal.db
func GetJournalPath() string {
	return filepath.Join(GetHome(), "journal.db")
}

// GetLayoutsPath returns $CC_ORCHESTRATOR_HOME/layouts.yaml
func GetLayoutsPath() string {
	return filepath.Join(GetHome(), "layouts.yaml")
}

// GetLockPath returns $CC_ORCHESTRATOR_HOME/orchestrator.lock
func GetLockPath() string {
	return filepath.Join(GetHome(), "orchestrator.lock")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
