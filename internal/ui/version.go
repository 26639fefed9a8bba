package ui

import (
	"fmt"
	"sync"
)

// VersionInfo holds build information shown by the CLI and the dashboard
type VersionInfo struct {
	Commit    string
	Date      string
	GoVersion string
	Tagline   string
	Version   string
}

var (
	versionInfo   = VersionInfo{Version: "dev"}
	versionInfoMu sync.RWMutex
)

// SetVersionInfo sets the build information
func SetVersionInfo(info VersionInfo) {
	versionInfoMu.Lock()
	defer versionInfoMu.Unlock()
	versionInfo = info
}

// GetVersionInfo returns the build information
func GetVersionInfo() VersionInfo {
	versionInfoMu.RLock()
	defer versionInfoMu.RUnlock()
	return versionInfo
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("cc-orchestrator %s (commit: %s, built: %s, go: %s)",
		v.Version, v.Commit, v.Date, v.GoVersion)
}
