package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/cc-orchestrator/internal/config"
	"github.com/renato0307/cc-orchestrator/internal/logging"
)

func intPtr(v int) *int { return &v }

// unsetEnv removes key for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()

	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestApplySettings_MaxLogFiles(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		flag     int
		settings *config.Settings
		want     int
	}{
		{name: "unset keeps default", flag: logging.DefaultMaxLogFiles, settings: &config.Settings{}, want: logging.DefaultMaxLogFiles},
		{name: "settings apply at default", flag: logging.DefaultMaxLogFiles, settings: &config.Settings{MaxLogFiles: intPtr(7)}, want: 7},
		{name: "settings zero is unlimited", flag: logging.DefaultMaxLogFiles, settings: &config.Settings{MaxLogFiles: intPtr(0)}, want: 0},
		{name: "flag beats settings", flag: 3, settings: &config.Settings{MaxLogFiles: intPtr(7)}, want: 3},
		{name: "env beats settings", env: "2", flag: logging.DefaultMaxLogFiles, settings: &config.Settings{MaxLogFiles: intPtr(7)}, want: logging.DefaultMaxLogFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, logging.EnvDebug)
			if tt.env != "" {
				t.Setenv(logging.EnvMaxLogFiles, tt.env)
			} else {
				unsetEnv(t, logging.EnvMaxLogFiles)
			}

			cli := &CLI{MaxLogFiles: tt.flag, Tmux: config.DefaultTmuxCommand}
			cli.SetSettings(tt.settings)
			cli.applySettings()

			assert.Equal(t, tt.want, cli.MaxLogFiles)
		})
	}
}

func TestApplySettings_FlagsAtDefaults(t *testing.T) {
	unsetEnv(t, logging.EnvDebug)
	debug := true

	cli := &CLI{MaxLogFiles: logging.DefaultMaxLogFiles, Tmux: config.DefaultTmuxCommand}
	cli.SetSettings(&config.Settings{Debug: &debug, SocketName: "agents", TmuxCommand: "/opt/tmux"})
	cli.applySettings()

	assert.True(t, cli.Debug)
	assert.Equal(t, "agents", cli.Socket)
	assert.Equal(t, "/opt/tmux", cli.Tmux)
}

func TestApplySettings_ExplicitFlagsWin(t *testing.T) {
	unsetEnv(t, logging.EnvDebug)

	cli := &CLI{MaxLogFiles: logging.DefaultMaxLogFiles, Socket: "mine", Tmux: "/usr/bin/tmux"}
	cli.SetSettings(&config.Settings{SocketName: "agents", TmuxCommand: "/opt/tmux"})
	cli.applySettings()

	assert.Equal(t, "mine", cli.Socket)
	assert.Equal(t, "/usr/bin/tmux", cli.Tmux)
}
