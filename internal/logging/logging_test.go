package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_DiscardByDefault(t *testing.T) {
	t.Setenv(EnvDebug, "")
	t.Setenv(EnvDebugFile, "")

	path, err := Initialize(Options{})

	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NotNil(t, Logger)
}

func TestInitialize_DebugFile(t *testing.T) {
	t.Setenv(EnvDebug, "")
	t.Setenv(EnvDebugFile, "")
	file := filepath.Join(t.TempDir(), "nested", "debug.log")
	var stdout bytes.Buffer

	path, err := Initialize(Options{DebugFile: file, Stdout: &stdout})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Initialize(Options{}) })

	assert.Equal(t, file, path)
	assert.Contains(t, stdout.String(), file)

	Logger.Info("hello", "k", "v")
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestInitialize_InheritedDebugFileFromEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "inherited.log")
	t.Setenv(EnvDebug, "1")
	t.Setenv(EnvDebugFile, file)
	var stdout bytes.Buffer

	path, err := Initialize(Options{Stdout: &stdout})
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv(EnvDebug)
		os.Unsetenv(EnvDebugFile)
		_, _ = Initialize(Options{})
	})

	assert.Equal(t, file, path)
	assert.Empty(t, stdout.String(), "inherited debug must not print the notice")
}

func TestRotateLogs_DeletesOldest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		p := filepath.Join(dir, fmt.Sprintf("%d.log", i))
		require.NoError(t, os.WriteFile(p, nil, 0644))
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, mod, mod))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), nil, 0644))

	require.NoError(t, rotateLogs(dir, 3))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"3.log", "4.log", "keep.txt"}, names)
}

func TestRotateLogs_UnderLimit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), nil, 0644))

	require.NoError(t, rotateLogs(dir, 10))

	_, err := os.Stat(filepath.Join(dir, "a.log"))
	assert.NoError(t, err)
}

// seedLogDir points the log directory at a temp dir holding count old logs
func seedLogDir(t *testing.T, count int) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))
	t.Setenv("LOCALAPPDATA", filepath.Join(home, "appdata"))
	t.Setenv(EnvDebug, "")
	t.Setenv(EnvDebugFile, "")

	dir, err := Dir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0755))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < count; i++ {
		p := filepath.Join(dir, fmt.Sprintf("old-%d.log", i))
		require.NoError(t, os.WriteFile(p, nil, 0644))
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, mod, mod))
	}
	t.Cleanup(func() { _, _ = Initialize(Options{}) })
	return dir
}

func countLogs(t *testing.T, dir string) int {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	return len(matches)
}

func TestInitialize_MaxLogFilesFromEnv(t *testing.T) {
	dir := seedLogDir(t, 5)
	t.Setenv(EnvMaxLogFiles, "2")

	path, err := Initialize(Options{Debug: true, MaxLogFiles: DefaultMaxLogFiles})

	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, 2, countLogs(t, dir), "one old log plus the new one")
	_, err = os.Stat(filepath.Join(dir, "old-4.log"))
	assert.NoError(t, err, "newest old log must survive")
}

func TestInitialize_ExplicitMaxLogFilesBeatsEnv(t *testing.T) {
	dir := seedLogDir(t, 5)
	t.Setenv(EnvMaxLogFiles, "1")

	_, err := Initialize(Options{Debug: true, MaxLogFiles: 3})

	require.NoError(t, err)
	assert.Equal(t, 3, countLogs(t, dir))
}

func TestInitialize_ZeroMaxLogFilesKeepsEverything(t *testing.T) {
	dir := seedLogDir(t, 5)
	t.Setenv(EnvMaxLogFiles, "")

	_, err := Initialize(Options{Debug: true, MaxLogFiles: 0})

	require.NoError(t, err)
	assert.Equal(t, 6, countLogs(t, dir))
}

func TestInitialize_ZeroFromEnvKeepsEverything(t *testing.T) {
	dir := seedLogDir(t, 5)
	t.Setenv(EnvMaxLogFiles, "0")

	_, err := Initialize(Options{Debug: true, MaxLogFiles: DefaultMaxLogFiles})

	require.NoError(t, err)
	assert.Equal(t, 6, countLogs(t, dir))
}
