// Package logging owns the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Environment variables inherited by child processes
const (
	EnvDebug       = "CC_ORCHESTRATOR_DEBUG"
	EnvDebugFile   = "CC_ORCHESTRATOR_DEBUG_FILE"
	EnvMaxLogFiles = "CC_ORCHESTRATOR_MAX_LOG_FILES"
)

// DefaultMaxLogFiles is the rotation limit when nothing else is configured
const DefaultMaxLogFiles = 1000

// Logger is the public logger instance accessible from all packages.
// It discards everything until Initialize enables debug output.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Options controls Initialize
type Options struct {
	Debug       bool
	DebugFile   string
	MaxLogFiles int
	// Stdout receives the "debug mode enabled" notice; nil silences it
	Stdout io.Writer
}

// Initialize sets up the logger. Environment variables fill in values the
// caller left at their defaults. MaxLogFiles of 0 disables rotation. It
// returns the log file path, empty when logging is discarded.
func Initialize(opts Options) (string, error) {
	// Check environment variables for inherited debug settings
	inherited := os.Getenv(EnvDebug) == "1"
	if inherited {
		opts.Debug = true
	}
	if env := os.Getenv(EnvDebugFile); env != "" && opts.DebugFile == "" {
		opts.DebugFile = env
	}
	if env := os.Getenv(EnvMaxLogFiles); env != "" && opts.MaxLogFiles == DefaultMaxLogFiles {
		// Only override if not explicitly set
		if parsed, err := strconv.Atoi(env); err == nil {
			opts.MaxLogFiles = parsed
		}
	}

	if !opts.Debug && opts.DebugFile == "" {
		// Discard all logs when debug is false and no custom file
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return "", nil
	}

	logFilePath, err := resolveLogFile(opts)
	if err != nil {
		return "", err
	}

	// Open log file
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	// Create JSON handler with options
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	Logger = slog.New(slog.NewJSONHandler(logFile, handlerOpts))

	// Log the log file location and print the notice.
	// Children started with the env already set stay quiet, which keeps
	// every pane from printing it.
	if !inherited && opts.Stdout != nil {
		Logger.Info("Debug logging initialized", "log_file", logFilePath)
		fmt.Fprintf(opts.Stdout, "Debug mode enabled. Logs: %s\n", logFilePath)
	}

	return logFilePath, nil
}

// resolveLogFile picks the file to log to, rotating the log directory when
// no custom file is given
func resolveLogFile(opts Options) (string, error) {
	if opts.DebugFile != "" {
		// Use custom debug file path (no rotation)
		if err := os.MkdirAll(filepath.Dir(opts.DebugFile), 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
		return opts.DebugFile, nil
	}

	// Use OS-specific log directory with rotation
	logDir, err := Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get log directory: %w", err)
	}

	// Create log directory if it doesn't exist
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	// Rotate logs if needed; 0 keeps everything
	if opts.MaxLogFiles > 0 {
		if err := rotateLogs(logDir, opts.MaxLogFiles); err != nil {
			// Log rotation failure shouldn't prevent logging
			fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
		}
	}

	// Create log file with UUID name
	return filepath.Join(logDir, uuid.New().String()+".log"), nil
}

// rotateLogs deletes the oldest .log files so that one more fits under maxLogFiles
func rotateLogs(logDir string, maxLogFiles int) error {
	// Read all log files in directory
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	// Filter for .log files and get their info
	type logFileInfo struct {
		path    string
		modTime time.Time
	}
	var logFiles []logFileInfo

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logFiles = append(logFiles, logFileInfo{
			path:    filepath.Join(logDir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	// If we're under the limit, nothing to do
	if len(logFiles) < maxLogFiles {
		return nil
	}

	// Sort by modification time (oldest first)
	sort.Slice(logFiles, func(i, j int) bool {
		return logFiles[i].modTime.Before(logFiles[j].modTime)
	})

	// Delete oldest files to get under the limit
	numToDelete := len(logFiles) - maxLogFiles + 1 // +1 to make room for the new log
	for i := 0; i < numToDelete && i < len(logFiles); i++ {
		if err := os.Remove(logFiles[i].path); err != nil {
			// Continue even if deletion fails
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", logFiles[i].path, err)
		}
	}

	return nil
}

// Dir returns the OS-specific log directory
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		// macOS: ~/Library/Logs/cc-orchestrator
		return filepath.Join(homeDir, "Library", "Logs", "cc-orchestrator"), nil
	case "linux":
		// Linux: ~/.local/state/cc-orchestrator or XDG_STATE_HOME
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, "cc-orchestrator"), nil
	case "windows":
		// Windows: %LOCALAPPDATA%\cc-orchestrator\logs
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "cc-orchestrator", "logs"), nil
	default:
		// Fallback to home directory
		return filepath.Join(homeDir, ".cc-orchestrator", "logs"), nil
	}
}
