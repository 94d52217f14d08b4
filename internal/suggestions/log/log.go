// Package log provides JSON-lines structured logging for fitcue.
//
// Log format:
//
//	{"ts":"2026-01-15T10:30:00Z","level":"INFO","msg":"server started","version":"1.2.0","pid":12345}
//
// Log levels:
//   - debug: Verbose (enabled via FITCUE_DEBUG=1)
//   - info: Startup, shutdown, imports
//   - warn: Non-fatal issues (skipped import rows, catalog overlay problems)
//   - error: Failures requiring attention
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config configures the structured logger.
type Config struct {
	// Output is the writer for log output (default: os.Stderr)
	Output io.Writer

	// Level is the minimum log level (default: LevelInfo)
	Level slog.Level

	// Debug enables debug level logging (overrides Level)
	Debug bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: os.Stderr,
		Level:  slog.LevelInfo,
		Debug:  false,
	}
}

// New creates a new JSON-lines structured logger.
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	level := cfg.Level
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Key = "ts"
			}
			return a
		},
	}

	return slog.New(slog.NewJSONHandler(output, opts))
}

// NewFromEnv creates a logger configured from environment variables.
// FITCUE_DEBUG=1 enables debug logging.
func NewFromEnv() *slog.Logger {
	cfg := DefaultConfig()
	if DebugFromEnv() {
		cfg.Debug = true
	}
	return New(cfg)
}

// DebugFromEnv reports whether FITCUE_DEBUG=1 is set.
func DebugFromEnv() bool {
	return os.Getenv("FITCUE_DEBUG") == "1"
}

// ParseLevel converts a config level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Open builds a logger for the given level name, writing to file when set
// and to stderr otherwise. The returned closer releases the file.
func Open(level, file string) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	cfg := &Config{Output: os.Stderr, Level: lvl, Debug: DebugFromEnv()}
	if file == "" {
		return New(cfg), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	cfg.Output = f
	return New(cfg), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// StartupInfo holds information to log when the server starts.
type StartupInfo struct {
	Version       string
	ConfigPath    string
	DatabasePath  string
	SchemaVersion int
	CatalogPath   string
	CatalogSize   int
	Address       string
	PID           int
}

// LogStartup logs server startup information.
func LogStartup(logger *slog.Logger, info StartupInfo) {
	logger.Info("server started",
		"version", info.Version,
		"config_path", info.ConfigPath,
		"database_path", info.DatabasePath,
		"schema_version", info.SchemaVersion,
		"catalog_path", info.CatalogPath,
		"catalog_size", info.CatalogSize,
		"address", info.Address,
		"pid", info.PID,
	)
}

// LogShutdown logs server shutdown.
func LogShutdown(logger *slog.Logger, reason string) {
	logger.Info("server shutting down", "reason", reason)
}

// LogImport logs the outcome of a file import.
func LogImport(logger *slog.Logger, path string, imported, skipped int) {
	logger.Info("import finished",
		"path", path,
		"imported", imported,
		"skipped", skipped,
	)
}

// LogRowSkipped logs an import row that could not be parsed.
func LogRowSkipped(logger *slog.Logger, line int, err error) {
	logger.Warn("import row skipped", "line", line, "error", err)
}

// LogSQLiteError logs SQLite errors.
func LogSQLiteError(logger *slog.Logger, operation string, err error) {
	logger.Error("sqlite error", "operation", operation, "error", err)
}
