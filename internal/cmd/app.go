package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/runger/fitcue/internal/catalog"
	"github.com/runger/fitcue/internal/config"
	"github.com/runger/fitcue/internal/history"
	"github.com/runger/fitcue/internal/storage"
	logpkg "github.com/runger/fitcue/internal/suggestions/log"
	"github.com/runger/fitcue/internal/suggestions/suggest"
)

// now is the clock used for default reference instants; tests replace it.
var now = time.Now

// app bundles what every command needs: config, logger, store, catalog and
// engine. Close releases the store and the log file.
type app struct {
	cfg         *config.Config
	paths       *config.Paths
	logger      *slog.Logger
	store       *storage.SQLiteStore
	catalog     *catalog.Catalog
	catalogPath string
	engine      *suggest.Engine

	logCloser io.Closer
}

type appOptions struct {
	// logToStderr sends logs to stderr unless log.file is set. Otherwise
	// logs go to the data directory so command output stays clean.
	logToStderr bool
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func openApp(opts appOptions) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	paths := config.DefaultPaths()

	logFile := cfg.Log.File
	if logFile == "" && !opts.logToStderr {
		logFile = paths.LogFile()
	}
	logger, logCloser, err := logpkg.Open(cfg.Log.Level, logFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	a := &app{cfg: cfg, paths: paths, logger: logger, logCloser: logCloser}

	a.catalogPath = resolveCatalogPath(cfg, paths)
	a.catalog, err = catalog.Load(a.catalogPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	a.engine, err = suggest.NewEngine(a.catalog, engineConfig(cfg.Suggestions, logger))
	if err != nil {
		a.Close()
		return nil, err
	}

	a.store, err = storage.NewSQLiteStore(cfg.DatabasePath(),
		storage.WithBusyTimeout(cfg.Storage.BusyTimeoutMs),
		storage.WithLogger(logger),
	)
	if err != nil {
		logpkg.LogSQLiteError(logger, "open", err)
		a.Close()
		return nil, fmt.Errorf("failed to open exercise log: %w", err)
	}

	return a, nil
}

// Close releases the store and the log file.
func (a *app) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}

// resolveCatalogPath returns the configured overlay, or the conventional
// catalog.yaml next to the config file when it exists.
func resolveCatalogPath(cfg *config.Config, paths *config.Paths) string {
	if cfg.Catalog.Path != "" {
		return cfg.Catalog.Path
	}
	if _, err := os.Stat(paths.CatalogFile()); err == nil {
		return paths.CatalogFile()
	}
	return ""
}

// engineConfig maps the suggestions section onto the engine configuration.
func engineConfig(s config.SuggestionsConfig, logger *slog.Logger) suggest.Config {
	cfg := suggest.DefaultConfig()
	cfg.Params.TimeWindowHours = s.TimeWindowHours
	cfg.Params.MinPatternOccurrences = s.MinPatternOccurrences
	cfg.Params.RecencyWindow = s.RecencyWindow
	cfg.Params.FrequencyTopN = s.FrequencyTopN
	cfg.Params.FuzzyMatch = s.FuzzyMatch
	cfg.Params.FuzzyMinSimilarity = s.FuzzyMinSimilarity
	cfg.MaxResults = s.MaxResults
	cfg.HistoryLimit = s.HistoryLimit
	cfg.TypicalDurationWindow = s.TypicalDurationWindow
	cfg.Parallel = s.Parallel
	cfg.CacheSize = s.CacheSize
	cfg.Logger = logger
	return cfg
}

// parseAt parses a --at flag value; empty means now.
func parseAt(s string) (time.Time, error) {
	if s == "" {
		return now(), nil
	}
	t, err := history.ParseTimestamp(s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at: %w", err)
	}
	return t, nil
}

// configFile returns the config file in effect.
func (a *app) configFile() string {
	if configPath != "" {
		return configPath
	}
	return a.paths.ConfigFile()
}
