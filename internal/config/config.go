// Package config loads and saves fitcue configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the fitcue configuration.
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Log         LogConfig         `yaml:"log"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Server      ServerConfig      `yaml:"server"`
	Picker      PickerConfig      `yaml:"picker"`
}

// StorageConfig holds exercise log storage settings.
type StorageConfig struct {
	DBPath        string `yaml:"db_path"`         // SQLite database path (empty = default from paths)
	BusyTimeoutMs int    `yaml:"busy_timeout_ms"` // SQLite busy timeout in ms
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (empty = stderr)
}

// SuggestionsConfig holds suggestion engine settings.
type SuggestionsConfig struct {
	MaxResults            int     `yaml:"max_results"`             // Suggestions returned per request
	HistoryLimit          int     `yaml:"history_limit"`           // Entries fetched per request
	RecencyWindow         int     `yaml:"recency_window"`          // Newest entries read by the recency signal
	FrequencyTopN         int     `yaml:"frequency_top_n"`         // Most frequent names scored
	MinPatternOccurrences int     `yaml:"min_pattern_occurrences"` // Threshold for time/weekday patterns
	TimeWindowHours       int     `yaml:"time_window_hours"`       // +/- hours for the time-of-day signal
	TypicalDurationWindow int     `yaml:"typical_duration_window"` // Matching entries averaged for typical duration
	FuzzyMatch            bool    `yaml:"fuzzy_match"`             // Admit near-miss names by edit distance
	FuzzyMinSimilarity    float64 `yaml:"fuzzy_min_similarity"`    // Similarity floor for fuzzy_match
	Parallel              bool    `yaml:"parallel"`                // Evaluate signals concurrently
	CacheSize             int     `yaml:"cache_size"`              // Memoised results kept (0 = off)
}

// CatalogConfig holds exercise catalog settings.
type CatalogConfig struct {
	Path string `yaml:"path"` // YAML overlay merged over the built-in catalog
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address           string `yaml:"address"`
	ReadTimeoutMs     int    `yaml:"read_timeout_ms"`
	WriteTimeoutMs    int    `yaml:"write_timeout_ms"`
	IdleTimeoutMs     int    `yaml:"idle_timeout_ms"`
	ShutdownTimeoutMs int    `yaml:"shutdown_timeout_ms"`
}

// PickerConfig holds interactive picker settings.
type PickerConfig struct {
	DebounceMs int `yaml:"debounce_ms"` // Delay before re-ranking after a keystroke
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath:        "", // Use default from paths
			BusyTimeoutMs: 5000,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
		Suggestions: DefaultSuggestionsConfig(),
		Catalog: CatalogConfig{
			Path: "",
		},
		Server: ServerConfig{
			Address:           "127.0.0.1:8787",
			ReadTimeoutMs:     5000,
			WriteTimeoutMs:    10000,
			IdleTimeoutMs:     60000,
			ShutdownTimeoutMs: 5000,
		},
		Picker: PickerConfig{
			DebounceMs: 100,
		},
	}
}

// DefaultSuggestionsConfig returns the default suggestion engine settings.
func DefaultSuggestionsConfig() SuggestionsConfig {
	return SuggestionsConfig{
		MaxResults:            5,
		HistoryLimit:          200,
		RecencyWindow:         20,
		FrequencyTopN:         10,
		MinPatternOccurrences: 2,
		TimeWindowHours:       2,
		TypicalDurationWindow: 10,
		FuzzyMatch:            false,
		FuzzyMinSimilarity:    0.5,
		Parallel:              true,
		CacheSize:             128,
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DatabasePath returns the configured database path or the default one.
func (c *Config) DatabasePath() string {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath
	}
	return DefaultPaths().DatabaseFile()
}

// Get retrieves a configuration value by dot-separated key.
// For example: "suggestions.max_results" or "server.address".
func (c *Config) Get(key string) (string, error) {
	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	switch section {
	case "storage":
		return c.getStorageField(field)
	case "log":
		return c.getLogField(field)
	case "suggestions":
		return c.getSuggestionsField(field)
	case "catalog":
		if field == "path" {
			return c.Catalog.Path, nil
		}
		return "", fmt.Errorf("unknown field: catalog.%s", field)
	case "server":
		return c.getServerField(field)
	case "picker":
		if field == "debounce_ms" {
			return strconv.Itoa(c.Picker.DebounceMs), nil
		}
		return "", fmt.Errorf("unknown field: picker.%s", field)
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case "storage":
		return c.setStorageField(field, value)
	case "log":
		return c.setLogField(field, value)
	case "suggestions":
		return c.setSuggestionsField(field, value)
	case "catalog":
		if field != "path" {
			return fmt.Errorf("unknown field: catalog.%s", field)
		}
		c.Catalog.Path = value
		return nil
	case "server":
		return c.setServerField(field, value)
	case "picker":
		if field != "debounce_ms" {
			return fmt.Errorf("unknown field: picker.%s", field)
		}
		v, err := parseNonNegative(field, value)
		if err != nil {
			return err
		}
		c.Picker.DebounceMs = v
		return nil
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func splitKey(key string) (string, string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", "", errors.New("key must be in format 'section.key'")
	}
	return parts[0], parts[1], nil
}

func parseNonNegative(field, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", field, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid %s: must be non-negative", field)
	}
	return v, nil
}

func parsePositive(field, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", field, err)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid %s: must be >= 1", field)
	}
	return v, nil
}

func (c *Config) getStorageField(field string) (string, error) {
	switch field {
	case "db_path":
		return c.Storage.DBPath, nil
	case "busy_timeout_ms":
		return strconv.Itoa(c.Storage.BusyTimeoutMs), nil
	default:
		return "", fmt.Errorf("unknown field: storage.%s", field)
	}
}

func (c *Config) setStorageField(field, value string) error {
	switch field {
	case "db_path":
		c.Storage.DBPath = value
	case "busy_timeout_ms":
		v, err := parseNonNegative(field, value)
		if err != nil {
			return err
		}
		c.Storage.BusyTimeoutMs = v
	default:
		return fmt.Errorf("unknown field: storage.%s", field)
	}
	return nil
}

func (c *Config) getLogField(field string) (string, error) {
	switch field {
	case "level":
		return c.Log.Level, nil
	case "file":
		return c.Log.File, nil
	default:
		return "", fmt.Errorf("unknown field: log.%s", field)
	}
}

func (c *Config) setLogField(field, value string) error {
	switch field {
	case "level":
		if !isValidLogLevel(value) {
			return fmt.Errorf("invalid level: %s (must be debug, info, warn, or error)", value)
		}
		c.Log.Level = value
	case "file":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown field: log.%s", field)
	}
	return nil
}

func (c *Config) getSuggestionsField(field string) (string, error) {
	s := c.Suggestions
	switch field {
	case "max_results":
		return strconv.Itoa(s.MaxResults), nil
	case "history_limit":
		return strconv.Itoa(s.HistoryLimit), nil
	case "recency_window":
		return strconv.Itoa(s.RecencyWindow), nil
	case "frequency_top_n":
		return strconv.Itoa(s.FrequencyTopN), nil
	case "min_pattern_occurrences":
		return strconv.Itoa(s.MinPatternOccurrences), nil
	case "time_window_hours":
		return strconv.Itoa(s.TimeWindowHours), nil
	case "typical_duration_window":
		return strconv.Itoa(s.TypicalDurationWindow), nil
	case "fuzzy_match":
		return strconv.FormatBool(s.FuzzyMatch), nil
	case "fuzzy_min_similarity":
		return strconv.FormatFloat(s.FuzzyMinSimilarity, 'f', -1, 64), nil
	case "parallel":
		return strconv.FormatBool(s.Parallel), nil
	case "cache_size":
		return strconv.Itoa(s.CacheSize), nil
	default:
		return "", fmt.Errorf("unknown field: suggestions.%s", field)
	}
}

func (c *Config) setSuggestionsField(field, value string) error {
	s := &c.Suggestions

	ints := map[string]*int{
		"max_results":             &s.MaxResults,
		"history_limit":           &s.HistoryLimit,
		"recency_window":          &s.RecencyWindow,
		"frequency_top_n":         &s.FrequencyTopN,
		"min_pattern_occurrences": &s.MinPatternOccurrences,
		"time_window_hours":       &s.TimeWindowHours,
		"typical_duration_window": &s.TypicalDurationWindow,
	}
	if dst, ok := ints[field]; ok {
		v, err := parsePositive(field, value)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}

	switch field {
	case "fuzzy_match", "parallel":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", field, err)
		}
		if field == "fuzzy_match" {
			s.FuzzyMatch = v
		} else {
			s.Parallel = v
		}
	case "fuzzy_min_similarity":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for fuzzy_min_similarity: %w", err)
		}
		if v <= 0 || v > 1 {
			return errors.New("invalid fuzzy_min_similarity: must be in (0, 1]")
		}
		s.FuzzyMinSimilarity = v
	case "cache_size":
		v, err := parseNonNegative(field, value)
		if err != nil {
			return err
		}
		s.CacheSize = v
	default:
		return fmt.Errorf("unknown field: suggestions.%s", field)
	}
	return nil
}

func (c *Config) getServerField(field string) (string, error) {
	switch field {
	case "address":
		return c.Server.Address, nil
	case "read_timeout_ms":
		return strconv.Itoa(c.Server.ReadTimeoutMs), nil
	case "write_timeout_ms":
		return strconv.Itoa(c.Server.WriteTimeoutMs), nil
	case "idle_timeout_ms":
		return strconv.Itoa(c.Server.IdleTimeoutMs), nil
	case "shutdown_timeout_ms":
		return strconv.Itoa(c.Server.ShutdownTimeoutMs), nil
	default:
		return "", fmt.Errorf("unknown field: server.%s", field)
	}
}

func (c *Config) setServerField(field, value string) error {
	timeouts := map[string]*int{
		"read_timeout_ms":     &c.Server.ReadTimeoutMs,
		"write_timeout_ms":    &c.Server.WriteTimeoutMs,
		"idle_timeout_ms":     &c.Server.IdleTimeoutMs,
		"shutdown_timeout_ms": &c.Server.ShutdownTimeoutMs,
	}
	if dst, ok := timeouts[field]; ok {
		v, err := parseNonNegative(field, value)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}

	if field != "address" {
		return fmt.Errorf("unknown field: server.%s", field)
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("invalid address: must not be empty")
	}
	c.Server.Address = value
	return nil
}

// Validate validates the configuration. Hard errors are returned; soft
// suggestion settings are repaired by ValidateAndFix.
func (c *Config) Validate() error {
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}

	if c.Storage.BusyTimeoutMs < 0 {
		return errors.New("storage.busy_timeout_ms must be >= 0")
	}

	if strings.TrimSpace(c.Server.Address) == "" {
		return errors.New("server.address must not be empty")
	}

	serverTimeouts := []struct {
		name string
		val  int
	}{
		{"server.read_timeout_ms", c.Server.ReadTimeoutMs},
		{"server.write_timeout_ms", c.Server.WriteTimeoutMs},
		{"server.idle_timeout_ms", c.Server.IdleTimeoutMs},
		{"server.shutdown_timeout_ms", c.Server.ShutdownTimeoutMs},
	}
	for _, t := range serverTimeouts {
		if t.val < 0 {
			return fmt.Errorf("%s must be >= 0", t.name)
		}
	}

	if c.Picker.DebounceMs < 0 {
		c.Picker.DebounceMs = 0
	}

	c.Suggestions.ValidateAndFix()

	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("FITCUE_DB_PATH"); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("FITCUE_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Log.Level = v
		}
	}
	if v := os.Getenv("FITCUE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
	if v := os.Getenv("FITCUE_CATALOG_PATH"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("FITCUE_SERVER_ADDRESS"); v != "" {
		c.Server.Address = v
	}
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"storage.db_path",
		"storage.busy_timeout_ms",
		"log.level",
		"log.file",
		"suggestions.max_results",
		"suggestions.history_limit",
		"suggestions.recency_window",
		"suggestions.frequency_top_n",
		"suggestions.min_pattern_occurrences",
		"suggestions.time_window_hours",
		"suggestions.typical_duration_window",
		"suggestions.fuzzy_match",
		"suggestions.fuzzy_min_similarity",
		"suggestions.parallel",
		"suggestions.cache_size",
		"catalog.path",
		"server.address",
		"server.read_timeout_ms",
		"server.write_timeout_ms",
		"server.idle_timeout_ms",
		"server.shutdown_timeout_ms",
		"picker.debounce_ms",
	}
}

// ValidationWarning represents a config validation warning.
type ValidationWarning struct {
	Field   string
	Message string
}

// ValidateAndFix validates suggestion settings. Invalid values are fixed
// by falling back to defaults or clamping. Validation never prevents startup.
func (s *SuggestionsConfig) ValidateAndFix() []ValidationWarning {
	defaults := DefaultSuggestionsConfig()
	var warnings []ValidationWarning

	warn := func(field, msg string) {
		warnings = append(warnings, ValidationWarning{Field: field, Message: msg})
	}

	// --- Counts (must be >= 1) ---
	counts := []struct {
		name string
		val  *int
		def  int
	}{
		{"max_results", &s.MaxResults, defaults.MaxResults},
		{"history_limit", &s.HistoryLimit, defaults.HistoryLimit},
		{"recency_window", &s.RecencyWindow, defaults.RecencyWindow},
		{"frequency_top_n", &s.FrequencyTopN, defaults.FrequencyTopN},
		{"min_pattern_occurrences", &s.MinPatternOccurrences, defaults.MinPatternOccurrences},
		{"time_window_hours", &s.TimeWindowHours, defaults.TimeWindowHours},
		{"typical_duration_window", &s.TypicalDurationWindow, defaults.TypicalDurationWindow},
	}
	for _, c := range counts {
		if *c.val < 1 {
			warn(c.name, fmt.Sprintf("must be >= 1, got %d; falling back to default %d", *c.val, c.def))
			*c.val = c.def
		}
	}

	// --- max_results (clamp to 50) ---
	if s.MaxResults > 50 {
		warn("max_results", fmt.Sprintf("must be <= 50, got %d; clamping to 50", s.MaxResults))
		s.MaxResults = 50
	}

	// --- time_window_hours (clamp to 12) ---
	if s.TimeWindowHours > 12 {
		warn("time_window_hours", fmt.Sprintf("must be <= 12, got %d; clamping to 12", s.TimeWindowHours))
		s.TimeWindowHours = 12
	}

	// --- fuzzy_min_similarity (0.0, 1.0] ---
	if s.FuzzyMinSimilarity <= 0 || s.FuzzyMinSimilarity > 1 {
		warn("fuzzy_min_similarity", fmt.Sprintf("must be in (0.0, 1.0], got %f; falling back to default %f", s.FuzzyMinSimilarity, defaults.FuzzyMinSimilarity))
		s.FuzzyMinSimilarity = defaults.FuzzyMinSimilarity
	}

	// --- cache_size (>= 0; 0 disables memoisation) ---
	if s.CacheSize < 0 {
		warn("cache_size", fmt.Sprintf("must be >= 0, got %d; clamping to 0", s.CacheSize))
		s.CacheSize = 0
	}

	return warnings
}
