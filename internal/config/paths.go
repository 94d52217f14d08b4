package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDir = "fitcue"

// Paths locates fitcue's files on disk.
type Paths struct {
	// ConfigDir holds config.yaml and the optional catalog.yaml overlay.
	ConfigDir string

	// DataDir holds the exercise log database and logs.
	DataDir string
}

// DefaultPaths returns the platform locations: XDG directories on Unix,
// %APPDATA% and %LOCALAPPDATA% on Windows.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		return &Paths{
			ConfigDir: filepath.Join(envOr("APPDATA", filepath.Join(home, "AppData", "Roaming")), appDir),
			DataDir:   filepath.Join(envOr("LOCALAPPDATA", filepath.Join(home, "AppData", "Local")), appDir),
		}
	}

	return &Paths{
		ConfigDir: filepath.Join(envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config")), appDir),
		DataDir:   filepath.Join(envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share")), appDir),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// CatalogFile returns the conventional location of a catalog overlay.
func (p *Paths) CatalogFile() string {
	return filepath.Join(p.ConfigDir, "catalog.yaml")
}

// DatabaseFile returns the path to the SQLite exercise log.
func (p *Paths) DatabaseFile() string {
	return filepath.Join(p.DataDir, "fitcue.db")
}

// LogDir returns the path to the log directory.
func (p *Paths) LogDir() string {
	return filepath.Join(p.DataDir, "logs")
}

// LogFile returns the path to the CLI log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.LogDir(), "fitcue.log")
}

// EnsureDirectories creates the config, data and log directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.LogDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// envOr returns $key, or fallback when it is unset or relative. XDG
// requires absolute paths and says to ignore relative ones.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" && filepath.IsAbs(v) {
		return v
	}
	return fallback
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}
