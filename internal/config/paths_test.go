package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	paths := DefaultPaths()

	if !filepath.IsAbs(paths.ConfigDir) {
		t.Errorf("ConfigDir should be absolute: %q", paths.ConfigDir)
	}
	if !filepath.IsAbs(paths.DataDir) {
		t.Errorf("DataDir should be absolute: %q", paths.DataDir)
	}
	if filepath.Base(paths.ConfigDir) != "fitcue" || filepath.Base(paths.DataDir) != "fitcue" {
		t.Errorf("paths should end in fitcue: %+v", paths)
	}
}

func TestDefaultPaths_XDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}

	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	t.Setenv("XDG_DATA_HOME", "/custom/data")

	paths := DefaultPaths()
	if paths.ConfigDir != "/custom/config/fitcue" {
		t.Errorf("ConfigDir should respect XDG_CONFIG_HOME: %s", paths.ConfigDir)
	}
	if paths.DataDir != "/custom/data/fitcue" {
		t.Errorf("DataDir should respect XDG_DATA_HOME: %s", paths.DataDir)
	}
}

func TestDefaultPaths_RelativeXDGIgnored(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "relative/config")
	t.Setenv("XDG_DATA_HOME", "")

	paths := DefaultPaths()
	if want := filepath.Join(home, ".config", "fitcue"); paths.ConfigDir != want {
		t.Errorf("ConfigDir = %s, want %s", paths.ConfigDir, want)
	}
	if want := filepath.Join(home, ".local", "share", "fitcue"); paths.DataDir != want {
		t.Errorf("DataDir = %s, want %s", paths.DataDir, want)
	}
}

func TestPaths_Files(t *testing.T) {
	paths := &Paths{ConfigDir: "/c/fitcue", DataDir: "/d/fitcue"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ConfigFile", paths.ConfigFile(), filepath.Join("/c/fitcue", "config.yaml")},
		{"CatalogFile", paths.CatalogFile(), filepath.Join("/c/fitcue", "catalog.yaml")},
		{"DatabaseFile", paths.DatabaseFile(), filepath.Join("/d/fitcue", "fitcue.db")},
		{"LogFile", paths.LogFile(), filepath.Join("/d/fitcue", "logs", "fitcue.log")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %s, want %s", tt.name, tt.got, tt.want)
		}
	}
	if !strings.HasSuffix(paths.LogDir(), "logs") {
		t.Errorf("LogDir should end in logs: %s", paths.LogDir())
	}
}

func TestPaths_EnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	paths := &Paths{
		ConfigDir: filepath.Join(tmpDir, "config", "fitcue"),
		DataDir:   filepath.Join(tmpDir, "data", "fitcue"),
	}

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{paths.ConfigDir, paths.DataDir, paths.LogDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("Directory should exist: %s", dir)
		} else if !info.IsDir() {
			t.Errorf("Should be a directory: %s", dir)
		}
	}
}
