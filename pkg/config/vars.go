package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "olydash"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/olydash by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/olydash by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/olydash/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/olydash/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DatasetsFilePath returns the full path to the datasets.yaml manifest.
// Returns ~/.config/olydash/datasets.yaml by default.
func DatasetsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "datasets.yaml")
}

// OutputDir returns the directory for derived tables. It is the
// configured one, or ~/.cache/olydash/derived.
func (c *Config) OutputDir() string {
	if c.Data.OutputDir != "" {
		return c.Data.OutputDir
	}
	return filepath.Join(CacheDir(c.HomeDir), "derived")
}

// InputDir returns the directory with raw files, "." by default.
func (c *Config) InputDir() string {
	if c.Data.InputDir != "" {
		return c.Data.InputDir
	}
	return "."
}
