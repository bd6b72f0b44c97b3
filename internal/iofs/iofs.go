// Package iofs creates application directories and writes the embedded
// default configuration files on first run.
package iofs

import (
	_ "embed"
	"os"

	"github.com/olydash/olydash/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed datasets.yaml
var DatasetsYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureOutputDir creates the directory for derived tables.
func EnsureOutputDir(cfg *config.Config) error {
	return touchDir(cfg.OutputDir())
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

// EnsureDatasetsFile writes the default datasets.yaml unless it exists.
func EnsureDatasetsFile(homeDir string) error {
	return ensureFile(config.DatasetsFilePath(homeDir), DatasetsYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}
