// Package iodatasets reads the datasets.yaml manifest.
package iodatasets

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/datasets"
	"gopkg.in/yaml.v3"
)

type iodatasets struct {
	path string
}

// New creates a manifest loader for the config directory of cfg.
func New(cfg *config.Config) datasets.Datasets {
	res := iodatasets{path: config.DatasetsFilePath(cfg.HomeDir)}
	return &res
}

// Load reads and validates datasets.yaml. A missing manifest yields
// default file names.
func (d *iodatasets) Load() (*datasets.Manifest, error) {
	data, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Datasets manifest not found, using defaults", "path", d.path)
		return datasets.Default(), nil
	}
	if err != nil {
		return nil, ReadError(d.path, err)
	}

	var res datasets.Manifest
	if err = yaml.Unmarshal(data, &res); err != nil {
		return nil, ParseError(d.path, err)
	}
	if err = res.Validate(); err != nil {
		return nil, ParseError(d.path, err)
	}
	for _, w := range res.Warnings {
		gn.Warn("datasets.yaml: %s", w)
	}
	return &res, nil
}
