package iodatasets

import (
	"errors"
	"os"
	"testing"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/internal/iofs"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(t.TempDir())})
	require.NoError(t, iofs.EnsureDirs(cfg.HomeDir))
	return cfg
}

func TestLoadEmbedded(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, iofs.EnsureDatasetsFile(cfg.HomeDir))

	m, err := New(cfg).Load()
	require.NoError(t, err)
	assert.Empty(t, m.Warnings)
	assert.Equal(t, []string{"schedules.csv", "schedule.csv"},
		m.Files(entity.Schedules))
}

func TestLoadMissing(t *testing.T) {
	m, err := New(testConfig(t)).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"nocs.csv"}, m.Files(entity.NOCs))
}

func TestLoadCustom(t *testing.T) {
	cfg := testConfig(t)
	yml := "datasets:\n  athletes:\n    - paris_athletes.csv\n"
	err := os.WriteFile(config.DatasetsFilePath(cfg.HomeDir), []byte(yml), 0644)
	require.NoError(t, err)

	m, err := New(cfg).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"paris_athletes.csv"}, m.Files(entity.Athletes))
	assert.Equal(t, []string{"coaches.csv"}, m.Files(entity.Coaches))
	assert.Len(t, m.Warnings, len(entity.RawNames())-1)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		msg string
		yml string
	}{
		{"bad yaml", "datasets: [\n"},
		{"escaping path", "datasets:\n  nocs:\n    - ../nocs.csv\n"},
	}
	for _, v := range tests {
		cfg := testConfig(t)
		path := config.DatasetsFilePath(cfg.HomeDir)
		require.NoError(t, os.WriteFile(path, []byte(v.yml), 0644), v.msg)

		_, err := New(cfg).Load()
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, errcode.DatasetsParseError, gnErr.Code, v.msg)
		assert.Equal(t, []any{path, path}, gnErr.Vars, v.msg)
	}
}
