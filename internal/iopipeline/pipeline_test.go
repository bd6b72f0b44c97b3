package iopipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/internal/iometrics"
	"github.com/olydash/olydash/internal/iopipeline"
	"github.com/olydash/olydash/internal/ioload"
	"github.com/olydash/olydash/internal/iostore"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/errcode"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup copies testdata into a temporary input directory, so tests can
// remove files.
func setup(t *testing.T) (*config.Config, string) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "derived")

	files, err := filepath.Glob(filepath.Join("testdata", "*.csv"))
	require.NoError(t, err)
	for _, f := range files {
		data, err := os.ReadFile(f)
		require.NoError(t, err)
		err = os.WriteFile(filepath.Join(in, filepath.Base(f)), data, 0644)
		require.NoError(t, err)
	}
	require.NoError(t, os.MkdirAll(out, 0755))

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDataInputDir(in),
		config.OptDataOutputDir(out),
		config.OptJobsNumber(4),
	})
	return cfg, in
}

func run(
	t *testing.T,
	cfg *config.Config,
	rec *iometrics.Recorder,
) (*iopipeline.Result, error) {
	store := iostore.NewCSV(cfg.OutputDir())
	p := iopipeline.New(cfg, ioload.New(cfg, nil), store, rec)
	return p.Run(context.Background())
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr), "%v", err)
	return gnErr.Code
}

func TestRun(t *testing.T) {
	cfg, _ := setup(t)
	rec := iometrics.New(cfg)
	res, err := run(t, cfg, rec)
	require.NoError(t, err)

	assert.Equal(t, iopipeline.Tables(), res.Built())
	assert.Empty(t, res.Failed())
	for _, name := range iopipeline.Tables() {
		_, err = os.Stat(filepath.Join(cfg.OutputDir(), name+".csv"))
		assert.NoError(t, err, name)
	}
	_, ok := res.Tables[entity.Athletes]
	assert.False(t, ok, "raw tables are not returned")

	totals := res.Tables[entity.MedalTotalsEnriched]
	require.Equal(t, 4, totals.Len())
	assert.Equal(t, "CUB", totals.Rows[0]["country_code"])
	assert.Equal(t, 1, totals.Rows[0]["rank"])

	athletes := res.Tables[entity.AthletesEnriched]
	require.Equal(t, 4, athletes.Len())
	norman := athletes.Rows[3]
	assert.Equal(t, "4", norman["code"])
	assert.Equal(t, "HART Clyde", norman["all_coaches"])
	assert.Equal(t, "team", norman["coach_source"])
	assert.Equal(t, 1, norman["gold"])
	assert.Equal(t, "none", athletes.Rows[1]["all_coaches"])

	n, err := testutil.GatherAndCount(rec.Registry(),
		"olydash_tables_built_total")
	require.NoError(t, err)
	assert.Equal(t, len(iopipeline.Tables()), n)
	n, err = testutil.GatherAndCount(rec.Registry(),
		"olydash_rows_loaded_total")
	require.NoError(t, err)
	assert.Equal(t, len(entity.RawNames()), n)
}

func TestRunDeterministic(t *testing.T) {
	cfg, _ := setup(t)
	_, err := run(t, cfg, nil)
	require.NoError(t, err)

	first := make(map[string][]byte)
	for _, name := range iopipeline.Tables() {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir(), name+".csv"))
		require.NoError(t, err)
		first[name] = data
	}

	_, err = run(t, cfg, nil)
	require.NoError(t, err)
	for _, name := range iopipeline.Tables() {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir(), name+".csv"))
		require.NoError(t, err)
		assert.Equal(t, first[name], data, name)
	}
}

func TestRunPartialFailure(t *testing.T) {
	cfg, in := setup(t)
	_, err := run(t, cfg, nil)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(in, "medals_total.csv")))
	res, err := run(t, cfg, nil)
	require.Error(t, err)
	assert.Equal(t, errcode.PipelinePartialFailureError, errCode(t, err))

	assert.Equal(t, []string{
		entity.MedalTotalsEnriched, entity.ContinentSummary,
	}, res.Failed())
	assert.Len(t, res.Built(), len(iopipeline.Tables())-2)
	assert.Equal(t, errcode.LoadFileNotFoundError,
		errCode(t, res.Errors[entity.MedalTotals]))
	assert.Equal(t, errcode.EnrichInputMissingError,
		errCode(t, res.Errors[entity.ContinentSummary]))

	for _, name := range res.Failed() {
		_, err = os.Stat(filepath.Join(cfg.OutputDir(), name+".csv"))
		assert.True(t, errors.Is(err, os.ErrNotExist), "stale %s removed", name)
	}
	_, err = os.Stat(filepath.Join(cfg.OutputDir(), entity.SportSummary+".csv"))
	assert.NoError(t, err)
}

func TestRunWithoutMedalists(t *testing.T) {
	cfg, in := setup(t)
	require.NoError(t, os.Remove(filepath.Join(in, "medallists.csv")))

	res, err := run(t, cfg, nil)
	require.Error(t, err)
	assert.Equal(t, errcode.PipelinePartialFailureError, errCode(t, err))
	assert.Equal(t, []string{
		entity.MedalistsEnriched, entity.SportSummary,
		entity.AthleteMedalsSummary,
	}, res.Failed())

	athletes := res.Tables[entity.AthletesEnriched]
	require.NotNil(t, athletes)
	require.Equal(t, 4, athletes.Len())
	for _, r := range athletes.Rows {
		assert.Equal(t, 0, r["total_medals"])
	}
	assert.Contains(t, res.Built(), entity.GenderDistribution)
}

func TestRunSchemaFailure(t *testing.T) {
	cfg, in := setup(t)
	data := "medal_type,name,country_code,discipline,event\n" +
		"Gold,RINER Teddy,FRA,Judo,Men +100 kg\n"
	err := os.WriteFile(filepath.Join(in, "medallists.csv"), []byte(data), 0644)
	require.NoError(t, err)

	res, err := run(t, cfg, nil)
	require.Error(t, err)
	assert.Equal(t, errcode.EnrichSchemaError,
		errCode(t, res.Errors[entity.AthletesEnriched]))
	assert.Contains(t, res.Built(), entity.MedalistsEnriched)
}

func TestRunAllFailed(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDataInputDir(t.TempDir()),
		config.OptDataOutputDir(t.TempDir()),
	})
	res, err := run(t, cfg, nil)
	require.Error(t, err)
	assert.Equal(t, errcode.PipelineAllTablesFailedError, errCode(t, err))
	assert.Empty(t, res.Built())
	assert.Len(t, res.Failed(), len(iopipeline.Tables()))
}

func TestRunCanceled(t *testing.T) {
	cfg, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := iopipeline.New(cfg, ioload.New(cfg, nil),
		iostore.NewCSV(cfg.OutputDir()), nil)
	_, err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
