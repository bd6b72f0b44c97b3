// Package iopipeline loads raw entities, builds derived tables and
// persists them.
//
// Raw entities are loaded concurrently. Derived tables are built in
// dependency waves: a wave contains every builder whose inputs are
// settled, and builders of one wave run in parallel. A builder whose
// input failed is skipped, while independent tables are still built and
// saved.
package iopipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/olydash/olydash/internal/iometrics"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/enrich"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/errcode"
	"github.com/olydash/olydash/pkg/lifecycle"
	"github.com/olydash/olydash/pkg/table"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs one enrichment pass.
type Pipeline struct {
	cfg      *config.Config
	loader   lifecycle.Loader
	store    lifecycle.Store
	metrics  *iometrics.Recorder
	enricher *enrich.Enricher
}

// Result holds tables and per-table errors of a run. Errors are keyed
// by raw entity or derived table name.
type Result struct {
	Tables   map[string]*table.Table
	Errors   map[string]error
	Duration time.Duration
}

// Built returns names of derived tables that were built and saved.
func (r *Result) Built() []string {
	var res []string
	for _, name := range Tables() {
		if _, ok := r.Tables[name]; ok {
			res = append(res, name)
		}
	}
	return res
}

// Failed returns names of derived tables that were not built.
func (r *Result) Failed() []string {
	var res []string
	for _, name := range Tables() {
		if _, ok := r.Errors[name]; ok {
			res = append(res, name)
		}
	}
	return res
}

// New creates a Pipeline. A nil metrics recorder creates a private one.
func New(
	cfg *config.Config,
	loader lifecycle.Loader,
	store lifecycle.Store,
	metrics *iometrics.Recorder,
) *Pipeline {
	if metrics == nil {
		metrics = iometrics.New(cfg)
	}
	var opts []enrich.Option
	if d, err := time.Parse(time.DateOnly, cfg.Games.ReferenceDate); err == nil {
		opts = append(opts, enrich.OptGamesDate(d))
	}
	return &Pipeline{
		cfg:      cfg,
		loader:   loader,
		store:    store,
		metrics:  metrics,
		enricher: enrich.New(opts...),
	}
}

// Run loads, builds and saves every derived table. It returns the result
// together with PartialFailureError when some tables failed, or with
// AllTablesFailedError when none was built. Context cancellation aborts
// the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{
		Tables: make(map[string]*table.Table),
		Errors: make(map[string]error),
	}

	slog.Info("Starting enrichment", "input_dir", p.cfg.InputDir(),
		"output_dir", p.cfg.OutputDir(), "jobs", p.jobs())

	if err := p.load(ctx, res); err != nil {
		return nil, err
	}
	if err := p.build(ctx, res); err != nil {
		return nil, err
	}
	p.removeFailed(ctx, res)

	// raw tables are not part of the result
	for _, name := range entity.RawNames() {
		delete(res.Tables, name)
	}
	res.Duration = time.Since(start)

	built, failed := res.Built(), res.Failed()
	slog.Info("Enrichment complete",
		"built", len(built),
		"failed", len(failed),
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	gn.Info(`Enrichment complete
Tables built: %d, failed %d.
		Elapsed time: <em>%s</em>
`,
		len(built),
		len(failed),
		gnfmt.TimeString(res.Duration.Seconds()),
	)

	if err := p.metrics.Push(ctx); err != nil {
		slog.Warn("Cannot push metrics", "error", err)
	}

	switch {
	case len(built) == 0:
		return res, AllTablesFailedError(len(failed))
	case len(failed) > 0:
		return res, PartialFailureError(failed, len(builders))
	}
	return res, nil
}

func (p *Pipeline) jobs() int {
	if p.cfg.JobsNumber <= 0 {
		return 1
	}
	return p.cfg.JobsNumber
}

// load reads every raw entity. A failed entity is recorded and does not
// stop the others.
func (p *Pipeline) load(ctx context.Context, res *Result) error {
	ents := entity.RawNames()
	tables := make([]*table.Table, len(ents))
	errs := make([]error, len(ents))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.jobs())
	for i, name := range ents {
		g.Go(func() error {
			tables[i], errs[i] = p.loader.Load(gCtx, name)
			if errors.Is(errs[i], context.Canceled) {
				return errs[i]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, name := range ents {
		if errs[i] != nil {
			res.Errors[name] = errs[i]
			slog.Error("Cannot load entity", "entity", name, "error", errs[i])
			continue
		}
		res.Tables[name] = tables[i]
		p.metrics.RowsLoaded(name, tables[i].Len())
		slog.Debug("Entity rows",
			"entity", name, "rows", humanize.Comma(int64(tables[i].Len())))
	}
	return nil
}

// build runs builders wave by wave until every builder is settled.
func (p *Pipeline) build(ctx context.Context, res *Result) error {
	pending := slices.Clone(builders)
	for wave := 1; len(pending) > 0; wave++ {
		var ready, rest []builder
		for _, b := range pending {
			if p.settled(res, b) {
				ready = append(ready, b)
			} else {
				rest = append(rest, b)
			}
		}
		if len(ready) == 0 {
			return fmt.Errorf("unresolvable dependencies: %s", names(rest))
		}
		slog.Debug("Building wave", "wave", wave, "tables", names(ready))

		if err := p.runWave(ctx, res, ready); err != nil {
			return err
		}
		pending = rest
	}
	return nil
}

func (p *Pipeline) settled(res *Result, b builder) bool {
	for _, in := range slices.Concat(b.inputs, b.optional) {
		_, ok := res.Tables[in]
		_, failed := res.Errors[in]
		if !ok && !failed {
			return false
		}
	}
	return true
}

type outcome struct {
	table *table.Table
	err   error
	dur   time.Duration
}

// runWave builds the ready builders in parallel. Every goroutine writes
// only its own outcome slot.
func (p *Pipeline) runWave(
	ctx context.Context,
	res *Result,
	ready []builder,
) error {
	out := make([]outcome, len(ready))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.jobs())
	for i, b := range ready {
		in, err := p.inputsOf(res, b)
		if err != nil {
			out[i].err = err
			continue
		}
		g.Go(func() error {
			out[i] = p.runBuilder(gCtx, b, in)
			if errors.Is(out[i].err, context.Canceled) {
				return out[i].err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, b := range ready {
		o := out[i]
		if o.err != nil {
			res.Errors[b.name] = o.err
			status := iometrics.StatusFailed
			var gnErr *gn.Error
			if errors.As(o.err, &gnErr) && gnErr.Code == errcode.EnrichInputMissingError {
				status = iometrics.StatusSkipped
			}
			p.metrics.TableBuilt(b.name, status, o.dur)
			slog.Error("Cannot build table", "table", b.name, "error", o.err)
			continue
		}
		res.Tables[b.name] = o.table
		p.metrics.TableBuilt(b.name, iometrics.StatusOK, o.dur)
		slog.Info("Built table",
			"table", b.name,
			"rows", humanize.Comma(int64(o.table.Len())),
			"duration", gnfmt.TimeString(o.dur.Seconds()),
		)
	}
	return nil
}

// inputsOf collects builder inputs or reports the first missing required
// one. Missing optional inputs are only logged.
func (p *Pipeline) inputsOf(res *Result, b builder) (inputSet, error) {
	in := make(inputSet, len(b.inputs)+len(b.optional))
	for _, name := range b.inputs {
		t, ok := res.Tables[name]
		if !ok {
			return nil, InputMissingError(b.name, name)
		}
		in[name] = t
	}
	for _, name := range b.optional {
		t, ok := res.Tables[name]
		if !ok {
			slog.Warn("Building table without optional input",
				"table", b.name, "input", name)
			continue
		}
		in[name] = t
	}
	return in, nil
}

func (p *Pipeline) runBuilder(
	ctx context.Context,
	b builder,
	in inputSet,
) outcome {
	start := time.Now()
	t, err := b.build(p.enricher, in)
	if err != nil {
		if errors.Is(err, enrich.ErrSchema) {
			err = SchemaError(b.name, err)
		}
		return outcome{err: err, dur: time.Since(start)}
	}
	if err = p.store.Save(ctx, t); err != nil {
		return outcome{err: err, dur: time.Since(start)}
	}
	return outcome{table: t, dur: time.Since(start)}
}

// removeFailed deletes stored files of failed tables, so outputs of an
// older run are never mixed with the new one.
func (p *Pipeline) removeFailed(ctx context.Context, res *Result) {
	for _, name := range res.Failed() {
		if err := p.store.Remove(ctx, name); err != nil {
			slog.Warn("Cannot remove stale table", "table", name, "error", err)
		}
	}
}

func names(bs []builder) []string {
	res := make([]string, len(bs))
	for i, b := range bs {
		res[i] = b.name
	}
	return res
}
