// Package iometrics records pipeline metrics in a Prometheus registry and
// pushes them to a Pushgateway.
package iometrics

import (
	"context"
	"time"

	"github.com/olydash/olydash/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Table build statuses.
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Recorder keeps metrics of one run. It is safe for concurrent use.
type Recorder struct {
	pushURL string
	job     string
	reg     *prometheus.Registry

	rowsLoaded    *prometheus.CounterVec
	tablesBuilt   *prometheus.CounterVec
	buildDuration *prometheus.SummaryVec
}

// New creates a Recorder with its own registry.
func New(cfg *config.Config) *Recorder {
	res := Recorder{
		pushURL: cfg.Metrics.PushURL,
		job:     cfg.Metrics.Job,
		reg:     prometheus.NewRegistry(),
		rowsLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "olydash_rows_loaded_total",
				Help: "Rows loaded from raw files, partitioned by entity.",
			},
			[]string{"entity"},
		),
		tablesBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "olydash_tables_built_total",
				Help: "Derived table builds, partitioned by table and status.",
			},
			[]string{"table", "status"},
		),
		buildDuration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "olydash_build_duration_seconds",
				Help:       "Duration of derived table builds in seconds.",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"table"},
		),
	}
	res.reg.MustRegister(res.rowsLoaded, res.tablesBuilt, res.buildDuration)
	return &res
}

// Registry exposes the registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// RowsLoaded adds loaded rows of an entity.
func (r *Recorder) RowsLoaded(entity string, n int) {
	r.rowsLoaded.WithLabelValues(entity).Add(float64(n))
}

// TableBuilt records the outcome of a derived table build.
func (r *Recorder) TableBuilt(table, status string, d time.Duration) {
	r.tablesBuilt.WithLabelValues(table, status).Inc()
	if status == StatusOK {
		r.buildDuration.WithLabelValues(table).Observe(d.Seconds())
	}
}

// Enabled reports if metrics are pushed at the end of a run.
func (r *Recorder) Enabled() bool {
	return r.pushURL != ""
}

// Push sends the registry to the Pushgateway. It does nothing when no
// push URL is configured.
func (r *Recorder) Push(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	err := push.New(r.pushURL, r.job).
		Gatherer(r.reg).
		PushContext(ctx)
	if err != nil {
		return PushError(r.pushURL, err)
	}
	return nil
}
