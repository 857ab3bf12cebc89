package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/strategy"
	"github.com/agbru/stratbench/internal/workload"
)

const namespace = "stratbench"

// Recorder collects comparison measurements on its own registry, so several
// recorders (one per test) never collide on metric names.
type Recorder struct {
	registry    *prometheus.Registry
	duration    *prometheus.HistogramVec
	last        *prometheus.GaugeVec
	comparisons *prometheus.CounterVec
}

// NewRecorder creates a recorder with Go runtime and process collectors
// registered next to the benchmark metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "strategy_duration_seconds",
			Help:      "Wall-clock time of one strategy run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"strategy", "task"}),
		last: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "strategy_last_duration_seconds",
			Help:      "Wall-clock time of the latest run of each strategy.",
		}, []string{"strategy", "task"}),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Comparisons by task and outcome.",
		}, []string{"task", "outcome"}),
	}
	r.registry.MustRegister(
		r.duration,
		r.last,
		r.comparisons,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveStrategy records one successful strategy run.
func (r *Recorder) ObserveStrategy(kind strategy.Kind, task workload.TaskKind, elapsed time.Duration) {
	labels := prometheus.Labels{"strategy": kind.String(), "task": task.String()}
	r.duration.With(labels).Observe(elapsed.Seconds())
	r.last.With(labels).Set(elapsed.Seconds())
}

// ObserveComparison counts a comparison under its outcome label.
func (r *Recorder) ObserveComparison(task workload.TaskKind, err error) {
	r.comparisons.WithLabelValues(task.String(), Outcome(err)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Outcome maps a comparison error to a low-cardinality label value.
func Outcome(err error) string {
	var (
		specErr  apperrors.InvalidSpecError
		faultErr apperrors.WorkerFaultError
		resErr   apperrors.ResourceExhaustionError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &specErr):
		return "invalid_spec"
	case errors.As(err, &faultErr):
		return "worker_fault"
	case errors.As(err, &resErr):
		return "resource_exhaustion"
	}
	return "error"
}
