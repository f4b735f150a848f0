package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "communities_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"stage"},
	)

	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "communities_runs_total",
			Help: "Total number of pipeline runs",
		},
		[]string{"status"},
	)

	r.LastRunSuccess = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "communities_last_run_success",
			Help: "Whether the last run succeeded (1 = yes, 0 = no)",
		},
	)
}
