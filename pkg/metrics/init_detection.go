package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDetectionMetrics() {
	r.PropagationPassesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "communities_propagation_passes_total",
			Help: "Total number of label propagation passes",
		},
		[]string{"mode"},
	)

	r.PassReassignments = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "communities_pass_reassignments",
			Help:    "Number of nodes whose label changed in one pass",
			Buckets: []float64{0, 1, 10, 100, 1000, 10000, 100000},
		},
		[]string{"mode"},
	)

	r.PropagationConverged = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "communities_propagation_converged",
			Help: "Whether the last propagation reached a fixed point (1 = yes, 0 = no)",
		},
	)

	r.CommunitiesFound = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "communities_found",
			Help: "Number of distinct communities in the last partition",
		},
	)

	r.Modularity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "communities_modularity",
			Help: "Directed modularity of the last partition",
		},
	)
}
