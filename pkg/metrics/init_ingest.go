package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initIngestMetrics() {
	r.RecordsReadTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "communities_records_read_total",
			Help: "Total number of interaction records read",
		},
		[]string{"source"},
	)

	r.RecordErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "communities_record_errors_total",
			Help: "Total number of records that aborted a graph build",
		},
		[]string{"op"},
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "communities_graph_nodes",
			Help: "Number of nodes in the built graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "communities_graph_edges",
			Help: "Number of edges in the built graph",
		},
	)

	r.NodesPrunedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "communities_nodes_pruned_total",
			Help: "Total number of isolated nodes removed",
		},
	)

	r.EdgeCapHit = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "communities_edge_cap_hit",
			Help: "Whether the last build stopped at max_edges (1 = yes, 0 = no)",
		},
	)
}
