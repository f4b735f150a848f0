package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalyticsMetrics() {
	r.InterCommunityEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "communities_inter_community_edges",
			Help: "Number of edges crossing between communities",
		},
	)

	r.BrokersTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "communities_brokers",
			Help: "Number of brokers across the reported communities",
		},
	)

	r.NodeQueriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "communities_node_queries_total",
			Help: "Total number of node sentiment queries",
		},
		[]string{"status"},
	)
}
