package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for a pipeline run
type Registry struct {
	// Ingest Metrics
	RecordsReadTotal  *prometheus.CounterVec
	RecordErrorsTotal *prometheus.CounterVec
	GraphNodes        prometheus.Gauge
	GraphEdges        prometheus.Gauge
	NodesPrunedTotal  prometheus.Counter
	EdgeCapHit        prometheus.Gauge

	// Detection Metrics
	PropagationPassesTotal *prometheus.CounterVec
	PassReassignments      *prometheus.HistogramVec
	PropagationConverged   prometheus.Gauge
	CommunitiesFound       prometheus.Gauge
	Modularity             prometheus.Gauge

	// Analytics Metrics
	InterCommunityEdges prometheus.Gauge
	BrokersTotal        prometheus.Gauge
	NodeQueriesTotal    *prometheus.CounterVec

	// Pipeline Metrics
	StageDuration  *prometheus.HistogramVec
	RunsTotal      *prometheus.CounterVec
	LastRunSuccess prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initIngestMetrics()
	r.initDetectionMetrics()
	r.initAnalyticsMetrics()
	r.initPipelineMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
