package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func boolGauge(g prometheus.Gauge, v bool) {
	if v {
		g.Set(1)
	} else {
		g.Set(0)
	}
}

// RecordRecords adds n records read from source
func (r *Registry) RecordRecords(source string, n int) {
	r.RecordsReadTotal.WithLabelValues(source).Add(float64(n))
}

// RecordBuildError records a build aborted during op ("read", "insert", "cancel")
func (r *Registry) RecordBuildError(op string) {
	r.RecordErrorsTotal.WithLabelValues(op).Inc()
}

// UpdateGraph records the shape of a built graph
func (r *Registry) UpdateGraph(nodes, edges, pruned int, truncated bool) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.NodesPrunedTotal.Add(float64(pruned))
	boolGauge(r.EdgeCapHit, truncated)
}

// RecordPass records one label propagation pass
func (r *Registry) RecordPass(mode string, reassigned int) {
	r.PropagationPassesTotal.WithLabelValues(mode).Inc()
	r.PassReassignments.WithLabelValues(mode).Observe(float64(reassigned))
}

// UpdateDetection records the outcome of community detection
func (r *Registry) UpdateDetection(communities int, converged bool, modularity float64) {
	r.CommunitiesFound.Set(float64(communities))
	boolGauge(r.PropagationConverged, converged)
	r.Modularity.Set(modularity)
}

// UpdateAnalytics records summary figures of the analytics stage
func (r *Registry) UpdateAnalytics(interEdges, brokers int) {
	r.InterCommunityEdges.Set(float64(interEdges))
	r.BrokersTotal.Set(float64(brokers))
}

// RecordNodeQuery records a node sentiment lookup
func (r *Registry) RecordNodeQuery(found bool) {
	status := "found"
	if !found {
		status = "not_found"
	}
	r.NodeQueriesTotal.WithLabelValues(status).Inc()
}

// RecordStage records the duration of a pipeline stage
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRun records the outcome of a pipeline run
func (r *Registry) RecordRun(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.RunsTotal.WithLabelValues(status).Inc()
	boolGauge(r.LastRunSuccess, err == nil)
}

// WriteTextfile writes every metric in the Prometheus text format to path,
// for pickup by the node exporter textfile collector
func (r *Registry) WriteTextfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
