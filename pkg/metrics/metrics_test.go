package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.RecordsReadTotal == nil {
		t.Error("RecordsReadTotal not initialized")
	}
	if r.PropagationPassesTotal == nil {
		t.Error("PropagationPassesTotal not initialized")
	}
	if r.InterCommunityEdges == nil {
		t.Error("InterCommunityEdges not initialized")
	}
	if r.StageDuration == nil {
		t.Error("StageDuration not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordRecords(t *testing.T) {
	r := NewRegistry()

	r.RecordRecords("reddit.tsv", 100)
	r.RecordRecords("reddit.tsv", 50)
	r.RecordRecords("s3://bucket/other.tsv", 7)

	counter, err := r.RecordsReadTotal.GetMetricWithLabelValues("reddit.tsv")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 150 {
		t.Errorf("Counter value = %v, want 150", got)
	}
}

func TestUpdateGraph(t *testing.T) {
	r := NewRegistry()

	r.UpdateGraph(120, 400, 3, true)

	tests := []struct {
		name     string
		gauge    prometheus.Gauge
		expected float64
	}{
		{"GraphNodes", r.GraphNodes, 120},
		{"GraphEdges", r.GraphEdges, 400},
		{"EdgeCapHit", r.EdgeCapHit, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gaugeValue(t, tt.gauge); got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}

	if got := counterValue(t, r.NodesPrunedTotal); got != 3 {
		t.Errorf("NodesPrunedTotal = %v, want 3", got)
	}

	r.UpdateGraph(120, 400, 0, false)
	if got := gaugeValue(t, r.EdgeCapHit); got != 0 {
		t.Errorf("EdgeCapHit after untruncated build = %v, want 0", got)
	}
}

func TestRecordPass(t *testing.T) {
	r := NewRegistry()

	r.RecordPass("sequential", 40)
	r.RecordPass("sequential", 3)
	r.RecordPass("sequential", 0)

	counter, err := r.PropagationPassesTotal.GetMetricWithLabelValues("sequential")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 3 {
		t.Errorf("Passes = %v, want 3", got)
	}

	histogram, err := r.PassReassignments.GetMetricWithLabelValues("sequential")
	if err != nil {
		t.Fatalf("Failed to get histogram: %v", err)
	}

	var metric dto.Metric
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("Sample count = %v, want 3", metric.Histogram.GetSampleCount())
	}
	if metric.Histogram.GetSampleSum() != 43 {
		t.Errorf("Sample sum = %v, want 43", metric.Histogram.GetSampleSum())
	}
}

func TestUpdateDetection(t *testing.T) {
	r := NewRegistry()

	r.UpdateDetection(12, true, 0.42)

	if got := gaugeValue(t, r.CommunitiesFound); got != 12 {
		t.Errorf("CommunitiesFound = %v, want 12", got)
	}
	if got := gaugeValue(t, r.PropagationConverged); got != 1 {
		t.Errorf("PropagationConverged = %v, want 1", got)
	}
	if got := gaugeValue(t, r.Modularity); got != 0.42 {
		t.Errorf("Modularity = %v, want 0.42", got)
	}
}

func TestRecordNodeQuery(t *testing.T) {
	r := NewRegistry()

	r.RecordNodeQuery(true)
	r.RecordNodeQuery(false)
	r.RecordNodeQuery(false)

	found, _ := r.NodeQueriesTotal.GetMetricWithLabelValues("found")
	missing, _ := r.NodeQueriesTotal.GetMetricWithLabelValues("not_found")

	if got := counterValue(t, found); got != 1 {
		t.Errorf("found = %v, want 1", got)
	}
	if got := counterValue(t, missing); got != 2 {
		t.Errorf("not_found = %v, want 2", got)
	}
}

func TestRecordRun(t *testing.T) {
	r := NewRegistry()

	r.RecordRun(nil)
	if got := gaugeValue(t, r.LastRunSuccess); got != 1 {
		t.Errorf("LastRunSuccess = %v, want 1", got)
	}

	r.RecordRun(errors.New("boom"))
	if got := gaugeValue(t, r.LastRunSuccess); got != 0 {
		t.Errorf("LastRunSuccess = %v, want 0", got)
	}

	failed, _ := r.RunsTotal.GetMetricWithLabelValues("error")
	if got := counterValue(t, failed); got != 1 {
		t.Errorf("error runs = %v, want 1", got)
	}
}

func TestStageHistogram(t *testing.T) {
	r := NewRegistry()

	r.RecordStage("build", 100*time.Millisecond)
	r.RecordStage("build", 200*time.Millisecond)
	r.RecordStage("build", 150*time.Millisecond)

	histogram, err := r.StageDuration.GetMetricWithLabelValues("build")
	if err != nil {
		t.Fatalf("Failed to get histogram: %v", err)
	}

	var metric dto.Metric
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("Sample count = %v, want 3", metric.Histogram.GetSampleCount())
	}

	// Sum should be approximately 0.45 (0.1 + 0.2 + 0.15)
	sum := metric.Histogram.GetSampleSum()
	if sum < 0.44 || sum > 0.46 {
		t.Errorf("Sample sum = %v, want ~0.45", sum)
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	promRegistry := r.GetPrometheusRegistry()

	if promRegistry == nil {
		t.Fatal("GetPrometheusRegistry() returned nil")
	}

	metrics, err := promRegistry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	if len(metrics) == 0 {
		t.Error("No metrics registered")
	}

	expectedMetrics := []string{
		"communities_graph_nodes",
		"communities_found",
		"communities_modularity",
	}

	metricNames := make(map[string]bool)
	for _, m := range metrics {
		metricNames[m.GetName()] = true
	}

	for _, expected := range expectedMetrics {
		if !metricNames[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				r.RecordPass("synchronous", 1)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	counter, err := r.PropagationPassesTotal.GetMetricWithLabelValues("synchronous")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	// Should have 1000 passes (10 goroutines * 100 passes)
	if got := counterValue(t, counter); got != 1000 {
		t.Errorf("Counter = %v, want 1000", got)
	}
}

func TestMetricNaming(t *testing.T) {
	r := NewRegistry()
	promRegistry := r.GetPrometheusRegistry()

	metrics, err := promRegistry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	for _, m := range metrics {
		name := m.GetName()
		if !strings.HasPrefix(name, "communities_") {
			t.Errorf("Metric %s does not have communities_ prefix", name)
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.UpdateDetection(5, false, 0.25)
	r.RecordStage("analyze", 10*time.Millisecond)

	path := filepath.Join(t.TempDir(), "communities.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"communities_found 5",
		"communities_modularity 0.25",
		`communities_stage_duration_seconds_count{stage="analyze"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	r := NewRegistry()
	path := filepath.Join(t.TempDir(), "missing", "dir", "x.prom")
	if err := r.WriteTextfile(path); err == nil {
		t.Error("Expected error for unwritable path")
	}
}

func BenchmarkRecordPass(b *testing.B) {
	r := NewRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.RecordPass("sequential", i%100)
	}
}

func BenchmarkSetGauge(b *testing.B) {
	r := NewRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.GraphNodes.Set(float64(i))
	}
}
