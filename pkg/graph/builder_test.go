package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-communities/pkg/ingest"
)

func records(pairs ...string) []ingest.Record {
	out := make([]ingest.Record, 0, len(pairs))
	for _, p := range pairs {
		var src, dst string
		var w int
		parts := strings.Fields(p)
		src, dst = parts[0], parts[1]
		fmt.Sscanf(parts[2], "%d", &w)
		out = append(out, ingest.Record{Source: src, Target: dst, Weight: w})
	}
	return out
}

func TestBuild_DeduplicatesLabels(t *testing.T) {
	g, index, err := Build(context.Background(),
		ingest.NewSliceReader(records("a b 1", "b c -1", "a c 0", "a b 1")),
		BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if g.NodeCount() != 3 {
		t.Errorf("Expected 3 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 4 {
		t.Errorf("Expected 4 edges (parallel edges kept), got %d", g.EdgeCount())
	}

	for label, want := range map[string]int{"a": 0, "b": 1, "c": 2} {
		if index[label] != want {
			t.Errorf("index[%q] = %d, want %d", label, index[label], want)
		}
		if g.Label(want) != label {
			t.Errorf("Label(%d) = %q, want %q", want, g.Label(want), label)
		}
	}

	if got := g.Edge(1); got != (Edge{From: 1, To: 2, Weight: -1}) {
		t.Errorf("Edge(1) = %+v", got)
	}
	if len(g.OutEdges(0)) != 3 || len(g.InEdges(2)) != 2 {
		t.Errorf("adjacency mismatch: out(a)=%v in(c)=%v", g.OutEdges(0), g.InEdges(2))
	}
}

func TestBuild_Truncates(t *testing.T) {
	in := make([]ingest.Record, 100)
	for i := range in {
		in[i] = ingest.Record{Source: fmt.Sprintf("s%d", i), Target: fmt.Sprintf("t%d", i), Weight: 1}
	}

	g, _, err := Build(context.Background(), ingest.NewSliceReader(in), BuildOptions{MaxEdges: 10, PruneIsolated: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if g.EdgeCount() != 10 {
		t.Errorf("Expected 10 edges, got %d", g.EdgeCount())
	}
	if g.NodeCount() != 20 {
		t.Errorf("Expected 20 nodes, got %d", g.NodeCount())
	}
	if _, ok := g.Lookup("s10"); ok {
		t.Error("node from record 11 should not exist")
	}

	stats := g.Stats()
	if !stats.Truncated || stats.Records != 10 {
		t.Errorf("stats = %+v, want Truncated with 10 records", stats)
	}
}

func TestBuild_UnboundedReadsAll(t *testing.T) {
	g, _, err := Build(context.Background(), ingest.NewSliceReader(records("a b 1", "b a 1")), BuildOptions{MaxEdges: 0})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.EdgeCount() != 2 || g.Stats().Truncated {
		t.Errorf("edges=%d stats=%+v", g.EdgeCount(), g.Stats())
	}
}

type failingReader struct {
	ok  []ingest.Record
	err error
}

func (f *failingReader) Read() (ingest.Record, error) {
	if len(f.ok) == 0 {
		return ingest.Record{}, f.err
	}
	rec := f.ok[0]
	f.ok = f.ok[1:]
	return rec, nil
}

func TestBuild_RecordErrorAborts(t *testing.T) {
	cause := &ingest.RecordError{Line: 3, Column: 4, Cause: ingest.ErrInvalidWeight}
	reader := &failingReader{ok: records("a b 1"), err: cause}

	g, index, err := Build(context.Background(), reader, BuildOptions{})
	if err == nil {
		t.Fatal("Expected error")
	}
	if g != nil || index != nil {
		t.Error("Expected no partial result")
	}
	if !errors.Is(err, ingest.ErrInvalidWeight) {
		t.Errorf("Expected ErrInvalidWeight in chain, got %v", err)
	}

	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("Expected *BuildError, got %T", err)
	}
	if buildErr.Record != 2 || buildErr.Op != "read" {
		t.Errorf("BuildError = %+v, want read at record 2", buildErr)
	}
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Build(ctx, ingest.NewSliceReader(records("a b 1")), BuildOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	g, index, err := Build(context.Background(), ingest.NewSliceReader(nil), BuildOptions{PruneIsolated: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 || len(index) != 0 {
		t.Errorf("Expected empty graph, got %d nodes %d edges", g.NodeCount(), g.EdgeCount())
	}
}

func TestPruneIsolated(t *testing.T) {
	g := New()
	a := g.AddNode("a")
	g.AddNode("lonely")
	b := g.AddNode("b")
	g.AddNode("also-lonely")
	c := g.AddNode("c")
	mustEdge(t, g, a, b, 1)
	mustEdge(t, g, c, c, -1)

	removed := g.pruneIsolated()
	if removed != 2 {
		t.Fatalf("Expected 2 removed, got %d", removed)
	}
	if g.NodeCount() != 3 {
		t.Fatalf("Expected 3 nodes, got %d", g.NodeCount())
	}

	for i, want := range []string{"a", "b", "c"} {
		if g.Label(i) != want {
			t.Errorf("Label(%d) = %q, want %q", i, g.Label(i), want)
		}
		if idx, _ := g.Lookup(want); idx != i {
			t.Errorf("Lookup(%q) = %d, want %d", want, idx, i)
		}
	}
	if _, ok := g.Lookup("lonely"); ok {
		t.Error("pruned label still resolvable")
	}
	if g.Edge(1) != (Edge{From: 2, To: 2, Weight: -1}) {
		t.Errorf("self loop not remapped: %+v", g.Edge(1))
	}
	if len(g.OutEdges(2)) != 1 || len(g.InEdges(1)) != 1 {
		t.Error("adjacency lost during pruning")
	}
}

func TestAddEdge_OutOfRange(t *testing.T) {
	g := New()
	a := g.AddNode("a")
	if _, err := g.AddEdge(a, 5, 1); !errors.Is(err, ErrNodeOutOfRange) {
		t.Errorf("Expected ErrNodeOutOfRange, got %v", err)
	}
}

func mustEdge(t *testing.T, g *Graph, from, to, weight int) {
	t.Helper()
	if _, err := g.AddEdge(from, to, weight); err != nil {
		t.Fatalf("AddEdge(%d, %d) failed: %v", from, to, err)
	}
}
