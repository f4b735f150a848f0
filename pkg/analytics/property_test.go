package analytics

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-communities/pkg/community"
	"github.com/dd0wney/cluso-communities/pkg/graph"
)

func analyzerFor(t *testing.T, endpoints []int) (*graph.Graph, *Analyzer) {
	g := graph.New()
	const nodes = 10
	for i := 0; i < nodes; i++ {
		g.AddNode(fmt.Sprintf("n%d", i))
	}
	for i := 0; i+1 < len(endpoints); i += 2 {
		g.AddEdge(endpoints[i]%nodes, endpoints[i+1]%nodes, i%3-1)
	}
	res, err := community.LabelPropagation(context.Background(), g, community.PropagationOptions{MaxIterations: 20})
	if err != nil {
		t.Fatalf("LabelPropagation failed: %v", err)
	}
	a, err := New(g, res.Partition, community.Names(g, res.Partition))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g, a
}

func TestAnalyticsInvariants(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 150
	properties := gopter.NewProperties(params)

	endpoints := gen.SliceOf(gen.IntRange(0, 500))

	properties.Property("densities cover every community and are non-negative", prop.ForAll(
		func(eps []int) bool {
			g, a := analyzerFor(t, eps)
			densities := a.Densities()
			members, intra := 0, 0
			for i, d := range densities {
				if d.Value < 0 || d.Nodes == 0 {
					return false
				}
				if i > 0 && densities[i-1].Value < d.Value {
					return false
				}
				members += d.Nodes
				intra += d.Edges
			}
			crossing := 0
			for _, l := range a.InterCommunityLinks(0) {
				crossing += l.Edges
			}
			return members == g.NodeCount() && intra+crossing == g.EdgeCount()
		},
		endpoints,
	))

	properties.Property("link pairs are normalised and distinct", prop.ForAll(
		func(eps []int) bool {
			_, a := analyzerFor(t, eps)
			seen := make(map[Pair]bool)
			for _, l := range a.InterCommunityLinks(0) {
				if l.A >= l.B || seen[l.Pair] || l.Edges <= 0 {
					return false
				}
				seen[l.Pair] = true
			}
			return true
		},
		endpoints,
	))

	properties.Property("brokers are members of their community", prop.ForAll(
		func(eps []int) bool {
			_, a := analyzerFor(t, eps)
			densities := a.Densities()
			for _, b := range a.Brokers(densities, len(densities)) {
				for _, node := range b.Nodes {
					if a.p[node] != b.Community {
						return false
					}
				}
			}
			return true
		},
		endpoints,
	))

	properties.Property("node sentiment never exceeds out-degree", prop.ForAll(
		func(eps []int) bool {
			g, a := analyzerFor(t, eps)
			for node := 0; node < g.NodeCount(); node++ {
				s, err := a.NodeSentiment(node)
				if err != nil || s.Positive+s.Negative > len(g.OutEdges(node)) {
					return false
				}
			}
			return true
		},
		endpoints,
	))

	properties.TestingRun(t)
}
