package analytics

import (
	"fmt"

	"github.com/dd0wney/cluso-communities/pkg/community"
	"github.com/dd0wney/cluso-communities/pkg/graph"
)

// Analyzer runs queries over one graph and partition.
type Analyzer struct {
	g       *graph.Graph
	p       community.Partition
	names   community.NameMap
	layout  *community.Layout
	members [][]int // slot -> member nodes, ascending
}

// New validates that p assigns every node of g and prepares per-community
// indexes. names may be nil; missing names render as community.UnknownName.
func New(g *graph.Graph, p community.Partition, names community.NameMap) (*Analyzer, error) {
	if len(p) != g.NodeCount() {
		return nil, fmt.Errorf("%w: %d assignments for %d nodes", ErrPartitionMismatch, len(p), g.NodeCount())
	}

	layout := community.NewLayout(p)
	members := make([][]int, layout.Len())
	for slot, size := range layout.Sizes {
		members[slot] = make([]int, 0, size)
	}
	for node, slot := range layout.NodeSlot {
		members[slot] = append(members[slot], node)
	}

	return &Analyzer{
		g:       g,
		p:       p,
		names:   names,
		layout:  layout,
		members: members,
	}, nil
}

// slotOf returns the layout slot of node. Every node was checked in New,
// so a miss means the graph changed underneath the analyzer.
func (a *Analyzer) slotOf(node int) int {
	if node < 0 || node >= len(a.layout.NodeSlot) {
		panic(fmt.Sprintf("analytics: node %d has no community assignment", node))
	}
	return a.layout.NodeSlot[node]
}

func (a *Analyzer) name(id int) string {
	return a.names.Name(id)
}

type ranked struct {
	slot    int
	density Density
}

// top resolves the first n entries of densities to layout slots. Entries
// naming communities absent from the partition are skipped.
func (a *Analyzer) top(densities []Density, n int) []ranked {
	if n > len(densities) || n < 0 {
		n = len(densities)
	}
	out := make([]ranked, 0, n)
	for _, d := range densities[:n] {
		if slot, ok := a.layout.Slot(d.Community); ok {
			out = append(out, ranked{slot: slot, density: d})
		}
	}
	return out
}

func (a *Analyzer) labels(nodes []int) []string {
	out := make([]string, len(nodes))
	for i, node := range nodes {
		out[i] = a.g.Label(node)
	}
	return out
}
