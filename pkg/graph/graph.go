package graph

import "fmt"

// New returns an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode returns the index for label, creating the node on first use.
func (g *Graph) AddNode(label string) int {
	if idx, ok := g.index[label]; ok {
		return idx
	}
	idx := len(g.labels)
	g.labels = append(g.labels, label)
	g.index[label] = idx
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return idx
}

// AddEdge appends a directed edge and returns its index.
func (g *Graph) AddEdge(from, to, weight int) (int, error) {
	if !g.HasNode(from) {
		return 0, fmt.Errorf("%w: %d", ErrNodeOutOfRange, from)
	}
	if !g.HasNode(to) {
		return 0, fmt.Errorf("%w: %d", ErrNodeOutOfRange, to)
	}

	idx := len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: weight})
	g.out[from] = append(g.out[from], idx)
	g.in[to] = append(g.in[to], idx)
	return idx, nil
}

func (g *Graph) NodeCount() int { return len(g.labels) }

func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether idx is a valid node index.
func (g *Graph) HasNode(idx int) bool {
	return idx >= 0 && idx < len(g.labels)
}

// Label returns the label of node idx. idx must be valid.
func (g *Graph) Label(idx int) string {
	return g.labels[idx]
}

// Lookup resolves a label to its node index.
func (g *Graph) Lookup(label string) (int, bool) {
	idx, ok := g.index[label]
	return idx, ok
}

// Index returns a copy of the label -> node index table.
func (g *Graph) Index() map[string]int {
	out := make(map[string]int, len(g.index))
	for label, idx := range g.index {
		out[label] = idx
	}
	return out
}

// Edge returns edge i.
func (g *Graph) Edge(i int) Edge {
	return g.edges[i]
}

// Edges returns all edges in insertion order. The slice is shared and must
// not be modified.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// OutEdges returns the indices of edges leaving node, in insertion order.
func (g *Graph) OutEdges(node int) []int {
	return g.out[node]
}

// InEdges returns the indices of edges entering node, in insertion order.
func (g *Graph) InEdges(node int) []int {
	return g.in[node]
}

// Degree is in-degree plus out-degree.
func (g *Graph) Degree(node int) int {
	return len(g.out[node]) + len(g.in[node])
}

// Stats returns the statistics recorded by Build.
func (g *Graph) Stats() BuildStats {
	return g.stats
}
