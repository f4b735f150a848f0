package community

import "github.com/dd0wney/cluso-communities/pkg/graph"

// Modularity is the directed modularity of p over g:
//
//	Q = sum over communities c of  e_c/m - (out_c * in_c) / m^2
//
// where m is the edge count, e_c the edges inside c and out_c / in_c the
// summed out- and in-degrees of its members. An edgeless graph scores 0.
func Modularity(g *graph.Graph, p Partition) float64 {
	m := float64(g.EdgeCount())
	if m == 0 {
		return 0
	}

	layout := NewLayout(p)
	intra := make([]float64, layout.Len())
	outDeg := make([]float64, layout.Len())
	inDeg := make([]float64, layout.Len())

	for _, e := range g.Edges() {
		from, to := layout.NodeSlot[e.From], layout.NodeSlot[e.To]
		outDeg[from]++
		inDeg[to]++
		if from == to {
			intra[from]++
		}
	}

	q := 0.0
	for slot := range intra {
		q += intra[slot]/m - (outDeg[slot]*inDeg[slot])/(m*m)
	}
	return q
}
