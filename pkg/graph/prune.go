package graph

// pruneIsolated drops nodes with neither incoming nor outgoing edges,
// compacting node indices in their original order and rewriting edge
// endpoints. Returns the number of nodes removed.
func (g *Graph) pruneIsolated() int {
	remap := make([]int, len(g.labels))
	kept := 0
	for node := range g.labels {
		if g.Degree(node) == 0 {
			remap[node] = -1
			continue
		}
		remap[node] = kept
		kept++
	}

	removed := len(g.labels) - kept
	if removed == 0 {
		return 0
	}

	labels := make([]string, 0, kept)
	out := make([][]int, 0, kept)
	in := make([][]int, 0, kept)
	index := make(map[string]int, kept)
	for node, label := range g.labels {
		if remap[node] < 0 {
			continue
		}
		labels = append(labels, label)
		out = append(out, g.out[node])
		in = append(in, g.in[node])
		index[label] = remap[node]
	}

	for i := range g.edges {
		g.edges[i].From = remap[g.edges[i].From]
		g.edges[i].To = remap[g.edges[i].To]
	}

	g.labels = labels
	g.out = out
	g.in = in
	g.index = index
	return removed
}
