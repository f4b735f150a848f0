package analytics

// Brokers finds, for each of the first n communities of densities, the
// members that have at least one incoming or outgoing edge crossing into
// another community. Each broker appears once, in node order.
func (a *Analyzer) Brokers(densities []Density, n int) []BrokerSet {
	crossing := make([]bool, a.g.NodeCount())
	for _, e := range a.g.Edges() {
		if a.slotOf(e.From) != a.slotOf(e.To) {
			crossing[e.From] = true
			crossing[e.To] = true
		}
	}

	top := a.top(densities, n)
	out := make([]BrokerSet, 0, len(top))
	for _, r := range top {
		id := a.layout.IDs[r.slot]
		nodes := make([]int, 0)
		for _, node := range a.members[r.slot] {
			if crossing[node] {
				nodes = append(nodes, node)
			}
		}
		out = append(out, BrokerSet{
			Community: id,
			Name:      a.name(id),
			Nodes:     nodes,
			Labels:    a.labels(nodes),
		})
	}
	return out
}
