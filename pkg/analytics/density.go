package analytics

import (
	"cmp"
	"slices"
)

// Densities ranks every community by intra-community edges per member,
// densest first, ties by ascending community id. Communities without
// internal edges are included with density 0.
func (a *Analyzer) Densities() []Density {
	intra := make([]int, a.layout.Len())
	for _, e := range a.g.Edges() {
		from := a.slotOf(e.From)
		if from == a.slotOf(e.To) {
			intra[from]++
		}
	}

	out := make([]Density, a.layout.Len())
	for slot, id := range a.layout.IDs {
		nodes := a.layout.Sizes[slot]
		out[slot] = Density{
			Community: id,
			Name:      a.name(id),
			Edges:     intra[slot],
			Nodes:     nodes,
			Value:     float64(intra[slot]) / float64(nodes),
		}
	}

	slices.SortFunc(out, func(x, y Density) int {
		if c := cmp.Compare(y.Value, x.Value); c != 0 {
			return c
		}
		return cmp.Compare(x.Community, y.Community)
	})
	return out
}

// DensestCommunities lists the members of the first n communities of
// densities, in node order.
func (a *Analyzer) DensestCommunities(densities []Density, n int) []Members {
	top := a.top(densities, n)
	out := make([]Members, 0, len(top))
	for _, r := range top {
		id := a.layout.IDs[r.slot]
		out = append(out, Members{
			Community: id,
			Name:      a.name(id),
			Density:   r.density.Value,
			Labels:    a.labels(a.members[r.slot]),
		})
	}
	return out
}
