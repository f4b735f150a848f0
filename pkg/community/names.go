package community

import (
	"unicode/utf8"

	"github.com/dd0wney/cluso-communities/pkg/graph"
)

// UnknownName stands in for a community that has no entry in a NameMap.
const UnknownName = "Unknown"

// NameMap maps a community id to its representative label.
type NameMap map[int]string

// Lookup returns the name of community id.
func (m NameMap) Lookup(id int) (string, bool) {
	name, ok := m[id]
	return name, ok
}

// Name returns the name of community id, or UnknownName.
func (m NameMap) Name(id int) string {
	if name, ok := m[id]; ok {
		return name
	}
	return UnknownName
}

// Names names every community after its longest member label, counted in
// characters. Nodes are visited from the highest index down and the first
// label seen keeps the name on ties, so among equally long labels the most
// recently inserted node wins.
func Names(g *graph.Graph, p Partition) NameMap {
	layout := NewLayout(p)
	best := make([]int, layout.Len())
	bestLen := make([]int, layout.Len())
	for i := range best {
		best[i] = -1
	}

	for node := len(p) - 1; node >= 0; node-- {
		slot := layout.NodeSlot[node]
		n := utf8.RuneCountInString(g.Label(node))
		if best[slot] < 0 || n > bestLen[slot] {
			best[slot] = node
			bestLen[slot] = n
		}
	}

	names := make(NameMap, layout.Len())
	for slot, id := range layout.IDs {
		names[id] = g.Label(best[slot])
	}
	return names
}
