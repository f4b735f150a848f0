package community

import (
	"cmp"
	"slices"
)

// Sizes lists communities with at least minSize members, largest first,
// ties by ascending community id.
func Sizes(p Partition, minSize int) []Size {
	layout := NewLayout(p)
	out := make([]Size, 0, layout.Len())
	for slot, id := range layout.IDs {
		if layout.Sizes[slot] >= minSize {
			out = append(out, Size{Community: id, Nodes: layout.Sizes[slot]})
		}
	}

	slices.SortFunc(out, func(a, b Size) int {
		if c := cmp.Compare(b.Nodes, a.Nodes); c != 0 {
			return c
		}
		return cmp.Compare(a.Community, b.Community)
	})
	return out
}

// Count returns the number of distinct communities in p.
func Count(p Partition) int {
	return NewLayout(p).Len()
}
