package community

import "slices"

// Layout assigns every community of a partition a dense slot so
// per-community tallies can live in slices indexed by slot instead of maps
// keyed by community id.
type Layout struct {
	IDs      []int // slot -> community id, ascending
	NodeSlot []int // node -> slot
	Sizes    []int // slot -> member count
	slots    map[int]int
}

// NewLayout indexes p.
func NewLayout(p Partition) *Layout {
	ids := slices.Clone([]int(p))
	slices.Sort(ids)
	ids = slices.Compact(ids)

	l := &Layout{
		IDs:      ids,
		NodeSlot: make([]int, len(p)),
		Sizes:    make([]int, len(ids)),
		slots:    make(map[int]int, len(ids)),
	}
	for slot, id := range ids {
		l.slots[id] = slot
	}
	for node, id := range p {
		slot := l.slots[id]
		l.NodeSlot[node] = slot
		l.Sizes[slot]++
	}
	return l
}

// Len is the number of communities.
func (l *Layout) Len() int {
	return len(l.IDs)
}

// Slot resolves a community id to its slot.
func (l *Layout) Slot(id int) (int, bool) {
	slot, ok := l.slots[id]
	return slot, ok
}
