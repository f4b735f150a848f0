package analytics

import (
	"cmp"
	"slices"
)

// InterCommunityLinks tallies edges whose endpoints sit in different
// communities, keyed by the unordered community pair, and returns the
// busiest limit pairs (all of them when limit <= 0), ties by ascending pair.
func (a *Analyzer) InterCommunityLinks(limit int) []Link {
	counts := make(map[Pair]int)
	for _, e := range a.g.Edges() {
		from, to := a.slotOf(e.From), a.slotOf(e.To)
		if from != to {
			counts[NewPair(a.layout.IDs[from], a.layout.IDs[to])]++
		}
	}

	links := make([]Link, 0, len(counts))
	for pair, n := range counts {
		links = append(links, Link{
			Pair:  pair,
			NameA: a.name(pair.A),
			NameB: a.name(pair.B),
			Edges: n,
		})
	}

	slices.SortFunc(links, func(x, y Link) int {
		if c := cmp.Compare(y.Edges, x.Edges); c != 0 {
			return c
		}
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})

	if limit > 0 && len(links) > limit {
		links = links[:limit]
	}
	return links
}
