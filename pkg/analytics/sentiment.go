package analytics

import "fmt"

// IntraSentiment counts positive and negative edges with both endpoints
// inside each of the first n communities of densities.
func (a *Analyzer) IntraSentiment(densities []Density, n int) []CommunitySentiment {
	tally := make([]Sentiment, a.layout.Len())
	for _, e := range a.g.Edges() {
		from := a.slotOf(e.From)
		if from == a.slotOf(e.To) {
			tally[from].add(e.Weight)
		}
	}

	top := a.top(densities, n)
	out := make([]CommunitySentiment, 0, len(top))
	for _, r := range top {
		id := a.layout.IDs[r.slot]
		out = append(out, CommunitySentiment{
			Community: id,
			Name:      a.name(id),
			Sentiment: tally[r.slot],
		})
	}
	return out
}

// NodeSentiment counts positive and negative outgoing edges of node that
// land in a community other than its own. Incoming edges are ignored.
func (a *Analyzer) NodeSentiment(node int) (NodeSentiment, error) {
	if !a.g.HasNode(node) {
		return NodeSentiment{}, fmt.Errorf("%w: index %d (graph has %d nodes)", ErrNodeNotFound, node, a.g.NodeCount())
	}

	own := a.slotOf(node)
	result := NodeSentiment{
		Node:      node,
		Label:     a.g.Label(node),
		Community: a.p[node],
	}
	for _, idx := range a.g.OutEdges(node) {
		e := a.g.Edge(idx)
		if a.slotOf(e.To) != own {
			result.add(e.Weight)
		}
	}
	return result, nil
}

// NodeSentimentByLabel is NodeSentiment for the node carrying label.
func (a *Analyzer) NodeSentimentByLabel(label string) (NodeSentiment, error) {
	node, ok := a.g.Lookup(label)
	if !ok {
		return NodeSentiment{}, fmt.Errorf("%w: label %q", ErrNodeNotFound, label)
	}
	return a.NodeSentiment(node)
}
