// Package analytics answers descriptive questions about a partitioned
// interaction graph: how dense each community is, which communities talk
// to each other, who the brokers are and how positive the traffic is.
// Every query is read-only over the graph and partition it was built with.
package analytics

import "errors"

var (
	ErrNodeNotFound      = errors.New("node not found")
	ErrPartitionMismatch = errors.New("partition does not cover the graph")
)

// Density is the intra-community edge count per member of one community.
type Density struct {
	Community int     `json:"community" yaml:"community"`
	Name      string  `json:"name" yaml:"name"`
	Edges     int     `json:"edges" yaml:"edges"`
	Nodes     int     `json:"nodes" yaml:"nodes"`
	Value     float64 `json:"density" yaml:"density"`
}

// Pair is an unordered pair of distinct communities, smaller id first.
type Pair struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

// NewPair normalises (x, y) so that A < B.
func NewPair(x, y int) Pair {
	if x > y {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

// Link counts edges running between two communities in either direction.
type Link struct {
	Pair  `yaml:",inline"`
	NameA string `json:"name_a" yaml:"name_a"`
	NameB string `json:"name_b" yaml:"name_b"`
	Edges int    `json:"edges" yaml:"edges"`
}

// Members lists the nodes of one community.
type Members struct {
	Community int      `json:"community" yaml:"community"`
	Name      string   `json:"name" yaml:"name"`
	Density   float64  `json:"density" yaml:"density"`
	Labels    []string `json:"labels" yaml:"labels"`
}

// BrokerSet lists the members of a community with at least one edge to or
// from another community.
type BrokerSet struct {
	Community int      `json:"community" yaml:"community"`
	Name      string   `json:"name" yaml:"name"`
	Nodes     []int    `json:"nodes" yaml:"nodes"`
	Labels    []string `json:"labels" yaml:"labels"`
}

// Count is the number of brokers.
func (b BrokerSet) Count() int {
	return len(b.Nodes)
}

// Sentiment tallies edges by polarity. Zero-weight edges count in neither.
type Sentiment struct {
	Positive int `json:"positive" yaml:"positive"`
	Negative int `json:"negative" yaml:"negative"`
}

func (s *Sentiment) add(weight int) {
	switch {
	case weight > 0:
		s.Positive++
	case weight < 0:
		s.Negative++
	}
}

// CommunitySentiment is the polarity of edges inside one community.
type CommunitySentiment struct {
	Community int    `json:"community" yaml:"community"`
	Name      string `json:"name" yaml:"name"`
	Sentiment `yaml:",inline"`
}

// NodeSentiment is the polarity of one node's outgoing edges into other
// communities.
type NodeSentiment struct {
	Node      int    `json:"node" yaml:"node"`
	Label     string `json:"label" yaml:"label"`
	Community int    `json:"community" yaml:"community"`
	Sentiment `yaml:",inline"`
}
