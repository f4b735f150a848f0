// Package graph holds the directed interaction multigraph and the builder
// that assembles it from ingested records.
package graph

// Edge is a directed interaction between two dense node indices. Weight is
// the sentiment polarity of the interaction.
type Edge struct {
	From   int
	To     int
	Weight int
}

// BuildStats summarises a Build call.
type BuildStats struct {
	Records   int  `json:"records" yaml:"records"`     // records consumed from the reader
	Edges     int  `json:"edges" yaml:"edges"`         // edges in the final graph
	Nodes     int  `json:"nodes" yaml:"nodes"`         // nodes in the final graph
	Pruned    int  `json:"pruned" yaml:"pruned"`       // nodes dropped by isolated-node pruning
	Truncated bool `json:"truncated" yaml:"truncated"` // the edge bound stopped ingestion before EOF
}

// BuildOptions controls Build.
type BuildOptions struct {
	// MaxEdges bounds the number of edges read; 0 means unbounded.
	MaxEdges int
	// PruneIsolated removes nodes with no incident edges once all edges
	// are in.
	PruneIsolated bool
}

// Graph is a directed multigraph stored as dense vectors. Parallel edges
// are kept distinct. Once returned by Build it must be treated as
// read-only.
type Graph struct {
	labels []string
	index  map[string]int
	edges  []Edge
	out    [][]int // node -> outgoing edge indices, insertion order
	in     [][]int // node -> incoming edge indices, insertion order
	stats  BuildStats
}
