package graph

import (
	"context"
	"errors"
	"io"

	"github.com/dd0wney/cluso-communities/pkg/ingest"
)

const cancelCheckInterval = 1024

// Build consumes records in order and assembles the graph. It stops once
// opts.MaxEdges edges are in, ignoring the rest of the input. Any record
// error aborts the build and no graph is returned. The returned map resolves
// labels to node indices of the returned graph.
func Build(ctx context.Context, records ingest.RecordReader, opts BuildOptions) (*Graph, map[string]int, error) {
	g := New()
	stats := BuildStats{}

	for {
		if opts.MaxEdges > 0 && len(g.edges) >= opts.MaxEdges {
			stats.Truncated = true
			break
		}
		if stats.Records%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, &BuildError{Op: "cancel", Cause: err}
			}
		}

		rec, err := records.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		stats.Records++
		if err != nil {
			return nil, nil, &BuildError{Op: "read", Record: stats.Records, Cause: err}
		}

		from := g.AddNode(rec.Source)
		to := g.AddNode(rec.Target)
		if _, err := g.AddEdge(from, to, rec.Weight); err != nil {
			return nil, nil, &BuildError{Op: "insert", Record: stats.Records, Cause: err}
		}
	}

	if opts.PruneIsolated {
		stats.Pruned = g.pruneIsolated()
	}

	stats.Nodes = g.NodeCount()
	stats.Edges = g.EdgeCount()
	g.stats = stats

	return g, g.Index(), nil
}
