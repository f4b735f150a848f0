package community

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/dd0wney/cluso-communities/pkg/graph"
	"github.com/dd0wney/cluso-communities/pkg/parallel"
)

// LabelPropagation partitions g by repeated majority relabeling. In every
// pass each node tallies the labels of its outgoing neighbours, one vote
// per edge, and adopts the most frequent one; ties go to the lowest label.
// Nodes without outgoing edges keep their label. It stops after a pass
// without reassignments or after opts.MaxIterations passes.
func LabelPropagation(ctx context.Context, g *graph.Graph, opts PropagationOptions) (*Result, error) {
	n := g.NodeCount()

	var labels Partition
	if opts.Initial != nil {
		if len(opts.Initial) != n {
			return nil, fmt.Errorf("%w: %d labels for %d nodes", ErrInitialMismatch, len(opts.Initial), n)
		}
		labels = opts.Initial.Clone()
	} else {
		labels = NewPartition(n)
	}

	result := &Result{Partition: labels}

	var pool *parallel.WorkerPool
	if opts.Mode == ModeSynchronous {
		var err error
		pool, err = parallel.NewWorkerPool(opts.Workers)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
	}

	scratch := make([]int, 0, 16)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var reassigned int
		if pool != nil {
			var err error
			if reassigned, err = synchronousPass(g, result, pool); err != nil {
				return nil, err
			}
		} else {
			reassigned = sequentialPass(g, labels, &scratch)
		}

		result.Iterations++
		result.Reassignments = append(result.Reassignments, reassigned)
		if opts.OnPass != nil {
			opts.OnPass(result.Iterations, reassigned)
		}

		if reassigned == 0 {
			result.Converged = true
			break
		}
	}

	return result, nil
}

func sequentialPass(g *graph.Graph, labels Partition, scratch *[]int) int {
	reassigned := 0
	for node := range labels {
		best, ok := majorityLabel(g, labels, node, scratch)
		if ok && best != labels[node] {
			labels[node] = best
			reassigned++
		}
	}
	return reassigned
}

// synchronousPass leaves result untouched when the pool rejects a chunk.
func synchronousPass(g *graph.Graph, result *Result, pool *parallel.WorkerPool) (int, error) {
	prev := result.Partition
	next := prev.Clone()

	var reassigned int64
	chunk := max(64, (len(prev)+pool.Workers()-1)/pool.Workers())
	ok := pool.ForEachRange(len(prev), chunk, func(lo, hi int) {
		scratch := make([]int, 0, 16)
		changed := 0
		for node := lo; node < hi; node++ {
			best, ok := majorityLabel(g, prev, node, &scratch)
			if ok && best != prev[node] {
				next[node] = best
				changed++
			}
		}
		atomic.AddInt64(&reassigned, int64(changed))
	})
	if !ok {
		return 0, fmt.Errorf("synchronous pass %d: %w", result.Iterations+1, parallel.ErrPoolClosed)
	}

	result.Partition = next
	return int(reassigned), nil
}

// majorityLabel returns the most frequent label among node's outgoing
// neighbours, lowest label on ties. ok is false for nodes with no
// outgoing edges.
func majorityLabel(g *graph.Graph, labels Partition, node int, scratch *[]int) (int, bool) {
	out := g.OutEdges(node)
	if len(out) == 0 {
		return 0, false
	}

	votes := (*scratch)[:0]
	for _, e := range out {
		votes = append(votes, labels[g.Edge(e).To])
	}
	slices.Sort(votes)
	*scratch = votes

	best, bestCount := votes[0], 0
	for i := 0; i < len(votes); {
		j := i
		for j < len(votes) && votes[j] == votes[i] {
			j++
		}
		if j-i > bestCount {
			best, bestCount = votes[i], j-i
		}
		i = j
	}
	return best, true
}
