// Package community partitions an interaction graph with label propagation
// and derives per-community views (names, sizes, modularity) from the
// resulting partition.
package community

import "errors"

var (
	ErrInitialMismatch = errors.New("initial partition does not match graph")
)

// Partition maps a dense node index to its community id. Community ids are
// arbitrary integer tags; after label propagation they are node indices of
// some member, but nothing downstream relies on that.
type Partition []int

// NewPartition returns the identity partition over n nodes.
func NewPartition(n int) Partition {
	p := make(Partition, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Community returns the community of node, false when node is not covered.
func (p Partition) Community(node int) (int, bool) {
	if node < 0 || node >= len(p) {
		return 0, false
	}
	return p[node], true
}

// Clone returns an independent copy.
func (p Partition) Clone() Partition {
	out := make(Partition, len(p))
	copy(out, p)
	return out
}

// Mode selects how label updates are read within a pass.
type Mode int

const (
	// ModeSequential visits nodes in index order and reads labels already
	// rewritten earlier in the same pass.
	ModeSequential Mode = iota
	// ModeSynchronous reads only labels as they stood at the start of the
	// pass, which lets nodes be evaluated concurrently.
	ModeSynchronous
)

func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeSynchronous:
		return "synchronous"
	default:
		return "unknown"
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "sequential":
		return ModeSequential, true
	case "synchronous":
		return ModeSynchronous, true
	default:
		return ModeSequential, false
	}
}

// PropagationOptions controls LabelPropagation.
type PropagationOptions struct {
	MaxIterations int
	Mode          Mode
	// Workers is the goroutine count for ModeSynchronous; <= 0 means one.
	Workers int
	// Initial replaces the identity starting labels when non-nil.
	Initial Partition
	// OnPass, when set, is called after every pass.
	OnPass func(iteration, reassigned int)
}

// Result is the outcome of LabelPropagation.
type Result struct {
	Partition     Partition
	Iterations    int   // passes executed
	Converged     bool  // the last pass reassigned nothing
	Reassignments []int // reassigned nodes per pass
}

// Size is the member count of one community.
type Size struct {
	Community int `json:"community" yaml:"community"`
	Nodes     int `json:"nodes" yaml:"nodes"`
}
