package graph

import (
	"errors"
	"fmt"
)

var (
	ErrNodeOutOfRange = errors.New("node index out of range")
)

// BuildError reports why Build gave up. Record is the 1-based number of the
// record being processed, 0 when the failure is not tied to one.
type BuildError struct {
	Op     string // "read", "insert", "cancel"
	Record int
	Cause  error
}

func (e *BuildError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("build graph: %s record %d: %v", e.Op, e.Record, e.Cause)
	}
	return fmt.Sprintf("build graph: %s: %v", e.Op, e.Cause)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *BuildError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
