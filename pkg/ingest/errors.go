package ingest

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn     = errors.New("missing column")
	ErrInvalidWeight     = errors.New("invalid weight")
	ErrUnsupportedSource = errors.New("unsupported source")
)

// RecordError describes a record that could not be decoded. Line is 1-based
// and counts the header row when there is one.
type RecordError struct {
	Line   int
	Column int // -1 when the failure is not tied to a column
	Cause  error
}

func (e *RecordError) Error() string {
	if e.Column >= 0 {
		return fmt.Sprintf("line %d column %d: %v", e.Line, e.Column, e.Cause)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Cause)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}
