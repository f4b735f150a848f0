package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// TSVReader decodes tab-delimited rows into records.
type TSVReader struct {
	csv     *csv.Reader
	opts    Options
	line    int
	started bool
	closers []io.Closer
}

// NewTSVReader wraps r. Rows may have any number of columns as long as the
// configured ones are present.
func NewTSVReader(r io.Reader, opts Options) *TSVReader {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	return &TSVReader{csv: reader, opts: opts}
}

// Read returns the next record, io.EOF at the end of input or a
// *RecordError for a row that cannot be decoded.
func (r *TSVReader) Read() (Record, error) {
	if !r.started {
		r.started = true
		if r.opts.HasHeader {
			if _, err := r.next(); err != nil {
				return Record{}, err
			}
		}
	}

	row, err := r.next()
	if err != nil {
		return Record{}, err
	}

	source, err := r.column(row, r.opts.SourceColumn)
	if err != nil {
		return Record{}, err
	}
	target, err := r.column(row, r.opts.TargetColumn)
	if err != nil {
		return Record{}, err
	}
	raw, err := r.column(row, r.opts.WeightColumn)
	if err != nil {
		return Record{}, err
	}

	weight, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return Record{}, &RecordError{
			Line:   r.line,
			Column: r.opts.WeightColumn,
			Cause:  fmt.Errorf("%w %q: %v", ErrInvalidWeight, raw, err),
		}
	}

	return Record{Source: source, Target: target, Weight: int(weight)}, nil
}

func (r *TSVReader) next() ([]string, error) {
	row, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	r.line++
	if err != nil {
		return nil, &RecordError{Line: r.line, Column: -1, Cause: err}
	}
	return row, nil
}

func (r *TSVReader) column(row []string, idx int) (string, error) {
	if idx >= len(row) {
		return "", &RecordError{
			Line:   r.line,
			Column: idx,
			Cause:  fmt.Errorf("%w: row has %d columns", ErrMissingColumn, len(row)),
		}
	}
	// Copy so a long-lived label does not pin the whole row.
	return string([]byte(row[idx])), nil
}

// Line returns the number of rows consumed so far, header included.
func (r *TSVReader) Line() int {
	return r.line
}

// Close releases the underlying source, innermost last.
func (r *TSVReader) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
