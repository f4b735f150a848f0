// Package ingest turns tab-delimited interaction dumps into a stream of
// (source, target, weight) records. Sources may be local files, snappy
// compressed files or S3 objects.
package ingest

import "io"

// Record is one directed interaction.
type Record struct {
	Source string
	Target string
	Weight int
}

// RecordReader yields records in input order and returns io.EOF once the
// input is exhausted. Any other error is terminal.
type RecordReader interface {
	Read() (Record, error)
}

// Options controls how rows are mapped to records.
type Options struct {
	HasHeader    bool `yaml:"has_header"`
	SourceColumn int  `yaml:"source_column" validate:"min=0"`
	TargetColumn int  `yaml:"target_column" validate:"min=0"`
	WeightColumn int  `yaml:"weight_column" validate:"min=0"`
}

// DefaultOptions matches the Reddit hyperlink dumps: a header row, then
// SOURCE_SUBREDDIT, TARGET_SUBREDDIT, POST_ID, TIMESTAMP, LINK_SENTIMENT.
func DefaultOptions() Options {
	return Options{
		HasHeader:    true,
		SourceColumn: 0,
		TargetColumn: 1,
		WeightColumn: 4,
	}
}

// SliceReader serves records from memory.
type SliceReader struct {
	records []Record
	pos     int
}

func NewSliceReader(records []Record) *SliceReader {
	return &SliceReader{records: records}
}

func (r *SliceReader) Read() (Record, error) {
	if r.pos >= len(r.records) {
		return Record{}, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}
