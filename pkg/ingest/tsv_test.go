package ingest

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTSV = "SOURCE_SUBREDDIT\tTARGET_SUBREDDIT\tPOST_ID\tTIMESTAMP\tLINK_SENTIMENT\tPROPERTIES\n" +
	"leagueoflegends\tteamredditteams\t1u4nrps\t2013-12-31 16:39:58\t1\t345.0,298.0\n" +
	"theredlion\tsoccer\t1u4qkd\t2013-12-31 18:18:37\t-1\t101.0,98.0\n" +
	"inlandempire\tbikela\t1u4qlzs\t2014-01-01 14:54:35\t0\t85.0,85.0\n"

func readAll(t *testing.T, r RecordReader) ([]Record, error) {
	t.Helper()
	var out []Record
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

func TestTSVReader_ReadsConfiguredColumns(t *testing.T) {
	reader := NewTSVReader(strings.NewReader(sampleTSV), DefaultOptions())

	records, err := readAll(t, reader)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Record{Source: "leagueoflegends", Target: "teamredditteams", Weight: 1}, records[0])
	assert.Equal(t, Record{Source: "theredlion", Target: "soccer", Weight: -1}, records[1])
	assert.Equal(t, 0, records[2].Weight)
	assert.Equal(t, 4, reader.Line())
}

func TestTSVReader_NoHeader(t *testing.T) {
	opts := DefaultOptions()
	opts.HasHeader = false

	records, err := readAll(t, NewTSVReader(strings.NewReader("a\tb\tx\ty\t1\n"), opts))
	require.NoError(t, err)
	assert.Equal(t, []Record{{Source: "a", Target: "b", Weight: 1}}, records)
}

func TestTSVReader_EmptyInput(t *testing.T) {
	records, err := readAll(t, NewTSVReader(strings.NewReader(""), DefaultOptions()))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTSVReader_InvalidWeight(t *testing.T) {
	input := "h\th\th\th\th\n" +
		"a\tb\tx\ty\t1\n" +
		"a\tc\tx\ty\tpositive\n"

	records, err := readAll(t, NewTSVReader(strings.NewReader(input), DefaultOptions()))
	require.Error(t, err)
	assert.Len(t, records, 1)
	assert.ErrorIs(t, err, ErrInvalidWeight)

	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 3, recErr.Line)
	assert.Equal(t, 4, recErr.Column)
}

func TestTSVReader_WeightOutOfRange(t *testing.T) {
	opts := DefaultOptions()
	opts.HasHeader = false

	_, err := readAll(t, NewTSVReader(strings.NewReader("a\tb\tx\ty\t99999999999\n"), opts))
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestTSVReader_MissingColumn(t *testing.T) {
	opts := DefaultOptions()
	opts.HasHeader = false

	_, err := readAll(t, NewTSVReader(strings.NewReader("a\tb\tx\n"), opts))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "line 1 column 4")

	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 1, recErr.Line)
	assert.Equal(t, 4, recErr.Column)
}

func TestSliceReader(t *testing.T) {
	in := []Record{{Source: "a", Target: "b", Weight: 1}, {Source: "b", Target: "a", Weight: -1}}
	records, err := readAll(t, NewSliceReader(in))
	require.NoError(t, err)
	assert.Equal(t, in, records)
}
