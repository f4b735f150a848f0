package ingest

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"
)

// SourceOptions configures Open.
type SourceOptions struct {
	TSV Options   `yaml:"tsv"`
	S3  S3Options `yaml:"s3"`
}

// Location is a parsed input location.
type Location struct {
	Scheme string // "file" or "s3"
	Bucket string
	Path   string // file path or object key
}

// Compressed reports whether the object is a framed snappy stream.
func (l Location) Compressed() bool {
	return strings.HasSuffix(l.Path, ".sz") || strings.HasSuffix(l.Path, ".snappy")
}

func (l Location) String() string {
	if l.Scheme == "s3" {
		return "s3://" + l.Bucket + "/" + l.Path
	}
	return l.Path
}

// ParseLocation accepts a plain path, file:// URL or s3://bucket/key.
func ParseLocation(raw string) (Location, error) {
	if raw == "" {
		return Location{}, fmt.Errorf("%w: empty location", ErrUnsupportedSource)
	}
	if !strings.Contains(raw, "://") {
		return Location{Scheme: "file", Path: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
	}

	switch u.Scheme {
	case "file":
		return Location{Scheme: "file", Path: u.Path}, nil
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, fmt.Errorf("%w: s3 location needs bucket and key: %s", ErrUnsupportedSource, raw)
		}
		return Location{Scheme: "s3", Bucket: u.Host, Path: key}, nil
	default:
		return Location{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)
	}
}

// Open resolves location to a TSV record reader. The caller must Close it.
func Open(ctx context.Context, location string, opts SourceOptions) (*TSVReader, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}

	if loc.Scheme == "s3" {
		client, err := NewS3Client(ctx, opts.S3)
		if err != nil {
			return nil, err
		}
		return OpenObject(ctx, client, location, opts.TSV)
	}

	ra, err := mmap.Open(loc.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", loc.Path, err)
	}
	body := io.NewSectionReader(ra, 0, int64(ra.Len()))
	return newReader(body, loc, opts.TSV, []io.Closer{ra}), nil
}

func newReader(body io.Reader, loc Location, opts Options, closers []io.Closer) *TSVReader {
	if loc.Compressed() {
		body = snappy.NewReader(body)
	}
	reader := NewTSVReader(body, opts)
	reader.closers = closers
	return reader
}
