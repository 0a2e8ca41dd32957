package flatfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"data-extractor/core/extract"
	"data-extractor/core/fault"
	"data-extractor/core/storage"
)

// Backend names this source in diagnostics.
const Backend = "csv"

const bom = "\ufeff"

// Params locates the file.
type Params struct {
	// Path is a local path or an s3://bucket/key object reference.
	Path string
}

// Source reads a CSV file whose first record is the header row.
type Source struct {
	params Params
	store  storage.Client
}

// New validates params. store is only needed for s3:// paths and may be nil.
func New(p Params, store storage.Client) (*Source, error) {
	if strings.TrimSpace(p.Path) == "" {
		return nil, fault.Configuration(Backend, "file path is required")
	}
	if strings.HasPrefix(p.Path, storage.Scheme) {
		if _, _, ok := storage.ParseURI(p.Path); !ok {
			return nil, fault.Configuration(Backend, "invalid object reference %q, want s3://bucket/key", p.Path)
		}
		if store == nil {
			return nil, fault.Configuration(Backend, "object storage is not configured")
		}
	}
	return &Source{params: p, store: store}, nil
}

func (s *Source) Name() string { return Backend }

func (s *Source) Mode() extract.HeaderMode { return extract.Declared }

func (s *Source) Open(ctx context.Context) (extract.Cursor, error) {
	rc, err := s.open(ctx)
	if err != nil {
		return nil, fault.Connection(Backend, err)
	}

	r := csv.NewReader(rc)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		header = []string{}
	} else if err != nil {
		_ = rc.Close()
		return nil, fault.Protocol(Backend, fault.StageDiscovering, "failed to read header row: %v", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	c := &cursor{rc: rc, r: r, headers: header, index: make(map[string]int, len(header))}
	for i, h := range header {
		if _, dup := c.index[h]; !dup {
			c.index[h] = i
		}
	}
	return c, nil
}

func (s *Source) open(ctx context.Context) (io.ReadCloser, error) {
	if bucket, key, ok := storage.ParseURI(s.params.Path); ok {
		return storage.Open(ctx, s.store, bucket, key)
	}
	f, err := os.Open(s.params.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.params.Path, err)
	}
	return f, nil
}

type cursor struct {
	rc      io.ReadCloser
	r       *csv.Reader
	headers []string
	index   map[string]int
}

// Headers implements extract.HeaderCursor.
func (c *cursor) Headers() []string { return c.headers }

func (c *cursor) Next(ctx context.Context) (extract.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := c.r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record{c: c, cells: rec}, nil
}

func (c *cursor) Close(_ context.Context) error {
	return c.rc.Close()
}

type record struct {
	c     *cursor
	cells []string
}

func (r *record) Fields() []string { return r.c.headers }

func (r *record) Value(field string) string {
	i, ok := r.c.index[field]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}
