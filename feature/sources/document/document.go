package document

import (
	"context"
	"fmt"
	"strings"

	"data-extractor/core/coerce"
	"data-extractor/core/extract"
	"data-extractor/core/fault"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Backend names this source in diagnostics.
const Backend = "mongodb"

// Params selects the collection and an optional filter.
type Params struct {
	Connection string
	Database   string
	Collection string
	// Filter is an extended JSON document; empty matches every document.
	Filter string
}

// Finder is the part of *mongo.Collection the source uses.
type Finder interface {
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
}

// Source reads every document of a collection matching the filter.
type Source struct {
	params Params
	filter bson.D
	finder Finder
}

// Option customizes a Source.
type Option func(*Source)

// WithFinder skips connecting and queries f instead, mainly for tests.
func WithFinder(f Finder) Option {
	return func(s *Source) { s.finder = f }
}

// New validates params and parses the filter.
func New(p Params, opts ...Option) (*Source, error) {
	if strings.TrimSpace(p.Database) == "" {
		return nil, fault.Configuration(Backend, "database name is required")
	}
	if strings.TrimSpace(p.Collection) == "" {
		return nil, fault.Configuration(Backend, "collection is required")
	}

	filter := bson.D{}
	if strings.TrimSpace(p.Filter) != "" {
		if err := bson.UnmarshalExtJSON([]byte(p.Filter), false, &filter); err != nil {
			return nil, fault.Configuration(Backend, "filter is not a valid extended JSON document: %v", err)
		}
	}

	s := &Source{params: p, filter: filter}
	for _, o := range opts {
		o(s)
	}
	if s.finder == nil && strings.TrimSpace(p.Connection) == "" {
		return nil, fault.Configuration(Backend, "connection uri is required")
	}
	return s, nil
}

func (s *Source) Name() string { return Backend }

func (s *Source) Mode() extract.HeaderMode { return extract.Sorted }

func (s *Source) Open(ctx context.Context) (extract.Cursor, error) {
	finder := s.finder
	var client *mongo.Client

	if finder == nil {
		var err error
		client, err = mongo.Connect(options.Client().ApplyURI(s.params.Connection))
		if err != nil {
			return nil, fault.Connection(Backend, err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, fault.Connection(Backend, err)
		}
		finder = client.Database(s.params.Database).Collection(s.params.Collection)
	}

	cur, err := finder.Find(ctx, s.filter)
	if err != nil {
		if client != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
		}
		return nil, fault.Protocol(Backend, fault.StageDiscovering, "find failed: %v", err)
	}
	return &cursor{client: client, cur: cur}, nil
}

type cursor struct {
	client *mongo.Client
	cur    *mongo.Cursor
}

func (c *cursor) Next(ctx context.Context) (extract.Unit, error) {
	if !c.cur.Next(ctx) {
		if err := c.cur.Err(); err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		return nil, nil
	}

	var doc bson.D
	if err := c.cur.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return newDocument(doc), nil
}

func (c *cursor) Close(ctx context.Context) error {
	err := c.cur.Close(ctx)
	if c.client != nil {
		if derr := c.client.Disconnect(ctx); err == nil {
			err = derr
		}
	}
	return err
}

type document struct {
	fields []string
	values map[string]any
}

func newDocument(doc bson.D) *document {
	d := &document{values: make(map[string]any, len(doc))}
	for _, e := range doc {
		if _, dup := d.values[e.Key]; dup {
			continue
		}
		d.fields = append(d.fields, e.Key)
		d.values[e.Key] = e.Value
	}
	return d
}

func (d *document) Fields() []string { return d.fields }

func (d *document) Value(field string) string {
	return coerce.BSON(d.values[field])
}
