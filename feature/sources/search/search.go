package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"data-extractor/core/coerce"
	"data-extractor/core/extract"
	"data-extractor/core/fault"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/goccy/go-json"
)

// Backend names this source in diagnostics.
const Backend = "elasticsearch"

// Params selects the index and the query body.
type Params struct {
	// Connection is the node URL; credentials in the userinfo part are sent as basic auth.
	Connection string
	Index      string
	// Query is passed through to _search untouched.
	Query string
}

// Source reads hits.hits[]._source from one search request.
type Source struct {
	params Params
}

// New validates params. The query must be a JSON object.
func New(p Params) (*Source, error) {
	if strings.TrimSpace(p.Connection) == "" {
		return nil, fault.Configuration(Backend, "connection url is required")
	}
	if strings.TrimSpace(p.Index) == "" {
		return nil, fault.Configuration(Backend, "index is required")
	}
	var probe map[string]any
	if err := json.Unmarshal([]byte(p.Query), &probe); err != nil {
		return nil, fault.Configuration(Backend, "query must be a JSON object: %v", err)
	}
	return &Source{params: p}, nil
}

func (s *Source) Name() string { return Backend }

func (s *Source) Mode() extract.HeaderMode { return extract.Sorted }

func (s *Source) Open(ctx context.Context) (extract.Cursor, error) {
	cfg, err := clientConfig(s.params.Connection)
	if err != nil {
		return nil, fault.Configuration(Backend, "%v", err)
	}
	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fault.Connection(Backend, err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(s.params.Index),
		es.Search.WithBody(strings.NewReader(s.params.Query)),
	)
	if err != nil {
		return nil, fault.Connection(Backend, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fault.Connection(Backend, fmt.Errorf("failed to read response: %w", err))
	}
	if res.IsError() {
		return nil, fault.Protocol(Backend, fault.StageDiscovering, "search failed with status %d: %s", res.StatusCode, body)
	}

	hits, err := decodeHits(body)
	if err != nil {
		return nil, fault.Protocol(Backend, fault.StageDiscovering, "%v", err)
	}
	return &cursor{hits: hits}, nil
}

// clientConfig splits credentials out of the node URL.
func clientConfig(conn string) (elasticsearch.Config, error) {
	u, err := url.Parse(conn)
	if err != nil {
		return elasticsearch.Config{}, fmt.Errorf("invalid connection url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return elasticsearch.Config{}, fmt.Errorf("invalid connection url %q", conn)
	}

	cfg := elasticsearch.Config{DisableRetry: true}
	if u.User != nil {
		cfg.Username = u.User.Username()
		cfg.Password, _ = u.User.Password()
		u.User = nil
	}
	cfg.Addresses = []string{u.String()}
	return cfg, nil
}

type searchResponse struct {
	Hits *struct {
		Hits *[]struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func decodeHits(body []byte) ([]json.RawMessage, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if resp.Hits == nil || resp.Hits.Hits == nil {
		return nil, fmt.Errorf("search response has no hits.hits array")
	}

	hits := make([]json.RawMessage, len(*resp.Hits.Hits))
	for i, h := range *resp.Hits.Hits {
		hits[i] = h.Source
	}
	return hits, nil
}

type cursor struct {
	hits []json.RawMessage
	pos  int
}

func (c *cursor) Next(_ context.Context) (extract.Unit, error) {
	if c.pos >= len(c.hits) {
		return nil, nil
	}
	raw := c.hits[c.pos]
	c.pos++

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var src any
	if len(raw) > 0 {
		if err := dec.Decode(&src); err != nil {
			return nil, fmt.Errorf("hit %d: failed to decode _source: %w", c.pos-1, err)
		}
	}
	obj, ok := src.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("hit %d: _source is not an object", c.pos-1)
	}
	return hit(obj), nil
}

func (c *cursor) Close(_ context.Context) error { return nil }

type hit map[string]any

func (h hit) Fields() []string {
	fields := make([]string, 0, len(h))
	for k := range h {
		fields = append(fields, k)
	}
	return fields
}

func (h hit) Value(field string) string {
	return coerce.JSON(h[field])
}
