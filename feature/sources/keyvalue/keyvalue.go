package keyvalue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"data-extractor/core/extract"
	"data-extractor/core/fault"

	"github.com/redis/go-redis/v9"
)

// Backend names this source in diagnostics.
const Backend = "redis"

// Headers are the fixed columns of every key/value extraction.
var Headers = []string{"Key", "Value"}

// Params selects the keys to read.
type Params struct {
	// Connection is a redis:// or rediss:// URL.
	Connection string
	// KeyPattern is a KEYS glob such as "user:*".
	KeyPattern string
}

// Source reads every key matching a pattern with its string value.
type Source struct {
	params Params
}

// New validates params.
func New(p Params) (*Source, error) {
	if strings.TrimSpace(p.Connection) == "" {
		return nil, fault.Configuration(Backend, "connection url is required")
	}
	if p.KeyPattern == "" {
		return nil, fault.Configuration(Backend, "key pattern is required")
	}
	return &Source{params: p}, nil
}

func (s *Source) Name() string { return Backend }

func (s *Source) Mode() extract.HeaderMode { return extract.Fixed }

// Headers implements extract.FixedHeaders.
func (s *Source) Headers() []string { return Headers }

func (s *Source) Open(ctx context.Context) (extract.Cursor, error) {
	opts, err := redis.ParseURL(s.params.Connection)
	if err != nil {
		return nil, fault.Configuration(Backend, "invalid connection url: %v", err)
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fault.Connection(Backend, err)
	}

	keys, err := client.Keys(ctx, s.params.KeyPattern).Result()
	if err != nil {
		_ = client.Close()
		return nil, fault.Protocol(Backend, fault.StageDiscovering, "failed to list keys: %v", err)
	}
	sort.Strings(keys)

	return &cursor{client: client, keys: keys}, nil
}

type cursor struct {
	client *redis.Client
	keys   []string
	pos    int
}

func (c *cursor) Next(ctx context.Context) (extract.Unit, error) {
	if c.pos >= len(c.keys) {
		return nil, nil
	}
	key := c.keys[c.pos]
	c.pos++

	val, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
	case errors.Is(err, redis.Nil):
		// expired between KEYS and GET
		val = ""
	case strings.HasPrefix(err.Error(), "WRONGTYPE"):
		// lists, hashes and sets have no string value
		val = ""
	default:
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return pair{key: key, value: val}, nil
}

func (c *cursor) Close(_ context.Context) error {
	return c.client.Close()
}

type pair struct {
	key   string
	value string
}

func (p pair) Fields() []string { return Headers }

func (p pair) Value(field string) string {
	switch field {
	case "Key":
		return p.key
	case "Value":
		return p.value
	}
	return ""
}
