package pipeline

import (
	"data-extractor/core/database"
	"data-extractor/core/extract"
	"data-extractor/feature/sources/document"
	"data-extractor/feature/sources/flatfile"
	"data-extractor/feature/sources/keyvalue"
	"data-extractor/feature/sources/relational"
	"data-extractor/feature/sources/search"
)

// Kind describes one supported source kind.
type Kind struct {
	Name     string   `json:"name"`
	Family   string   `json:"family"`
	Required []string `json:"required"`
	Optional []string `json:"optional,omitempty"`
	// Headers explains how column names are discovered.
	Headers string `json:"headers"`

	build func(s *Service, req ExtractRequest) (extract.Source, error)
}

func buildRelational(s *Service, req ExtractRequest) (extract.Source, error) {
	return relational.New(s.deps.Database, relational.Params{
		Driver:     req.Source,
		Connection: req.Connection,
		Query:      req.Query,
		Table:      req.Table,
	})
}

func relationalKind(name string) Kind {
	return Kind{
		Name:     name,
		Family:   "relational",
		Required: []string{"connection", "query or table"},
		Optional: []string{"expected_headers"},
		Headers:  "result set columns in declared order",
		build:    buildRelational,
	}
}

var kinds = []Kind{
	relationalKind(database.DriverPostgres),
	relationalKind(database.DriverMySQL),
	relationalKind(database.DriverSQLite),
	{
		Name:     document.Backend,
		Family:   "document",
		Required: []string{"connection", "db_name", "collection"},
		Optional: []string{"query", "expected_headers"},
		Headers:  "first document's fields, sorted",
		build: func(_ *Service, req ExtractRequest) (extract.Source, error) {
			return document.New(document.Params{
				Connection: req.Connection,
				Database:   req.Database,
				Collection: req.Collection,
				Filter:     req.Query,
			})
		},
	},
	{
		Name:     keyvalue.Backend,
		Family:   "key-value",
		Required: []string{"connection", "key_pattern"},
		Headers:  "fixed: Key, Value",
		build: func(_ *Service, req ExtractRequest) (extract.Source, error) {
			return keyvalue.New(keyvalue.Params{Connection: req.Connection, KeyPattern: req.KeyPattern})
		},
	},
	{
		Name:     search.Backend,
		Family:   "search",
		Required: []string{"connection", "index", "query"},
		Optional: []string{"expected_headers"},
		Headers:  "first hit's _source fields, sorted",
		build: func(_ *Service, req ExtractRequest) (extract.Source, error) {
			return search.New(search.Params{Connection: req.Connection, Index: req.Index, Query: req.Query})
		},
	},
	{
		Name:     flatfile.Backend,
		Family:   "flat file",
		Required: []string{"connection (path or s3://bucket/key)"},
		Optional: []string{"expected_headers"},
		Headers:  "header row in file order",
		build: func(s *Service, req ExtractRequest) (extract.Source, error) {
			return flatfile.New(flatfile.Params{Path: req.Connection}, s.deps.Storage)
		},
	},
}

// Kinds lists every supported source kind in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

func lookup(name string) (Kind, bool) {
	for _, k := range kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}
