package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"data-extractor/core/coerce"
	"data-extractor/core/database"
	"data-extractor/core/extract"
	"data-extractor/core/fault"

	"gorm.io/gorm"
)

// Params selects what to read. Exactly one of Query and Table is used;
// Query wins when both are set.
type Params struct {
	Driver     string
	Connection string
	Query      string
	Table      string
}

// Opener returns a ready gorm handle for one extraction.
type Opener func(ctx context.Context) (*gorm.DB, error)

// Source reads the result set of one SQL statement.
// One implementation serves postgres, mysql and sqlite.
type Source struct {
	params Params
	open   Opener
}

// Option customizes a Source.
type Option func(*Source)

// WithOpener replaces the pool constructor, mainly for tests.
func WithOpener(open Opener) Option {
	return func(s *Source) { s.open = open }
}

// New validates params and prepares a source. No connection is made yet.
func New(cfg database.Config, p Params, opts ...Option) (*Source, error) {
	if !database.IsValidDriver(p.Driver) {
		return nil, fault.Configuration(p.Driver, "unsupported relational driver %q", p.Driver)
	}
	if strings.TrimSpace(p.Query) == "" && strings.TrimSpace(p.Table) == "" {
		return nil, fault.Configuration(p.Driver, "a query or table is required")
	}

	s := &Source{
		params: p,
		open: func(ctx context.Context) (*gorm.DB, error) {
			return database.Connect(ctx, cfg, p.Driver, p.Connection)
		},
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

func (s *Source) Name() string { return s.params.Driver }

func (s *Source) Mode() extract.HeaderMode { return extract.Declared }

func (s *Source) Open(ctx context.Context) (extract.Cursor, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, fault.Connection(s.Name(), err)
	}

	rows, err := s.rows(ctx, db)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	types, err := rows.ColumnTypes()
	if err != nil {
		_ = rows.Close()
		_ = database.Close(db)
		return nil, fault.Protocol(s.Name(), fault.StageDiscovering, "failed to read column metadata: %v", err)
	}

	c := &cursor{db: db, rows: rows, index: make(map[string]int, len(types))}
	for i, ct := range types {
		c.names = append(c.names, ct.Name())
		c.types = append(c.types, ct.DatabaseTypeName())
		// first occurrence wins for duplicate column names
		if _, dup := c.index[ct.Name()]; !dup {
			c.index[ct.Name()] = i
		}
	}
	return c, nil
}

func (s *Source) rows(ctx context.Context, db *gorm.DB) (*sql.Rows, error) {
	q := db.WithContext(ctx)

	if strings.TrimSpace(s.params.Query) != "" {
		rows, err := q.Raw(s.params.Query).Rows()
		if err != nil {
			return nil, fault.Protocol(s.Name(), fault.StageDiscovering, "query failed: %v", err)
		}
		return rows, nil
	}

	columns, err := database.Columns(ctx, db, s.params.Table)
	if errors.Is(err, database.ErrTableNotFound) {
		return nil, fault.Configuration(s.Name(), "%v", err)
	}
	if err != nil {
		return nil, fault.Protocol(s.Name(), fault.StageDiscovering, "%v", err)
	}

	rows, err := q.Table(s.params.Table).Select(columns).Rows()
	if err != nil {
		return nil, fault.Protocol(s.Name(), fault.StageDiscovering, "failed to read table %s: %v", s.params.Table, err)
	}
	return rows, nil
}

type cursor struct {
	db    *gorm.DB
	rows  *sql.Rows
	names []string
	types []string
	index map[string]int
}

func (c *cursor) Next(ctx context.Context) (extract.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		return nil, nil
	}

	vals := make([]any, len(c.names))
	ptrs := make([]any, len(c.names))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := c.rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}
	return &row{c: c, vals: vals}, nil
}

func (c *cursor) Close(_ context.Context) error {
	return errors.Join(c.rows.Close(), database.Close(c.db))
}

type row struct {
	c    *cursor
	vals []any
}

func (r *row) Fields() []string { return r.c.names }

func (r *row) Value(field string) string {
	i, ok := r.c.index[field]
	if !ok {
		return ""
	}
	return coerce.SQL(r.vals[i], r.c.types[i])
}
