package extract

import (
	"context"
)

// HeaderMode selects how headers are derived from the first unit.
type HeaderMode int

const (
	// Declared keeps the first unit's field order.
	Declared HeaderMode = iota
	// Sorted sorts the first unit's field names.
	Sorted
	// Fixed uses the source's static header list.
	Fixed
)

func (m HeaderMode) String() string {
	switch m {
	case Declared:
		return "declared"
	case Sorted:
		return "sorted"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// Source is the capability set a backend provides to the engine.
type Source interface {
	// Name returns the backend name used in diagnostics (e.g. "postgres").
	Name() string

	// Mode returns the header discovery mode for this backend.
	Mode() HeaderMode

	// Open acquires the backend handle and starts reading.
	// Any error is reported as a connection failure.
	Open(ctx context.Context) (Cursor, error)
}

// FixedHeaders is implemented by sources whose Mode is Fixed.
type FixedHeaders interface {
	Headers() []string
}

// Cursor yields raw units one at a time.
type Cursor interface {
	// Next returns the next unit, or (nil, nil) when the source is exhausted.
	Next(ctx context.Context) (Unit, error)

	// Close releases the backend handle.
	Close(ctx context.Context) error
}

// HeaderCursor is implemented by cursors whose format carries a header record
// ahead of the data (CSV). Its headers are used instead of the first unit's
// fields and are reconciled even when no data follows.
type HeaderCursor interface {
	Cursor
	Headers() []string
}

// Unit is one raw record. It never escapes its source package except through
// this interface.
type Unit interface {
	// Fields lists the field names this unit carries, in source order.
	Fields() []string

	// Value returns the coerced value of a field, or "" when the unit lacks it.
	Value(field string) string
}
