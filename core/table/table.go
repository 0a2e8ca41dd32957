package table

import "fmt"

// Table is the canonical header+rows representation.
type Table struct {
	// Headers holds the column names in output order.
	Headers []string `json:"headers"`
	// Rows holds one entry per record, each len(Headers) long.
	Rows [][]string `json:"rows"`
}

// New creates an empty table with the given headers.
func New(headers []string) *Table {
	h := make([]string, len(headers))
	copy(h, headers)
	return &Table{Headers: h, Rows: [][]string{}}
}

// Empty returns a table with no headers and no rows.
func Empty() *Table {
	return &Table{Headers: []string{}, Rows: [][]string{}}
}

// AppendRow adds a row after checking that it is aligned to the headers.
func (t *Table) AppendRow(row []string) error {
	if len(row) != len(t.Headers) {
		return &RowWidthError{Index: len(t.Rows), Got: len(row), Want: len(t.Headers)}
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Validate reports the first row whose width disagrees with the headers.
func (t *Table) Validate() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return &RowWidthError{Index: i, Got: len(row), Want: len(t.Headers)}
		}
	}
	return nil
}

// RowWidthError describes a row that is not aligned to the headers.
type RowWidthError struct {
	Index int
	Got   int
	Want  int
}

func (e *RowWidthError) Error() string {
	return fmt.Sprintf("row %d has %d cells, headers have %d", e.Index, e.Got, e.Want)
}
