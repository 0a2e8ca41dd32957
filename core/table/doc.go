// Package table defines the canonical table every source converges to.
//
// A Table is an ordered header list plus an ordered list of rows. Each row is a
// slice of display strings positionally aligned to the headers; AppendRow
// enforces that alignment so a misaligned row can never reach a sink.
//
// # Usage
//
//	t := table.New([]string{"id", "name"})
//	if err := t.AppendRow([]string{"1", "alice"}); err != nil {
//	    return err
//	}
package table
