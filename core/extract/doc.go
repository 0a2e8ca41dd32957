// Package extract drives every source through one state machine:
//
//	Connecting -> Discovering-Headers -> Streaming-Rows -> Done
//
// with Failed reachable from any state. Sources only provide three
// capabilities: open a cursor, yield the next raw unit, and extract a named
// field from a unit as a display string. Header discovery, the single
// reconciliation call, row alignment, and error classification live here, so
// the policies are identical for every backend.
//
// # Header modes
//
//   - Declared: headers are the first unit's fields in source order (SQL, CSV).
//   - Sorted: headers are the first unit's fields, sorted (documents, search hits).
//   - Fixed: headers are a static list that cannot mismatch (key/value pairs).
//
// # Usage
//
//	res, err := extract.Run(ctx, src, expected, logger)
//	if err != nil {
//	    return err // *fault.Error
//	}
//	writeSheet(res.Table)
package extract
