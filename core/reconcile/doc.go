// Package reconcile compares the column names a source discovered against the
// column names a caller expected.
//
// The comparison is order-insensitive and multiplicity-aware: both lists are
// sorted copies and must match element for element, so a name discovered twice
// only matches if it was also expected twice. A nil expected list always
// matches.
//
// Reconciliation is pure. The extraction engine calls it exactly once per run,
// on the first unit of data; an empty result set is never a mismatch.
//
// # Usage
//
//	if err := reconcile.Headers(discovered, expected); err != nil {
//	    var mm *reconcile.MismatchError
//	    errors.As(err, &mm)
//	    log.Warn("columns", zap.Strings("missing", mm.Missing()))
//	}
package reconcile
