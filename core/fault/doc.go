// Package fault defines the error taxonomy shared by sources, sinks, and the
// orchestrator.
//
// Every failure that leaves the core is a *Error carrying its Kind, the backend
// it happened on, and the extraction stage it happened in. Callers branch on
// the kind with Is or errors.As:
//
//	var fe *fault.Error
//	if errors.As(err, &fe) && fe.Kind == fault.KindSchemaMismatch {
//	    // both header lists are in the wrapped *reconcile.MismatchError
//	}
//
// Coercion has no entry here: converting a value to a display string cannot fail.
package fault
