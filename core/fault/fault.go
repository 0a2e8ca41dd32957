package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	// KindConnection means the backend was unreachable or rejected credentials.
	KindConnection Kind = "connection"
	// KindSchemaMismatch means discovered headers diverged from the expected ones.
	KindSchemaMismatch Kind = "schema_mismatch"
	// KindSourceProtocol means the backend answered in a shape the adapter does not understand.
	KindSourceProtocol Kind = "source_protocol"
	// KindSink means the output target rejected the data.
	KindSink Kind = "sink"
	// KindConfiguration means a parameter required by the selected backend is missing or invalid.
	KindConfiguration Kind = "configuration"
)

// Stage names a step of the extraction state machine.
type Stage string

const (
	StageConnecting  Stage = "connecting"
	StageDiscovering Stage = "discovering_headers"
	StageStreaming   Stage = "streaming_rows"
	StageDone        Stage = "done"
	// StageSetup covers request validation before any backend is touched.
	StageSetup Stage = "setup"
	// StageSink covers the output step after extraction.
	StageSink Stage = "sink"
)

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Backend string
	Stage   Stage
	Err     error
}

func (e *Error) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("%s error during %s: %v", e.Kind, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s error during %s: %v", e.Backend, e.Kind, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a classified error.
func New(kind Kind, backend string, stage Stage, err error) *Error {
	return &Error{Kind: kind, Backend: backend, Stage: stage, Err: err}
}

// Connection builds a KindConnection error for the connecting stage.
func Connection(backend string, err error) *Error {
	return New(KindConnection, backend, StageConnecting, err)
}

// Protocol builds a KindSourceProtocol error.
func Protocol(backend string, stage Stage, format string, args ...any) *Error {
	return New(KindSourceProtocol, backend, stage, fmt.Errorf(format, args...))
}

// Configuration builds a KindConfiguration error.
func Configuration(backend string, format string, args ...any) *Error {
	return New(KindConfiguration, backend, StageSetup, fmt.Errorf(format, args...))
}

// Sink builds a KindSink error.
func Sink(target string, err error) *Error {
	return New(KindSink, target, StageSink, err)
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or "" when err is not classified.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
