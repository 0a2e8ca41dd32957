package extract

import (
	"context"
	"errors"
	"sort"
	"time"

	"data-extractor/core/fault"
	"data-extractor/core/reconcile"
	"data-extractor/core/table"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is the outcome of a successful extraction.
type Result struct {
	// RunID identifies this extraction in logs.
	RunID string `json:"run_id"`

	// Source is the backend name.
	Source string `json:"source"`

	// Table is the fully materialized canonical table.
	Table *table.Table `json:"table"`

	// Warnings lists conditions the caller should know about that did not fail the run,
	// such as an expected schema that the source cannot honour.
	Warnings []string `json:"warnings,omitempty"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration"`
}

// Run extracts a canonical table from src.
// expected may be nil. On failure no partial table is returned.
func Run(ctx context.Context, src Source, expected []string, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	started := time.Now()
	res := &Result{
		RunID:  uuid.New().String(),
		Source: src.Name(),
	}
	l := logger.With(zap.String("source", res.Source), zap.String("run_id", res.RunID))

	var fixed []string
	if src.Mode() == Fixed {
		fh, ok := src.(FixedHeaders)
		if !ok {
			return nil, fault.Configuration(src.Name(), "source declares fixed headers but does not provide them")
		}
		fixed = fh.Headers()
		if expected != nil {
			msg := "expected headers are not checked for " + src.Name() + ": its headers are fixed"
			res.Warnings = append(res.Warnings, msg)
			l.Warn("Ignoring expected headers", zap.Strings("expected", expected), zap.Strings("fixed", fixed))
		}
	}

	l.Debug("Connecting")
	cur, err := src.Open(ctx)
	if err != nil {
		return nil, classify(err, src.Name(), fault.StageConnecting, fault.KindConnection)
	}
	defer func() {
		if cerr := cur.Close(context.WithoutCancel(ctx)); cerr != nil {
			l.Warn("Failed to close source", zap.Error(cerr))
		}
	}()

	l.Debug("Discovering headers", zap.Stringer("mode", src.Mode()))
	first, err := cur.Next(ctx)
	if err != nil {
		return nil, classify(err, src.Name(), fault.StageDiscovering, fault.KindSourceProtocol)
	}

	var headers []string
	hc, declared := cur.(HeaderCursor)
	switch {
	case fixed != nil:
		headers = fixed
	case declared && len(hc.Headers()) > 0:
		headers = clone(hc.Headers())
		if src.Mode() == Sorted {
			sort.Strings(headers)
		}
	case first == nil:
		res.Table = table.Empty()
		res.Duration = time.Since(started)
		l.Info("Source returned no records")
		return res, nil
	case src.Mode() == Sorted:
		headers = clone(first.Fields())
		sort.Strings(headers)
	default:
		headers = clone(first.Fields())
	}

	if fixed == nil {
		if err := reconcile.Headers(headers, expected); err != nil {
			return nil, fault.New(fault.KindSchemaMismatch, src.Name(), fault.StageDiscovering, err)
		}
	}

	tbl := table.New(headers)
	l.Debug("Streaming rows", zap.Strings("headers", tbl.Headers))
	for unit := first; unit != nil; {
		row := make([]string, len(tbl.Headers))
		for i, h := range tbl.Headers {
			row[i] = unit.Value(h)
		}
		if err := tbl.AppendRow(row); err != nil {
			return nil, fault.New(fault.KindSourceProtocol, src.Name(), fault.StageStreaming, err)
		}

		unit, err = cur.Next(ctx)
		if err != nil {
			return nil, classify(err, src.Name(), fault.StageStreaming, fault.KindSourceProtocol)
		}
	}

	res.Table = tbl
	res.Duration = time.Since(started)
	l.Info("Extraction complete", zap.Int("rows", tbl.Len()), zap.Duration("duration", res.Duration))
	return res, nil
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// classify keeps an already classified error and wraps anything else with
// the given kind and stage.
func classify(err error, backend string, stage fault.Stage, kind fault.Kind) error {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return err
	}
	return fault.New(kind, backend, stage, err)
}
