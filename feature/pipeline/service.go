package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"data-extractor/core/database"
	"data-extractor/core/extract"
	"data-extractor/core/fault"
	"data-extractor/core/metrics"
	"data-extractor/core/storage"
	"data-extractor/feature/sinks/spreadsheet"
	"data-extractor/feature/sinks/truetabs"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Deps are the collaborators the service wires sources and sinks with.
type Deps struct {
	Database database.Config
	// Storage is optional; without it s3:// inputs and uploads are rejected.
	Storage storage.Client
	Bucket  string
	// Remote is optional; without it updates are rejected.
	Remote *truetabs.Client
	Logger *zap.Logger
}

// Service validates requests, selects a source by kind and a sink by action.
type Service struct {
	deps     Deps
	logger   *zap.Logger
	validate *validator.Validate
}

// Outcome is the result of ExtractToFile.
type Outcome struct {
	*extract.Result
	// Output is the local workbook path.
	Output string `json:"output,omitempty"`
	// Uploaded is the s3:// reference when the workbook was uploaded.
	Uploaded string `json:"uploaded,omitempty"`
}

// NewService creates a new pipeline service.
func NewService(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{deps: deps, logger: deps.Logger, validate: newValidator()}
}

// Extract runs one extraction and returns the canonical table.
func (s *Service) Extract(ctx context.Context, req ExtractRequest) (*extract.Result, error) {
	req.Source = strings.ToLower(strings.TrimSpace(req.Source))
	if err := s.validate.Struct(req); err != nil {
		return nil, validationFault(req.Source, err)
	}

	kind, ok := lookup(req.Source)
	if !ok {
		return nil, fault.Configuration(req.Source, "unsupported source")
	}
	src, err := kind.build(s, req)
	if err != nil {
		return nil, err
	}

	l := s.logger.With(zap.String("source", req.Source))
	l.Info("Extracting", zap.String("family", kind.Family))

	res, err := extract.Run(ctx, src, req.ExpectedHeaders, l)
	if err != nil {
		metrics.RecordExtraction(req.Source, 0, 0, err)
		l.Error("Extraction failed", zap.Error(err))
		return nil, err
	}
	metrics.RecordExtraction(req.Source, res.Table.Len(), res.Duration, nil)
	return res, nil
}

// ExtractToFile checks the output path, extracts, writes the workbook and
// optionally uploads it.
func (s *Service) ExtractToFile(ctx context.Context, req ExtractRequest) (*Outcome, error) {
	if err := spreadsheet.CheckPath(req.Output); err != nil {
		return nil, err
	}
	if req.Upload && s.deps.Storage == nil {
		return nil, fault.Configuration("storage", "upload requested but object storage is not configured")
	}

	res, err := s.Extract(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := spreadsheet.Write(req.Output, res.Table); err != nil {
		s.logger.Error("Failed to write workbook", zap.String("output", req.Output), zap.Error(err))
		return nil, err
	}
	out := &Outcome{Result: res, Output: req.Output}
	s.logger.Info("Workbook saved", zap.String("output", req.Output), zap.Int("rows", res.Table.Len()))

	if req.Upload {
		ref, err := s.upload(ctx, res, filepath.Base(req.Output))
		if err != nil {
			return nil, err
		}
		out.Uploaded = ref
	}
	return out, nil
}

// Workbook extracts and encodes the result as .xlsx bytes without touching disk.
func (s *Service) Workbook(ctx context.Context, req ExtractRequest) ([]byte, *extract.Result, error) {
	res, err := s.Extract(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	buf, err := spreadsheet.Encode(res.Table)
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), res, nil
}

func (s *Service) upload(ctx context.Context, res *extract.Result, name string) (string, error) {
	buf, err := spreadsheet.Encode(res.Table)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s-%s", res.Source, strings.TrimSuffix(name, filepath.Ext(name)), res.RunID) + ".xlsx"
	ref, err := storage.Upload(ctx, s.deps.Storage, s.deps.Bucket, key, buf, int64(buf.Len()), storage.XLSXContentType)
	if err != nil {
		return "", fault.Sink("storage", err)
	}
	s.logger.Info("Workbook uploaded", zap.String("ref", ref))
	return ref, nil
}

// Update pushes one record update to the remote datasheet API.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (json.RawMessage, error) {
	req.Target = strings.ToLower(strings.TrimSpace(req.Target))
	if err := s.validate.Struct(req); err != nil {
		return nil, validationFault(truetabs.Backend, err)
	}
	if s.deps.Remote == nil {
		return nil, fault.Configuration(truetabs.Backend, "remote client is not configured")
	}

	raw, err := s.deps.Remote.UpdateRecord(ctx, req.DatasheetID, req.RecordID, req.Fields)
	metrics.RecordUpdate(err)
	if err != nil {
		s.logger.Error("Update failed", zap.String("datasheet", req.DatasheetID), zap.Error(err))
		return nil, err
	}
	return raw, nil
}
