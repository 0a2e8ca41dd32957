package truetabs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"data-extractor/core/fault"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Backend names this sink in diagnostics.
const Backend = "truetabs"

// RecordUpdate sets fields on one existing record.
type RecordUpdate struct {
	RecordID string         `json:"recordId"`
	Fields   map[string]any `json:"fields"`
}

type updateRequest struct {
	Records  []RecordUpdate `json:"records"`
	FieldKey string         `json:"fieldKey"`
}

// StatusError is a non-2xx answer, kept verbatim.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status: %d %s. Response body: %s", e.Code, http.StatusText(e.Code), e.Body)
}

// Client patches records of TrueTabs datasheets.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a client. A nil logger discards output.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if cfg.FieldKey == "" {
		cfg.FieldKey = "name"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With(zap.String("sink", Backend)),
	}
}

// UpdateRecord sets fields on a single record.
func (c *Client) UpdateRecord(ctx context.Context, datasheetID, recordID string, fields map[string]any) (json.RawMessage, error) {
	return c.UpdateRecords(ctx, datasheetID, []RecordUpdate{{RecordID: recordID, Fields: fields}})
}

// UpdateRecords sends one PATCH with all records and returns the raw JSON answer.
func (c *Client) UpdateRecords(ctx context.Context, datasheetID string, records []RecordUpdate) (json.RawMessage, error) {
	if c.cfg.APIToken == "" {
		return nil, fault.Configuration(Backend, "api token is not configured")
	}
	if c.cfg.BaseURL == "" {
		return nil, fault.Configuration(Backend, "base url is not configured")
	}
	if datasheetID == "" {
		return nil, fault.Configuration(Backend, "datasheet id is required")
	}
	if len(records) == 0 {
		return nil, fault.Configuration(Backend, "at least one record update is required")
	}
	payload := make([]RecordUpdate, len(records))
	for i, r := range records {
		if r.RecordID == "" {
			return nil, fault.Configuration(Backend, "record %d has no record id", i)
		}
		if r.Fields == nil {
			r.Fields = map[string]any{}
		}
		payload[i] = r
	}

	body, err := json.Marshal(updateRequest{Records: payload, FieldKey: c.cfg.FieldKey})
	if err != nil {
		return nil, fault.Sink(Backend, fmt.Errorf("failed to encode update: %w", err))
	}

	endpoint := c.cfg.BaseURL + "/datasheets/" + url.PathEscape(datasheetID) + "/records"
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fault.Sink(Backend, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fault.New(fault.KindConnection, Backend, fault.StageSink, err)
	}

	c.logger.Debug("Updating records", zap.String("datasheet", datasheetID), zap.Int("records", len(records)))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fault.New(fault.KindConnection, Backend, fault.StageSink, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fault.New(fault.KindConnection, Backend, fault.StageSink, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fault.Sink(Backend, &StatusError{Code: resp.StatusCode, Body: string(raw)})
	}
	if !json.Valid(raw) {
		return nil, fault.Sink(Backend, fmt.Errorf("failed to parse response JSON. Response body: %s", raw))
	}

	c.logger.Info("Records updated", zap.String("datasheet", datasheetID), zap.Int("records", len(records)))
	return json.RawMessage(raw), nil
}
