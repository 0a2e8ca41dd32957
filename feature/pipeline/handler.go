package pipeline

import (
	"context"
	"errors"
	"time"

	"data-extractor/core/extract"
	"data-extractor/core/fault"
	"data-extractor/core/logger"
	"data-extractor/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Handler handles HTTP requests for extractions and updates.
type Handler struct {
	service *Service
	timeout time.Duration
	group   singleflight.Group
}

// NewHandler creates a new HTTP handler. timeout bounds each shared run.
func NewHandler(service *Service, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Handler{service: service, timeout: timeout}
}

// RegisterRoutes registers the pipeline routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/sources", h.HandleListSources)
	app.Post("/extract", h.HandleExtract)
	app.Post("/update", h.HandleUpdate)
}

// HandleListSources returns every supported source kind and its parameters.
func (h *Handler) HandleListSources(c *fiber.Ctx) error {
	return c.JSON(Kinds())
}

type workbook struct {
	data     []byte
	res      *extract.Result
	uploaded string
}

func (h *Handler) run(ctx context.Context, req ExtractRequest, asXLSX bool) (any, error) {
	if req.Upload && h.service.deps.Storage == nil {
		return nil, fault.Configuration("storage", "upload requested but object storage is not configured")
	}

	if !asXLSX && !req.Upload {
		res, err := h.service.Extract(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Outcome{Result: res}, nil
	}

	data, res, err := h.service.Workbook(ctx, req)
	if err != nil {
		return nil, err
	}
	out := &workbook{data: data, res: res}
	if req.Upload {
		if out.uploaded, err = h.service.upload(ctx, res, req.Source+".xlsx"); err != nil {
			return nil, err
		}
	}
	if asXLSX {
		return out, nil
	}
	return &Outcome{Result: res, Uploaded: out.uploaded}, nil
}

// HandleExtract runs an extraction. The response is the canonical table as
// JSON, or the workbook itself with ?format=xlsx. Identical concurrent
// requests share one run.
func (h *Handler) HandleExtract(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ExtractRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return h.fail(c, l, fault.Configuration("", "invalid request body: %v", err))
	}
	// The HTTP surface never touches the server's filesystem.
	req.Output = ""

	asXLSX := c.Query("format") == "xlsx"
	key, err := json.Marshal(struct {
		ExtractRequest
		XLSX bool
	}{req, asXLSX})
	if err != nil {
		return h.fail(c, l, err)
	}

	v, err, shared := h.group.Do(string(key), func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()
		return h.run(ctx, req, asXLSX)
	})
	if err != nil {
		return h.fail(c, l, err)
	}
	if shared {
		l.Debug("Extraction shared with a concurrent request")
	}

	switch out := v.(type) {
	case *workbook:
		c.Set(fiber.HeaderContentType, storage.XLSXContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+out.res.Source+`.xlsx"`)
		c.Set("X-Run-ID", out.res.RunID)
		if out.uploaded != "" {
			c.Set("X-Uploaded", out.uploaded)
		}
		return c.Send(out.data)
	default:
		return c.JSON(out)
	}
}

// HandleUpdate pushes one record update and relays the remote JSON answer.
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req UpdateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return h.fail(c, l, fault.Configuration("", "invalid request body: %v", err))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	raw, err := h.service.Update(ctx, req)
	if err != nil {
		return h.fail(c, l, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := StatusFor(err)
	l.Error("Request failed", zap.Int("status", status), zap.Error(err))

	body := fiber.Map{"error": err.Error()}
	var fe *fault.Error
	if errors.As(err, &fe) {
		body["kind"] = fe.Kind
		body["stage"] = fe.Stage
		if fe.Backend != "" {
			body["backend"] = fe.Backend
		}
	}
	return c.Status(status).JSON(body)
}

// StatusFor maps a failure to an HTTP status code.
func StatusFor(err error) int {
	switch fault.KindOf(err) {
	case fault.KindConfiguration:
		return fiber.StatusBadRequest
	case fault.KindSchemaMismatch:
		return fiber.StatusUnprocessableEntity
	case fault.KindConnection, fault.KindSourceProtocol:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
