package pipeline

import (
	"github.com/gofiber/fiber/v2"
)

// Feature exposes the pipeline over HTTP.
type Feature struct {
	handler *Handler
}

// NewFeature creates the HTTP feature around handler.
func NewFeature(handler *Handler) *Feature {
	return &Feature{handler: handler}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "pipeline"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
