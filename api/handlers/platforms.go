// ABOUTME: Platform and health handlers for the Huma API
// ABOUTME: Reports configured platforms, last scrape outcomes and service health

package handlers

import (
	"context"
	"net/http"

	"coursefinder-api/api/dto/mappers"
	"coursefinder-api/api/dto/responses"
	"coursefinder-api/core/interfaces"
	"coursefinder-api/pkg/featureflags"
	"github.com/danielgtaylor/huma/v2"
)

// Health statuses
const (
	HealthOK       = "ok"
	HealthStarting = "starting"
	HealthDegraded = "degraded"
)

// StatusHandler handles platform listing and health checks
type StatusHandler struct {
	corpus interfaces.CorpusProvider
	flags  featureflags.Manager
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(corpus interfaces.CorpusProvider, flags featureflags.Manager) *StatusHandler {
	return &StatusHandler{corpus: corpus, flags: flags}
}

// RegisterRoutes registers the platform and health routes
func (h *StatusHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listPlatforms",
		Method:      http.MethodGet,
		Path:        "/platforms",
		Summary:     "List course platforms",
		Description: "Returns every configured platform with its card hint sets and the outcome of its last scrape",
		Tags:        []string{"Platforms"},
	}, h.ListPlatforms)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Tags:        []string{"Health"},
	}, h.Health)
}

// PlatformsOutput defines the output for the ListPlatforms operation
type PlatformsOutput struct {
	Body responses.PlatformsResponse
}

// ListPlatforms handles GET /platforms
func (h *StatusHandler) ListPlatforms(ctx context.Context, _ *struct{}) (*PlatformsOutput, error) {
	return &PlatformsOutput{Body: *mappers.ToPlatformsResponse(h.corpus.Platforms(), h.corpus.Statuses())}, nil
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /health. It never triggers a rebuild.
func (h *StatusHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	corpus := h.corpus.Current()

	status := HealthOK
	switch {
	case corpus.Generation == 0:
		status = HealthStarting
	case corpus.IsEmpty():
		status = HealthDegraded
	}

	var features map[string]bool
	if h.flags != nil {
		features = make(map[string]bool)
		for flag, enabled := range h.flags.GetAllFlags() {
			features[string(flag)] = enabled
		}
	}

	return &HealthOutput{Body: *mappers.ToHealthResponse(status, corpus, features)}, nil
}
