// ABOUTME: Course corpus handlers for the Huma API
// ABOUTME: Lists the aggregated corpus and triggers rebuilds

package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"coursefinder-api/api/dto/mappers"
	"coursefinder-api/api/dto/requests"
	"coursefinder-api/api/dto/responses"
	"coursefinder-api/core/errors"
	"coursefinder-api/core/interfaces"
	"coursefinder-api/core/workers"
	"coursefinder-api/pkg/featureflags"
	"github.com/danielgtaylor/huma/v2"
)

// Refresh statuses
const (
	RefreshCompleted = "completed"
	RefreshAccepted  = "accepted"
)

// RefreshTrigger schedules a background rebuild
type RefreshTrigger interface {
	Trigger() error
}

// CourseHandler handles corpus listing and refresh requests
type CourseHandler struct {
	corpus  interfaces.CorpusProvider
	trigger RefreshTrigger
	flags   featureflags.Manager
	logger  interfaces.Logger
}

// NewCourseHandler creates a new course handler.
// trigger may be nil, in which case every refresh runs synchronously.
func NewCourseHandler(corpus interfaces.CorpusProvider, trigger RefreshTrigger, flags featureflags.Manager, logger interfaces.Logger) *CourseHandler {
	if flags == nil {
		flags = featureflags.NewStaticManager(nil)
	}
	return &CourseHandler{
		corpus:  corpus,
		trigger: trigger,
		flags:   flags,
		logger:  interfaces.LoggerOrNop(logger),
	}
}

// RegisterRoutes registers all course routes
func (h *CourseHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listCourses",
		Method:      http.MethodGet,
		Path:        "/courses",
		Summary:     "List aggregated courses",
		Description: "Returns one page of the current course corpus, optionally filtered by platform",
		Tags:        []string{"Courses"},
	}, h.ListCourses)

	huma.Register(api, huma.Operation{
		OperationID:   "refreshCourses",
		Method:        http.MethodPost,
		Path:          "/courses/refresh",
		Summary:       "Rebuild the course corpus",
		Description:   "Scrapes every platform again. With async=true the rebuild runs in the background and 202 is returned",
		Tags:          []string{"Courses"},
		DefaultStatus: http.StatusOK,
	}, h.RefreshCourses)
}

// ListCoursesInput defines the input for the ListCourses operation
type ListCoursesInput struct {
	requests.ListCoursesParams
}

// ListCoursesOutput defines the output for the ListCourses operation
type ListCoursesOutput struct {
	Body responses.CoursesPageResponse
}

// ListCourses handles GET /courses
func (h *CourseHandler) ListCourses(ctx context.Context, input *ListCoursesInput) (*ListCoursesOutput, error) {
	params := input.ListCoursesParams
	params.ApplyDefaults()

	if params.Platform != "" && !h.knownPlatform(params.Platform) {
		return nil, toHumaError(&errors.NotFoundError{Resource: "platform", ID: params.Platform})
	}

	corpus := h.corpus.GetCorpus(ctx)
	return &ListCoursesOutput{Body: *mappers.ToCoursesPage(corpus, params.Platform, params.Page, params.PerPage)}, nil
}

func (h *CourseHandler) knownPlatform(name string) bool {
	for _, p := range h.corpus.Platforms() {
		if p.Name == name {
			return true
		}
	}
	return false
}

// RefreshCoursesInput defines the input for the RefreshCourses operation
type RefreshCoursesInput struct {
	requests.RefreshParams
}

// RefreshCoursesOutput defines the output for the RefreshCourses operation
type RefreshCoursesOutput struct {
	Status int
	Body   responses.RefreshResponse
}

// RefreshCourses handles POST /courses/refresh
func (h *CourseHandler) RefreshCourses(ctx context.Context, input *RefreshCoursesInput) (*RefreshCoursesOutput, error) {
	if input.Async && h.trigger != nil && h.flags.IsEnabled(ctx, featureflags.AsyncRefresh) {
		err := h.trigger.Trigger()
		switch {
		case err == nil, stderrors.Is(err, workers.ErrRefreshPending):
			return &RefreshCoursesOutput{
				Status: http.StatusAccepted,
				Body:   *mappers.ToRefreshResponse(RefreshAccepted, h.corpus.Current()),
			}, nil
		case stderrors.Is(err, workers.ErrWorkerNotRunning):
			h.logger.Warn("Refresh worker not running, refreshing synchronously", nil)
		default:
			return nil, toHumaError(err)
		}
	}

	corpus, err := h.corpus.Refresh(ctx)
	if err != nil {
		h.logger.Error("Corpus refresh failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, toHumaError(err)
	}

	return &RefreshCoursesOutput{
		Status: http.StatusOK,
		Body:   *mappers.ToRefreshResponse(RefreshCompleted, corpus),
	}, nil
}
