// ABOUTME: Search handler for the Huma API
// ABOUTME: Ranks free courses against a free-text query

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"coursefinder-api/api/dto/mappers"
	"coursefinder-api/api/dto/requests"
	"coursefinder-api/api/dto/responses"
	"coursefinder-api/core/errors"
	"coursefinder-api/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
)

// Presentation messages for the search body
const (
	MessageNoCourses = "No courses available"
	MessageNoResults = "No matching courses found"
)

// SearchHandler handles course search requests
type SearchHandler struct {
	searchService interfaces.SearchService
	logger        interfaces.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService interfaces.SearchService, logger interfaces.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        interfaces.LoggerOrNop(logger),
	}
}

// RegisterRoutes registers the search route
func (h *SearchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "searchCourses",
		Method:      http.MethodGet,
		Path:        "/search",
		Summary:     "Search free courses",
		Description: "Ranks the current course corpus by semantic similarity to the query and returns up to 8 distinct courses",
		Tags:        []string{"Search"},
	}, h.Search)
}

// SearchInput defines the input for the Search operation
type SearchInput struct {
	requests.SearchParams
}

// SearchOutput defines the output for the Search operation
type SearchOutput struct {
	Body responses.SearchResponse
}

// Search handles GET /search
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	results, err := h.searchService.Search(ctx, input.Query)
	if err != nil {
		if errors.IsNoCourses(err) {
			return &SearchOutput{Body: *mappers.ToSearchResponse(input.Query, nil, MessageNoCourses)}, nil
		}
		if !errors.IsValidation(err) {
			h.logger.Error("Search failed", map[string]interface{}{
				"query": input.Query,
				"error": err.Error(),
			})
		}
		return nil, toHumaError(err)
	}

	message := MessageNoResults
	if len(results) > 0 {
		message = fmt.Sprintf("Found %d courses", len(results))
	}

	return &SearchOutput{Body: *mappers.ToSearchResponse(input.Query, results, message)}, nil
}
