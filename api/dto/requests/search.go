// ABOUTME: Request DTOs for search and course listing endpoints
// ABOUTME: Provides query parameter binding and default values for incoming requests

package requests

// SearchParams holds the search query string.
// Length and emptiness are validated by the search service.
type SearchParams struct {
	Query string `query:"q" doc:"Free-text search query, e.g. 'Data Science'"`
}

// ListCoursesParams controls corpus pagination and filtering
type ListCoursesParams struct {
	// Platform restricts the listing to one platform label
	Platform string `query:"platform" doc:"Only list courses from this platform"`

	// Page is the page number for pagination (1-based)
	Page int `query:"page" minimum:"1" default:"1" doc:"Page number (1-based)"`

	// PerPage is the number of courses per page
	PerPage int `query:"per_page" minimum:"1" maximum:"100" default:"20" doc:"Number of courses per page"`
}

// ApplyDefaults sets default values for optional fields
func (p *ListCoursesParams) ApplyDefaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 20
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// RefreshParams controls how a corpus refresh is performed
type RefreshParams struct {
	Async bool `query:"async" doc:"Return immediately and rebuild in the background"`
}
