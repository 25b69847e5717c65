// ABOUTME: Response DTOs for search, course listing and service status endpoints
// ABOUTME: Shapes domain results for API consumers with presentation fields added

package responses

import (
	"time"

	"coursefinder-api/core/domain"
)

// CourseResult is one ranked search hit
type CourseResult struct {
	Title        string  `json:"title"`
	ImageURL     string  `json:"image_url"`
	CourseLink   string  `json:"course_link"`
	Platform     string  `json:"platform"`
	Score        float64 `json:"score" minimum:"0" maximum:"1"`
	DisplayImage string  `json:"display_image" doc:"Image URL with a platform fallback when the card had none"`
	Relevance    string  `json:"relevance" enum:"high,medium,low"`
}

// SearchResponse is the body of GET /search
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []CourseResult `json:"results"`
	Total   int            `json:"total"`
	Message string         `json:"message,omitempty"`
}

// CourseResponse is one corpus entry
type CourseResponse struct {
	Title        string `json:"title"`
	ImageURL     string `json:"image_url"`
	CourseLink   string `json:"course_link"`
	Platform     string `json:"platform"`
	DisplayImage string `json:"display_image"`
}

// CoursesPageResponse is the body of GET /courses
type CoursesPageResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
	Generation uint64           `json:"generation"`
	BuiltAt    *time.Time       `json:"built_at,omitempty"`
}

// RefreshResponse is the body of POST /courses/refresh
type RefreshResponse struct {
	Status     string     `json:"status" enum:"completed,accepted"`
	Courses    int        `json:"courses"`
	Generation uint64     `json:"generation"`
	BuiltAt    *time.Time `json:"built_at,omitempty"`
}

// PlatformStatusResponse reports the last scrape of a platform
type PlatformStatusResponse struct {
	Count      int       `json:"count"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	ScrapedAt  time.Time `json:"scraped_at"`
}

// PlatformResponse describes one configured platform
type PlatformResponse struct {
	Name       string                  `json:"name"`
	ListingURL string                  `json:"listing_url"`
	BaseURL    string                  `json:"base_url,omitempty"`
	HintSets   []domain.HintRule       `json:"hint_sets"`
	Status     *PlatformStatusResponse `json:"status,omitempty"`
}

// PlatformsResponse is the body of GET /platforms
type PlatformsResponse struct {
	Platforms []PlatformResponse `json:"platforms"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status     string          `json:"status" enum:"ok,starting,degraded"`
	Courses    int             `json:"courses"`
	Generation uint64          `json:"generation"`
	BuiltAt    *time.Time      `json:"built_at,omitempty"`
	Features   map[string]bool `json:"features,omitempty"`
}
