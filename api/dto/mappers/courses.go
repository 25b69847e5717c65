// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Adds presentation-only fields such as fallback images and relevance bands

package mappers

import (
	"time"

	"coursefinder-api/api/dto/responses"
	"coursefinder-api/core/domain"
)

// DefaultImage is shown for platforms without a logo of their own
const DefaultImage = "https://via.placeholder.com/300x180?text=Course+Image"

var platformImages = map[string]string{
	"Coursera":                "https://d3njjcbhbojbot.cloudfront.net/web/images/icons/coursera.svg",
	"Udemy":                   "https://www.udemy.com/staticx/udemy/images/v7/logo-udemy.svg",
	"Analytics Vidhya":        "https://www.analyticsvidhya.com/wp-content/uploads/2015/12/av-logo.png",
	"edX":                     "https://www.edx.org/sites/default/files/theme/edx-logo-header.png",
	"Khan Academy":            "https://cdn.kastatic.org/images/khan-logo-dark-background-2.png",
	"MIT OpenCourseWare":      "https://ocw.mit.edu/images/logo.png",
	"freeCodeCamp":            "https://www.freecodecamp.org/news/content/images/2020/10/fcc_primary.svg",
	"Harvard Online Learning": "https://online-learning.harvard.edu/sites/default/files/styles/social_share/public/2019-11/HarvardX_Logo_Black.png",
}

// Relevance bands
const (
	RelevanceHigh   = "high"
	RelevanceMedium = "medium"
	RelevanceLow    = "low"
)

// FallbackImage returns the platform logo used when a card has no image
func FallbackImage(platform string) string {
	if img, ok := platformImages[platform]; ok {
		return img
	}
	return DefaultImage
}

// DisplayImage returns imageURL, or the platform fallback when it is empty
func DisplayImage(imageURL, platform string) string {
	if imageURL != "" {
		return imageURL
	}
	return FallbackImage(platform)
}

// RelevanceBand buckets a similarity score: above 0.7 is high, above 0.4 medium
func RelevanceBand(score float64) string {
	switch {
	case score > 0.7:
		return RelevanceHigh
	case score > 0.4:
		return RelevanceMedium
	default:
		return RelevanceLow
	}
}

// ToCourseResult converts a ranked result to its API form
func ToCourseResult(r domain.RankedResult) responses.CourseResult {
	return responses.CourseResult{
		Title:        r.Title,
		ImageURL:     r.ImageURL,
		CourseLink:   r.CourseLink,
		Platform:     r.Platform,
		Score:        r.Score,
		DisplayImage: DisplayImage(r.ImageURL, r.Platform),
		Relevance:    RelevanceBand(r.Score),
	}
}

// ToSearchResponse builds the search body, always with a non-nil result list
func ToSearchResponse(query string, results []domain.RankedResult, message string) *responses.SearchResponse {
	out := make([]responses.CourseResult, 0, len(results))
	for _, r := range results {
		out = append(out, ToCourseResult(r))
	}
	return &responses.SearchResponse{
		Query:   query,
		Results: out,
		Total:   len(out),
		Message: message,
	}
}

// ToCourseResponse converts a corpus record to its API form
func ToCourseResponse(c domain.CourseRecord) responses.CourseResponse {
	return responses.CourseResponse{
		Title:        c.Title,
		ImageURL:     c.ImageURL,
		CourseLink:   c.CourseLink,
		Platform:     c.Platform,
		DisplayImage: DisplayImage(c.ImageURL, c.Platform),
	}
}

// ToCoursesPage returns one page of the corpus, optionally filtered by platform.
// Pages past the end are empty rather than an error.
func ToCoursesPage(corpus *domain.Corpus, platform string, page, perPage int) *responses.CoursesPageResponse {
	var courses []domain.CourseRecord
	if corpus != nil {
		courses = corpus.Courses
	}
	if platform != "" {
		courses = corpus.ByPlatform(platform)
	}

	total := len(courses)
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	start := (page - 1) * perPage
	if start > total || start < 0 {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	out := make([]responses.CourseResponse, 0, end-start)
	for _, c := range courses[start:end] {
		out = append(out, ToCourseResponse(c))
	}

	resp := &responses.CoursesPageResponse{
		Courses:    out,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
	if corpus != nil {
		resp.Generation = corpus.Generation
		resp.BuiltAt = builtAt(corpus)
	}
	return resp
}

// ToRefreshResponse summarizes a corpus after a refresh
func ToRefreshResponse(status string, corpus *domain.Corpus) *responses.RefreshResponse {
	resp := &responses.RefreshResponse{Status: status}
	if corpus != nil {
		resp.Courses = corpus.Len()
		resp.Generation = corpus.Generation
		resp.BuiltAt = builtAt(corpus)
	}
	return resp
}

// ToPlatformsResponse pairs each platform with its last scrape status, if any
func ToPlatformsResponse(platforms []domain.PlatformConfig, statuses []domain.PlatformStatus) *responses.PlatformsResponse {
	byName := make(map[string]domain.PlatformStatus, len(statuses))
	for _, s := range statuses {
		byName[s.Platform] = s
	}

	out := make([]responses.PlatformResponse, 0, len(platforms))
	for _, p := range platforms {
		hints := p.HintSets
		if hints == nil {
			hints = []domain.HintRule{}
		}
		pr := responses.PlatformResponse{
			Name:       p.Name,
			ListingURL: p.ListingURL,
			BaseURL:    p.BaseURL,
			HintSets:   hints,
		}
		if s, ok := byName[p.Name]; ok {
			pr.Status = &responses.PlatformStatusResponse{
				Count:      s.Count,
				Error:      s.Error,
				DurationMs: s.Duration.Milliseconds(),
				ScrapedAt:  s.ScrapedAt,
			}
		}
		out = append(out, pr)
	}
	return &responses.PlatformsResponse{Platforms: out}
}

// ToHealthResponse reports corpus size and age alongside the active feature flags
func ToHealthResponse(status string, corpus *domain.Corpus, features map[string]bool) *responses.HealthResponse {
	resp := &responses.HealthResponse{Status: status, Features: features}
	if corpus != nil {
		resp.Courses = corpus.Len()
		resp.Generation = corpus.Generation
		resp.BuiltAt = builtAt(corpus)
	}
	return resp
}

// builtAt returns nil for a corpus that was never built
func builtAt(corpus *domain.Corpus) *time.Time {
	if corpus.Generation == 0 || corpus.BuiltAt.IsZero() {
		return nil
	}
	t := corpus.BuiltAt
	return &t
}
