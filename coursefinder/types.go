// ABOUTME: Public types for the Course Finder library API
// ABOUTME: Provides user-friendly types that wrap internal domain models

package coursefinder

import (
	"time"

	"coursefinder-api/core/domain"
)

// Course is a free course found on one of the platforms
type Course struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
	Link     string `json:"link"`
	Platform string `json:"platform"`
}

// SearchResult is a course ranked against a query
type SearchResult struct {
	Course
	// Score is the cosine similarity in [0, 1]
	Score float64 `json:"score"`
}

// Platform describes a configured course source
type Platform struct {
	Name       string `json:"name"`
	ListingURL string `json:"listing_url"`
}

// PlatformStatus reports the last scrape of a platform
type PlatformStatus struct {
	Platform  string        `json:"platform"`
	Count     int           `json:"count"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	ScrapedAt time.Time     `json:"scraped_at"`
}

// RefreshResult summarizes a completed corpus rebuild
type RefreshResult struct {
	Courses    int       `json:"courses"`
	Generation uint64    `json:"generation"`
	BuiltAt    time.Time `json:"built_at"`
}

func domainCourseToPublic(c domain.CourseRecord) Course {
	return Course{
		Title:    c.Title,
		ImageURL: c.ImageURL,
		Link:     c.CourseLink,
		Platform: c.Platform,
	}
}

func domainResultToPublic(r domain.RankedResult) SearchResult {
	return SearchResult{
		Course: Course{
			Title:    r.Title,
			ImageURL: r.ImageURL,
			Link:     r.CourseLink,
			Platform: r.Platform,
		},
		Score: r.Score,
	}
}

func domainStatusToPublic(s domain.PlatformStatus) PlatformStatus {
	return PlatformStatus{
		Platform:  s.Platform,
		Count:     s.Count,
		Error:     s.Error,
		Duration:  s.Duration,
		ScrapedAt: s.ScrapedAt,
	}
}
