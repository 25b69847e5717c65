// ABOUTME: Course domain models for scraped course listings and ranked search results
// ABOUTME: Defines the corpus snapshot shared between the aggregator and the search service

package domain

import (
	"strings"
	"time"
)

// CourseRecord represents a single course card scraped from a platform listing
type CourseRecord struct {
	// Title is the course title and the identity key for deduplication
	Title string `json:"title"`

	// ImageURL is the card thumbnail, possibly empty
	ImageURL string `json:"image_url"`

	// CourseLink is the absolute URL of the course page
	CourseLink string `json:"course_link"`

	// Platform is the label of the platform the record was scraped from
	Platform string `json:"platform"`
}

// IsValid reports whether the record can be accepted into a corpus
func (c CourseRecord) IsValid() bool {
	return strings.TrimSpace(c.Title) != "" && strings.TrimSpace(c.CourseLink) != ""
}

// Corpus is an immutable, deduplicated snapshot of all known courses.
// A corpus is never modified after it has been published.
type Corpus struct {
	// Courses holds the records in first-seen order
	Courses []CourseRecord

	// BuiltAt is when the corpus was assembled
	BuiltAt time.Time

	// Generation increases with every published rebuild; zero means never built
	Generation uint64
}

// EmptyCorpus returns a corpus with no courses that was never built
func EmptyCorpus() *Corpus {
	return &Corpus{Courses: []CourseRecord{}}
}

// Len returns the number of courses in the corpus
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Courses)
}

// IsEmpty reports whether the corpus holds no courses
func (c *Corpus) IsEmpty() bool {
	return c.Len() == 0
}

// Titles returns the course titles in corpus order
func (c *Corpus) Titles() []string {
	if c == nil {
		return nil
	}
	titles := make([]string, len(c.Courses))
	for i, course := range c.Courses {
		titles[i] = course.Title
	}
	return titles
}

// ByPlatform returns the courses scraped from the given platform
func (c *Corpus) ByPlatform(platform string) []CourseRecord {
	if c == nil {
		return nil
	}
	out := make([]CourseRecord, 0)
	for _, course := range c.Courses {
		if course.Platform == platform {
			out = append(out, course)
		}
	}
	return out
}

// DedupByTitle drops records whose title was already seen, keeping the first
// occurrence and the original order. Invalid records are dropped as well.
func DedupByTitle(records []CourseRecord) []CourseRecord {
	seen := make(map[string]struct{}, len(records))
	unique := make([]CourseRecord, 0, len(records))
	for _, record := range records {
		if !record.IsValid() {
			continue
		}
		if _, ok := seen[record.Title]; ok {
			continue
		}
		seen[record.Title] = struct{}{}
		unique = append(unique, record)
	}
	return unique
}

// RankedResult is a course matched against a search query
type RankedResult struct {
	Title      string  `json:"title"`
	ImageURL   string  `json:"image_url"`
	CourseLink string  `json:"course_link"`
	Platform   string  `json:"platform"`
	Score      float64 `json:"score"`
}

// NewRankedResult builds a result from a course record and its similarity score
func NewRankedResult(course CourseRecord, score float64) RankedResult {
	return RankedResult{
		Title:      course.Title,
		ImageURL:   course.ImageURL,
		CourseLink: course.CourseLink,
		Platform:   course.Platform,
		Score:      score,
	}
}
