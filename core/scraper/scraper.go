// ABOUTME: Platform scraper runs the fetch and extract pipeline for a single learning platform
// ABOUTME: Contains every failure at its boundary so one broken platform never stops the others

package scraper

import (
	"context"
	"fmt"
	"time"

	"coursefinder-api/core/domain"
	"coursefinder-api/core/interfaces"
)

// PageFetcher returns the rendered HTML of a listing page
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// CardExtractor turns rendered HTML into course records
type CardExtractor interface {
	ExtractHTML(rawHTML string, platform domain.PlatformConfig) ([]domain.CourseRecord, error)
}

// Result is the outcome of one scrape
type Result struct {
	Records []domain.CourseRecord
	Status  domain.PlatformStatus
}

// Scraper collects the course records of one platform
type Scraper struct {
	platform  domain.PlatformConfig
	fetcher   PageFetcher
	extractor CardExtractor
	logger    interfaces.Logger
	now       func() time.Time
}

// New creates a Scraper for the given platform
func New(platform domain.PlatformConfig, fetcher PageFetcher, extractor CardExtractor, logger interfaces.Logger) *Scraper {
	return &Scraper{
		platform:  platform,
		fetcher:   fetcher,
		extractor: extractor,
		logger:    interfaces.LoggerOrNop(logger),
		now:       time.Now,
	}
}

// Name returns the platform name
func (s *Scraper) Name() string {
	return s.platform.Name
}

// Platform returns the platform configuration
func (s *Scraper) Platform() domain.PlatformConfig {
	return s.platform
}

// Scrape returns the platform's course records, or an empty slice on any failure
func (s *Scraper) Scrape(ctx context.Context) []domain.CourseRecord {
	return s.Run(ctx).Records
}

// Run scrapes the platform and reports the outcome alongside the records.
// It never panics and always returns a non-nil slice.
func (s *Scraper) Run(ctx context.Context) (result Result) {
	start := s.now()
	result.Status.Platform = s.platform.Name

	defer func() {
		if r := recover(); r != nil {
			result.Records = []domain.CourseRecord{}
			result.Status.Error = fmt.Sprintf("panic: %v", r)
			s.logger.Error("Error scraping platform", map[string]interface{}{
				"platform": s.platform.Name,
				"error":    result.Status.Error,
			})
		}
		result.Status.Count = len(result.Records)
		result.Status.ScrapedAt = start
		result.Status.Duration = s.now().Sub(start)
	}()

	records, err := s.scrape(ctx)
	if err != nil {
		s.logger.Error("Error scraping platform", map[string]interface{}{
			"platform": s.platform.Name,
			"url":      s.platform.ListingURL,
			"error":    err.Error(),
		})
		result.Records = []domain.CourseRecord{}
		result.Status.Error = err.Error()
		return result
	}

	s.logger.Info("Scraped platform", map[string]interface{}{
		"platform": s.platform.Name,
		"courses":  len(records),
	})
	result.Records = records
	return result
}

func (s *Scraper) scrape(ctx context.Context) ([]domain.CourseRecord, error) {
	if s.fetcher == nil || s.extractor == nil {
		return nil, fmt.Errorf("scraper for %s is not configured", s.platform.Name)
	}

	page, err := s.fetcher.Fetch(ctx, s.platform.ListingURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.platform.ListingURL, err)
	}

	records, err := s.extractor.ExtractHTML(page, s.platform)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", s.platform.Name, err)
	}
	if records == nil {
		records = []domain.CourseRecord{}
	}
	return records, nil
}
