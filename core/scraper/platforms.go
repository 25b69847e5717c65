// ABOUTME: Built-in platform table with listing URLs and card hint sets
// ABOUTME: Used when no platforms file overrides it

package scraper

import "coursefinder-api/core/domain"

var genericCardClasses = []string{"course-card", "course-item", "course"}

// cardClasses returns the generic card keywords followed by the platform-specific ones
func cardClasses(extra ...string) []string {
	classes := make([]string, 0, len(genericCardClasses)+len(extra))
	classes = append(classes, genericCardClasses...)
	return append(classes, extra...)
}

// DefaultPlatforms returns the built-in platform configurations in registration order
func DefaultPlatforms() []domain.PlatformConfig {
	return []domain.PlatformConfig{
		{
			Name:       "Coursera",
			ListingURL: "https://www.coursera.org/courses?query=free",
			BaseURL:    "https://www.coursera.org",
			HintSets: []domain.HintRule{
				{Tag: "li", Classes: cardClasses("ais-InfiniteHits-item", "cds-ProductCard")},
				{Tag: "div", Classes: cardClasses("cds-ProductCard")},
				{Tag: "article", Classes: cardClasses()},
			},
		},
		{
			Name:       "Udemy",
			ListingURL: "https://www.udemy.com/courses/free/",
			BaseURL:    "https://www.udemy.com",
			HintSets: []domain.HintRule{
				{Tag: "div", Classes: cardClasses("course-card--container")},
				{Tag: "article", Classes: cardClasses()},
				{Tag: "div", Classes: []string{"course-card--container"}},
			},
		},
		{
			Name:       "Analytics Vidhya",
			ListingURL: "https://courses.analyticsvidhya.com/",
			BaseURL:    "https://courses.analyticsvidhya.com",
			HintSets: []domain.HintRule{
				{Tag: "div", Classes: cardClasses("course-card__img-container")},
				{Tag: "article", Classes: cardClasses()},
				{Tag: "header", Classes: []string{"course-card__img-container"}},
			},
		},
		{
			Name:       "edX",
			ListingURL: "https://www.edx.org/search?subject=Computer+Science&price=price-free",
			HintSets: []domain.HintRule{
				{Tag: "div", Classes: cardClasses("discovery-card")},
				{Tag: "article", Classes: cardClasses()},
				{Tag: "div", Classes: []string{"discovery-card"}},
			},
		},
		{
			Name:       "Khan Academy",
			ListingURL: "https://www.khanacademy.org/computing",
			HintSets: []domain.HintRule{
				{Tag: "div", Classes: cardClasses("_1q7xw7")},
				{Tag: "article", Classes: cardClasses()},
				{Tag: "div", Classes: []string{"_1q7xw7"}},
			},
		},
		{
			Name:       "MIT OpenCourseWare",
			ListingURL: "https://ocw.mit.edu/search/?t=Computer%20Science",
			HintSets: []domain.HintRule{
				{Tag: "div", Classes: cardClasses("coursePreview")},
				{Tag: "article", Classes: cardClasses()},
				{Tag: "div", Classes: []string{"coursePreview"}},
			},
		},
		{
			Name:       "freeCodeCamp",
			ListingURL: "https://www.freecodecamp.org/learn/",
			HintSets: []domain.HintRule{
				{Tag: "div", Classes: cardClasses("block")},
				{Tag: "article", Classes: cardClasses()},
				{Tag: "div", Classes: []string{"block"}},
			},
		},
		{
			Name:       "Harvard Online Learning",
			ListingURL: "https://online-learning.harvard.edu/catalog?keywords=&subject%5B%5D=2&max_price=&start_date=&availability%5B%5D=1",
			HintSets: []domain.HintRule{
				{Tag: "div", Classes: cardClasses("course-card--container")},
				{Tag: "article", Classes: cardClasses()},
				{Tag: "div", Classes: []string{"course-card--container"}},
			},
		},
	}
}
