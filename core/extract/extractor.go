// ABOUTME: Card extractor turns a rendered listing page into course records
// ABOUTME: Walks an ordered chain of hint rules and resolves each card field through its own fallbacks

package extract

import (
	"fmt"
	"strings"

	"coursefinder-api/core/domain"
	"coursefinder-api/core/interfaces"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	headingSelector = "h2, h3, h4"

	// free-text titles must be strictly longer than minTitleLen and shorter than maxTitleLen
	minTitleLen = 10
	maxTitleLen = 100
)

// titleClassKeywords mark a heading as the card title
var titleClassKeywords = []string{"title", "heading", "name"}

// Extractor locates course cards in a document using platform hint rules
type Extractor struct {
	logger interfaces.Logger
}

// New creates an Extractor
func New(logger interfaces.Logger) *Extractor {
	return &Extractor{logger: interfaces.LoggerOrNop(logger)}
}

// ExtractHTML parses raw HTML and extracts the platform's course records
func (e *Extractor) ExtractHTML(rawHTML string, platform domain.PlatformConfig) ([]domain.CourseRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return e.Extract(doc, platform), nil
}

// Extract applies the platform's hint rules in order and returns the records
// produced by the first rule that yields any.
func (e *Extractor) Extract(doc *goquery.Document, platform domain.PlatformConfig) []domain.CourseRecord {
	for i, rule := range platform.HintSets {
		records := e.extractRule(doc, rule, platform)
		if len(records) > 0 {
			e.logger.Debug("Hint rule matched", map[string]interface{}{
				"platform": platform.Name,
				"rule":     i,
				"tag":      rule.Tag,
				"records":  len(records),
			})
			return records
		}
	}
	return []domain.CourseRecord{}
}

// extractRule extracts records from the cards matched by one rule
func (e *Extractor) extractRule(doc *goquery.Document, rule domain.HintRule, platform domain.PlatformConfig) []domain.CourseRecord {
	records := make([]domain.CourseRecord, 0)
	findCards(doc, rule).Each(func(_ int, card *goquery.Selection) {
		if record, ok := e.safeExtractCard(card, platform); ok {
			records = append(records, record)
		}
	})
	return records
}

// findCards matches elements of the rule's tag whose class contains any
// keyword, falling back to every element of that tag.
func findCards(doc *goquery.Document, rule domain.HintRule) *goquery.Selection {
	if rule.Tag == "" {
		return doc.Selection.Slice(0, 0)
	}
	all := doc.Find(rule.Tag)
	matched := all.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return classContainsAny(s, rule.Classes)
	})
	if matched.Length() > 0 {
		return matched
	}
	return all
}

// safeExtractCard isolates a single card so one malformed card cannot abort the page
func (e *Extractor) safeExtractCard(card *goquery.Selection, platform domain.PlatformConfig) (record domain.CourseRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Error extracting course card", map[string]interface{}{
				"platform": platform.Name,
				"error":    fmt.Sprint(r),
			})
			record, ok = domain.CourseRecord{}, false
		}
	}()
	return ExtractCard(card, platform)
}

// ExtractCard resolves the title, link and image of a single card.
// It reports false when the card has no usable title or link.
func ExtractCard(card *goquery.Selection, platform domain.PlatformConfig) (domain.CourseRecord, bool) {
	title := findTitle(card)
	if title == "" {
		return domain.CourseRecord{}, false
	}

	href := findLink(card)
	link := platform.ResolveLink(href)
	if link == "" {
		return domain.CourseRecord{}, false
	}

	record := domain.CourseRecord{
		Title:      title,
		ImageURL:   findImage(card, platform),
		CourseLink: link,
		Platform:   platform.Name,
	}
	return record, record.IsValid()
}

// findTitle prefers a title-classed heading, then any heading, then a
// card-like text node.
func findTitle(card *goquery.Selection) string {
	headings := card.Find(headingSelector)

	classed := headings.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return classContainsAny(s, titleClassKeywords)
	})
	if classed.Length() > 0 {
		return normalizeText(classed.First().Text())
	}

	if headings.Length() > 0 {
		return normalizeText(headings.First().Text())
	}

	for _, n := range card.Nodes {
		if text := firstTitleLikeText(n); text != "" {
			return normalizeText(text)
		}
	}
	return ""
}

// firstTitleLikeText returns the first descendant text node whose trimmed
// length is strictly between minTitleLen and maxTitleLen.
func firstTitleLikeText(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text := strings.TrimSpace(c.Data)
			if l := len([]rune(text)); l > minTitleLen && l < maxTitleLen {
				return text
			}
		case html.ElementNode:
			if c.Data == "script" || c.Data == "style" || c.Data == "noscript" {
				continue
			}
			if text := firstTitleLikeText(c); text != "" {
				return text
			}
		}
	}
	return ""
}

// findLink returns the first non-empty href in the card, then in its ancestors
func findLink(card *goquery.Selection) string {
	if href := firstHref(card); href != "" {
		return href
	}
	for parent := card.Parent(); parent.Length() > 0; parent = parent.Parent() {
		if href := firstHref(parent); href != "" {
			return href
		}
	}
	return ""
}

func firstHref(s *goquery.Selection) string {
	var href string
	s.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href = strings.TrimSpace(a.AttrOr("href", ""))
		return href == ""
	})
	return href
}

// findImage returns the first image in the card, then in its ancestors
func findImage(card *goquery.Selection, platform domain.PlatformConfig) string {
	img := card.Find("img").First()
	for parent := card.Parent(); img.Length() == 0 && parent.Length() > 0; parent = parent.Parent() {
		img = parent.Find("img").First()
	}
	if img.Length() == 0 {
		return ""
	}
	src := imageSource(img)
	if src == "" {
		return ""
	}
	return platform.ResolveLink(src)
}

// imageSource reads src, preferring lazy-load attributes over inline placeholders
func imageSource(img *goquery.Selection) string {
	src := strings.TrimSpace(img.AttrOr("src", ""))
	if src != "" && !strings.HasPrefix(src, "data:") {
		return src
	}
	if lazy := strings.TrimSpace(img.AttrOr("data-src", "")); lazy != "" {
		return lazy
	}
	if candidate := strings.Fields(strings.Split(img.AttrOr("srcset", ""), ",")[0]); len(candidate) > 0 {
		return candidate[0]
	}
	return ""
}

// classContainsAny reports whether the lowercased class attribute contains any keyword
func classContainsAny(s *goquery.Selection, keywords []string) bool {
	class, ok := s.Attr("class")
	if !ok || class == "" {
		return false
	}
	class = strings.ToLower(class)
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(class, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// normalizeText trims and collapses internal whitespace
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
