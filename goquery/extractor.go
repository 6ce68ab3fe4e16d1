// Package goquery provides a CSS-selector based implementation of
// maya.Extractor. It is the fast first pass of the extraction chain:
// it finds the article container by a cascade of common selectors and
// strips page chrome, leaving heavier boilerplate analysis to the
// trafilatura fallback.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rathodv/maya"
)

// Ensure Extractor implements maya.Extractor at compile time.
var _ maya.Extractor = (*Extractor)(nil)

// containerSelectors is the cascade tried in order for the article
// body. The first match with enough text wins.
var containerSelectors = []string{
	"article",
	"main",
	"[role='main']",
	".article-content",
	".article-body",
	".post-content",
	".story-body",
	".entry-content",
	"#content",
	".content",
}

// chromeSelectors are removed from the matched container before the
// content is returned.
var chromeSelectors = []string{
	"script", "style", "noscript", "iframe", "form",
	"nav", "header", "footer", "aside",
	".advertisement", ".newsletter-signup", ".related-articles",
	".social-share", ".comments",
}

// minContainerText is the minimum text length for a container to count
// as the article body.
const minContainerText = 200

// Extractor extracts article content using CSS selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main article content.
// Returns ENOTFOUND when no selector matches a substantial body.
func (e *Extractor) Extract(html string) (*maya.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, maya.Errorf(maya.EINVALID, "failed to parse HTML: %v", err)
	}

	container := findContainer(doc)
	if container == nil {
		return nil, maya.Errorf(maya.ENOTFOUND, "no article content found")
	}

	container.Find(strings.Join(chromeSelectors, ", ")).Remove()

	contentHTML, err := goquery.OuterHtml(container)
	if err != nil {
		return nil, maya.Errorf(maya.EINTERNAL, "failed to render content: %v", err)
	}

	return &maya.ExtractResult{
		Title:       extractTitle(doc),
		ContentHTML: contentHTML,
		PublishedAt: extractPublishedAt(doc),
	}, nil
}

// findContainer walks the selector cascade and returns the first
// container with substantial text.
func findContainer(doc *goquery.Document) *goquery.Selection {
	for _, selector := range containerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.Text())
		if len(text) >= minContainerText {
			return sel
		}
	}
	return nil
}

// extractTitle tries Open Graph metadata, then headings, then the
// page title.
func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		if title := strings.TrimSpace(og); title != "" {
			return title
		}
	}
	for _, selector := range []string{"h1", ".article-title", ".headline"} {
		if title := strings.TrimSpace(doc.Find(selector).First().Text()); title != "" {
			return title
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractPublishedAt looks for publication date metadata.
func extractPublishedAt(doc *goquery.Document) string {
	if t, ok := doc.Find("meta[property='article:published_time']").Attr("content"); ok {
		return strings.TrimSpace(t)
	}
	if t, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		return strings.TrimSpace(t)
	}
	return ""
}
