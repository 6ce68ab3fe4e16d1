// Package readability provides a go-readability-based implementation
// of maya.Extractor. It serves as the last fallback in the scraping
// chain for pages where selector- and trafilatura-based extraction
// come up empty.
package readability

import (
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/rathodv/maya"
)

// Ensure Extractor implements maya.Extractor at compile time.
var _ maya.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract article content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main article content.
func (e *Extractor) Extract(rawHTML string) (*maya.ExtractResult, error) {
	if rawHTML == "" {
		return nil, maya.Errorf(maya.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, maya.Errorf(maya.ENOTFOUND, "no article content found")
	}

	result := &maya.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}
	if article.PublishedTime != nil {
		result.PublishedAt = article.PublishedTime.Format(time.RFC3339)
	}
	return result, nil
}
