// Package trafilatura provides a boilerplate-removal implementation of
// maya.Extractor. It is the fallback pass of the extraction chain for
// pages whose markup defeats the selector cascade.
package trafilatura

import (
	"bytes"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/rathodv/maya"
)

// Ensure Extractor implements maya.Extractor at compile time.
var _ maya.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract article content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main article content.
// Returns ENOTFOUND when no substantial body is present.
func (e *Extractor) Extract(rawHTML string) (*maya.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, maya.Errorf(maya.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, maya.Errorf(maya.ENOTFOUND, "no article content found: %v", err)
	}
	if result.ContentNode == nil {
		return nil, maya.Errorf(maya.ENOTFOUND, "no article content found")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	var publishedAt string
	if !result.Metadata.Date.IsZero() {
		publishedAt = result.Metadata.Date.Format(time.RFC3339)
	}

	return &maya.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		PublishedAt: publishedAt,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
