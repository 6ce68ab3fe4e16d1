package maya

// ExtractResult holds the extracted content of an article page.
type ExtractResult struct {
	// Title is the article title from page metadata or headings.
	Title string

	// ContentHTML is the main article body as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// PublishedAt is the publication date if one was found, as
	// RFC 3339, otherwise empty.
	PublishedAt string
}

// Extractor extracts the main article content from HTML pages,
// removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Returns ENOTFOUND when no substantial article body is present.
	Extract(html string) (*ExtractResult, error)
}
