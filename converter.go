package maya

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms article HTML into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	Convert(html string) (string, error)
}
