package maya

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Search tuning constants.
const (
	// SearchCacheTTL is how long search results stay cached.
	SearchCacheTTL = time.Hour

	// MaxArticleLength caps the amount of scraped article text kept
	// per result.
	MaxArticleLength = 3000

	// ScrapeTimeout bounds a single article fetch.
	ScrapeTimeout = 8 * time.Second

	// MaxScrapeConcurrency bounds parallel article fetches.
	MaxScrapeConcurrency = 3

	// MaxScrapeURLs caps how many result URLs get scraped.
	MaxScrapeURLs = 5
)

// SearchResult is a single normalized web search result. Provider
// responses are mapped onto this shape so the rest of the pipeline never
// sees provider wire formats.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`

	// Populated by scraping, empty otherwise.
	Content     string `json:"content,omitempty"`
	Summary     string `json:"summary,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// SearchProvider retrieves raw search results from one upstream engine.
type SearchProvider interface {
	// Search runs the query and returns up to ten normalized results.
	// Returns EUNAVAILABLE if the provider is not configured.
	Search(ctx context.Context, query string) ([]SearchResult, error)

	// Name identifies the provider (e.g. "serpapi").
	Name() string
}

// Searcher runs the full search pipeline: cache lookup, provider
// failover, and optional article scraping.
type Searcher interface {
	// Search returns cached or fresh results for the query. A failure
	// of every provider yields an empty slice, not an error; the chat
	// pipeline degrades rather than breaks.
	Search(ctx context.Context, query string) ([]SearchResult, error)

	// SearchAndScrape is Search followed by concurrent scraping of the
	// top result URLs, merging article content back into the results.
	SearchAndScrape(ctx context.Context, query string) ([]SearchResult, error)
}

// Article is the content scraped from a single result URL.
type Article struct {
	URL         string
	Title       string
	Text        string
	Summary     string
	PublishedAt string
}

// Scraper extracts article content from URLs.
type Scraper interface {
	// ScrapeAll fetches and extracts up to MaxScrapeURLs articles
	// concurrently. Individual failures are dropped, not returned.
	ScrapeAll(ctx context.Context, urls []string) []Article
}

// SearchCacheKey derives the cache key for a query. Queries are
// normalized (trimmed, lowercased) so formatting differences share an
// entry.
func SearchCacheKey(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := sha256.Sum256([]byte(normalized))
	return "search:query:" + hex.EncodeToString(sum[:])[:16]
}

// searchTriggers are substrings that suggest a message needs current
// information from the web.
var searchTriggers = []string{
	"latest", "recent", "current", "today", "now", "this week", "this month",
	"news", "update", "updates", "what's happening", "trending", "new", "recently",
	"search", "find", "look up", "web", "internet", "online",
	"tech", "technology", "gadget", "gadgets", "innovation",
	"2024", "2025", "2026",
	"breaking", "happening", "going on",
	"reuters", "cnn", "wired", "techcrunch", "the verge",
}

// questionTriggers are question shapes that usually want fresh data.
var questionTriggers = []string{
	"what's new", "what is new", "what happened", "what is happening",
	"tell me about", "show me", "find me", "what are", "what is",
	"recent tech", "latest tech", "tech updates", "tech news",
}

// NeedsRealtimeSearch reports whether a user message should trigger a
// web search before generating a response.
func NeedsRealtimeSearch(message string) bool {
	if message == "" {
		return false
	}
	low := strings.ToLower(message)
	for _, trigger := range searchTriggers {
		if strings.Contains(low, trigger) {
			return true
		}
	}
	for _, trigger := range questionTriggers {
		if strings.Contains(low, trigger) {
			return true
		}
	}
	return false
}

// FormatSearchContext renders up to maxResults search results as a block
// ready for inclusion in a model prompt. Scraped content is preferred
// over provider snippets and capped at 1000 characters per result.
func FormatSearchContext(results []SearchResult, maxResults int) string {
	if len(results) == 0 {
		return ""
	}
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}

	var parts []string
	for i, r := range results {
		title := strings.TrimSpace(r.Title)
		snippet := strings.TrimSpace(r.Snippet)
		content := strings.TrimSpace(r.Content)
		summary := strings.TrimSpace(r.Summary)
		if title == "" && snippet == "" && content == "" {
			continue
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "[Result %d]", i+1)
		if title != "" {
			sb.WriteString("\nTitle: " + title)
		}
		switch {
		case summary != "":
			sb.WriteString("\nContent: " + truncate(summary, 1000))
		case content != "":
			sb.WriteString("\nContent: " + truncate(content, 1000))
		case snippet != "":
			sb.WriteString("\nSummary: " + snippet)
		}
		if link := strings.TrimSpace(r.Link); link != "" {
			sb.WriteString("\nSource: " + link)
		}
		parts = append(parts, sb.String())
	}

	return strings.Join(parts, "\n\n")
}

// BuildSearchContext combines the user's stored memory with formatted
// search results into a single context block for the model.
func BuildSearchContext(userMemory string, results []SearchResult) string {
	var parts []string
	if userMemory != "" {
		parts = append(parts, "Personal Memory:\n"+userMemory)
	}
	if formatted := FormatSearchContext(results, 5); formatted != "" {
		parts = append(parts, "Real-Time Web Info:\n"+formatted)
	}
	return strings.Join(parts, "\n\n")
}

// truncate cuts s to at most limit characters, breaking on a word
// boundary where possible.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	if idx := strings.LastIndex(cut, " "); idx > limit/2 {
		cut = cut[:idx]
	}
	return cut
}
