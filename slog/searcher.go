// Package slog provides logging decorators for the domain services,
// wrapping them with structured log/slog output.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/rathodv/maya"
)

// Ensure LoggingSearcher implements maya.Searcher.
var _ maya.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with per-query logging.
type LoggingSearcher struct {
	next   maya.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next maya.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string) (results []maya.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("web search",
			"query", query,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}

// SearchAndScrape delegates to the wrapped searcher and logs the
// operation, including how many results came back with article content.
func (s *LoggingSearcher) SearchAndScrape(ctx context.Context, query string) (results []maya.SearchResult, err error) {
	defer func(begin time.Time) {
		scraped := 0
		for _, r := range results {
			if r.Content != "" {
				scraped++
			}
		}
		s.logger.Info("web search with scraping",
			"query", query,
			"results", len(results),
			"scraped", scraped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchAndScrape(ctx, query)
}
