// Package search provides the real-time web search pipeline.
// It coordinates cached lookups, provider failover, and concurrent
// article scraping of the top results.
package search

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rathodv/maya"
)

var _ maya.Searcher = (*Searcher)(nil)

// defaultCooldown is how long a failing provider sits out before it is
// tried again.
const defaultCooldown = 2 * time.Minute

// Searcher runs queries through a provider chain with a shared cache.
// Providers are tried in order; a provider that errors is placed on a
// cooldown so a dead upstream does not add latency to every query.
type Searcher struct {
	Providers []maya.SearchProvider
	Cache     maya.Cache   // optional
	Scraper   maya.Scraper // optional, used by SearchAndScrape
	Cooldown  time.Duration
	// RetryDelays controls the per-provider retry backoff. A nil slice
	// means DefaultProviderRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration
	Logger      LogFunc // optional

	mu       sync.Mutex
	coolOffs map[string]time.Time
}

// Search returns results for the query, consulting the cache first.
// When every provider fails it returns an empty slice rather than an
// error so the chat pipeline can degrade gracefully.
func (s *Searcher) Search(ctx context.Context, query string) ([]maya.SearchResult, error) {
	if cached, ok := s.cacheGet(ctx, query); ok {
		return cached, nil
	}

	results := s.fromProviders(ctx, query)
	if len(results) > 0 {
		s.cacheSet(ctx, query, results)
	}
	return results, nil
}

// SearchAndScrape is Search followed by concurrent scraping of the top
// result URLs. Scraped article text is merged back into the results and
// the enriched set replaces the plain one in the cache.
func (s *Searcher) SearchAndScrape(ctx context.Context, query string) ([]maya.SearchResult, error) {
	if cached, ok := s.cacheGet(ctx, query); ok {
		return cached, nil
	}

	results := s.fromProviders(ctx, query)
	if len(results) == 0 {
		return results, nil
	}

	if s.Scraper != nil {
		var urls []string
		for _, r := range results {
			if r.Link != "" {
				urls = append(urls, r.Link)
			}
			if len(urls) >= maya.MaxScrapeURLs {
				break
			}
		}

		articles := s.Scraper.ScrapeAll(ctx, urls)
		byURL := make(map[string]maya.Article, len(articles))
		for _, a := range articles {
			byURL[a.URL] = a
		}
		for i := range results {
			a, ok := byURL[results[i].Link]
			if !ok {
				continue
			}
			results[i].Content = a.Text
			results[i].Summary = a.Summary
			if a.PublishedAt != "" {
				results[i].PublishedAt = a.PublishedAt
			}
			if len(a.Title) > len(results[i].Title) {
				results[i].Title = a.Title
			}
		}
	}

	s.cacheSet(ctx, query, results)
	return results, nil
}

// fromProviders walks the provider chain and returns the first
// non-empty response. Each provider gets a bounded retry with backoff
// before it is put on cooldown and the next one is tried.
func (s *Searcher) fromProviders(ctx context.Context, query string) []maya.SearchResult {
	for _, p := range s.Providers {
		if s.coolingOff(p.Name()) {
			continue
		}

		results, err := s.searchWithRetry(ctx, p, query)
		if err != nil {
			s.logf("search provider %s failed: %v", p.Name(), err)
			s.startCooldown(p.Name())
			continue
		}
		if len(results) == 0 {
			continue
		}
		return results
	}
	return []maya.SearchResult{}
}

func (s *Searcher) searchWithRetry(ctx context.Context, p maya.SearchProvider, query string) ([]maya.SearchResult, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultProviderRetryDelays()
	}

	var lastErr error
	for attempt := 0; attempt < len(delays)+1; attempt++ {
		results, err := p.Search(ctx, query)
		if err == nil {
			return results, nil
		}
		lastErr = err

		if attempt >= len(delays) {
			break
		}

		s.logf("retrying search provider %s (attempt %d): %v", p.Name(), attempt+2, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return nil, lastErr
}

func (s *Searcher) cacheGet(ctx context.Context, query string) ([]maya.SearchResult, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, maya.SearchCacheKey(query))
	if err != nil {
		return nil, false
	}
	var results []maya.SearchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (s *Searcher) cacheSet(ctx context.Context, query string, results []maya.SearchResult) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, maya.SearchCacheKey(query), raw, maya.SearchCacheTTL); err != nil {
		s.logf("search cache write failed: %v", err)
	}
}

func (s *Searcher) coolingOff(provider string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.coolOffs[provider]
	return ok && time.Now().Before(until)
}

func (s *Searcher) startCooldown(provider string) {
	cooldown := s.Cooldown
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coolOffs == nil {
		s.coolOffs = make(map[string]time.Time)
	}
	s.coolOffs[provider] = time.Now().Add(cooldown)
}

func (s *Searcher) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger(format, args...)
	}
}
