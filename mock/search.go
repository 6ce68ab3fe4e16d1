package mock

import (
	"context"
	"time"

	"github.com/rathodv/maya"
)

var _ maya.SearchProvider = (*SearchProvider)(nil)

// SearchProvider is a mock implementation of maya.SearchProvider.
type SearchProvider struct {
	SearchFn func(ctx context.Context, query string) ([]maya.SearchResult, error)
	NameFn   func() string
}

func (p *SearchProvider) Search(ctx context.Context, query string) ([]maya.SearchResult, error) {
	return p.SearchFn(ctx, query)
}

func (p *SearchProvider) Name() string {
	if p.NameFn == nil {
		return "mock"
	}
	return p.NameFn()
}

var _ maya.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of maya.Searcher.
type Searcher struct {
	SearchFn          func(ctx context.Context, query string) ([]maya.SearchResult, error)
	SearchAndScrapeFn func(ctx context.Context, query string) ([]maya.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string) ([]maya.SearchResult, error) {
	return s.SearchFn(ctx, query)
}

func (s *Searcher) SearchAndScrape(ctx context.Context, query string) ([]maya.SearchResult, error) {
	return s.SearchAndScrapeFn(ctx, query)
}

var _ maya.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of maya.Scraper.
type Scraper struct {
	ScrapeAllFn func(ctx context.Context, urls []string) []maya.Article
}

func (s *Scraper) ScrapeAll(ctx context.Context, urls []string) []maya.Article {
	return s.ScrapeAllFn(ctx, urls)
}

var _ maya.Cache = (*Cache)(nil)

// Cache is a mock implementation of maya.Cache.
type Cache struct {
	GetFn    func(ctx context.Context, key string) ([]byte, error)
	SetFn    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFn func(ctx context.Context, key string) error
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.GetFn(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.SetFn(ctx, key, value, ttl)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.DeleteFn(ctx, key)
}
