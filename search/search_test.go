package search_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rathodv/maya"
	"github.com/rathodv/maya/mock"
	"github.com/rathodv/maya/search"
)

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns cached results without calling providers", func(t *testing.T) {
		t.Parallel()

		cached := []maya.SearchResult{{Title: "Cached", Link: "https://news.example.com/1"}}
		raw, err := json.Marshal(cached)
		require.NoError(t, err)

		providerCalled := false
		s := &search.Searcher{
			Providers: []maya.SearchProvider{
				&mock.SearchProvider{
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						providerCalled = true
						return nil, nil
					},
				},
			},
			Cache: &mock.Cache{
				GetFn: func(_ context.Context, key string) ([]byte, error) {
					assert.Equal(t, maya.SearchCacheKey("latest tech news"), key)
					return raw, nil
				},
			},
		}

		results, err := s.Search(context.Background(), "latest tech news")
		require.NoError(t, err)
		assert.Equal(t, cached, results)
		assert.False(t, providerCalled)
	})

	t.Run("falls through to second provider when first fails", func(t *testing.T) {
		t.Parallel()

		want := []maya.SearchResult{{Title: "Fresh", Link: "https://news.example.com/2"}}
		s := &search.Searcher{
			RetryDelays: []time.Duration{},
			Providers: []maya.SearchProvider{
				&mock.SearchProvider{
					NameFn: func() string { return "primary" },
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						return nil, maya.Errorf(maya.EUNAVAILABLE, "quota exceeded")
					},
				},
				&mock.SearchProvider{
					NameFn: func() string { return "secondary" },
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						return want, nil
					},
				},
			},
		}

		results, err := s.Search(context.Background(), "ai news")
		require.NoError(t, err)
		assert.Equal(t, want, results)
	})

	t.Run("failed provider is skipped during cooldown", func(t *testing.T) {
		t.Parallel()

		var primaryCalls int
		s := &search.Searcher{
			Cooldown:    time.Minute,
			RetryDelays: []time.Duration{},
			Providers: []maya.SearchProvider{
				&mock.SearchProvider{
					NameFn: func() string { return "primary" },
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						primaryCalls++
						return nil, maya.Errorf(maya.EUNAVAILABLE, "down")
					},
				},
				&mock.SearchProvider{
					NameFn: func() string { return "secondary" },
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						return []maya.SearchResult{{Title: "ok", Link: "https://x.example.com"}}, nil
					},
				},
			},
		}

		_, err := s.Search(context.Background(), "first query")
		require.NoError(t, err)
		_, err = s.Search(context.Background(), "second query")
		require.NoError(t, err)

		assert.Equal(t, 1, primaryCalls, "primary should be on cooldown for the second query")
	})

	t.Run("retries a failing provider before failing over", func(t *testing.T) {
		t.Parallel()

		want := []maya.SearchResult{{Title: "Recovered", Link: "https://news.example.com/4"}}
		var primaryCalls, secondaryCalls int
		s := &search.Searcher{
			RetryDelays: []time.Duration{0},
			Providers: []maya.SearchProvider{
				&mock.SearchProvider{
					NameFn: func() string { return "primary" },
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						primaryCalls++
						if primaryCalls == 1 {
							return nil, maya.Errorf(maya.EUNAVAILABLE, "transient blip")
						}
						return want, nil
					},
				},
				&mock.SearchProvider{
					NameFn: func() string { return "secondary" },
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						secondaryCalls++
						return nil, nil
					},
				},
			},
		}

		results, err := s.Search(context.Background(), "flaky upstream")
		require.NoError(t, err)
		assert.Equal(t, want, results)
		assert.Equal(t, 2, primaryCalls, "primary should be retried once")
		assert.Zero(t, secondaryCalls, "a retry that recovers should not fail over")
	})

	t.Run("all providers failing yields empty slice not error", func(t *testing.T) {
		t.Parallel()

		s := &search.Searcher{
			RetryDelays: []time.Duration{},
			Providers: []maya.SearchProvider{
				&mock.SearchProvider{
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						return nil, maya.Errorf(maya.EUNAVAILABLE, "down")
					},
				},
			},
		}

		results, err := s.Search(context.Background(), "anything")
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("stores fresh results in cache with TTL", func(t *testing.T) {
		t.Parallel()

		want := []maya.SearchResult{{Title: "Fresh", Link: "https://news.example.com/3"}}
		var setKey string
		var setTTL time.Duration
		s := &search.Searcher{
			Providers: []maya.SearchProvider{
				&mock.SearchProvider{
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						return want, nil
					},
				},
			},
			Cache: &mock.Cache{
				GetFn: func(_ context.Context, _ string) ([]byte, error) {
					return nil, maya.Errorf(maya.ENOTFOUND, "cache miss")
				},
				SetFn: func(_ context.Context, key string, value []byte, ttl time.Duration) error {
					setKey = key
					setTTL = ttl
					var stored []maya.SearchResult
					require.NoError(t, json.Unmarshal(value, &stored))
					assert.Equal(t, want, stored)
					return nil
				},
			},
		}

		_, err := s.Search(context.Background(), "Quantum Computing")
		require.NoError(t, err)
		assert.Equal(t, maya.SearchCacheKey("Quantum Computing"), setKey)
		assert.Equal(t, maya.SearchCacheTTL, setTTL)
	})
}

func TestSearcher_SearchAndScrape(t *testing.T) {
	t.Parallel()

	t.Run("merges scraped articles into results", func(t *testing.T) {
		t.Parallel()

		s := &search.Searcher{
			Providers: []maya.SearchProvider{
				&mock.SearchProvider{
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						return []maya.SearchResult{
							{Title: "One", Link: "https://news.example.com/a", Snippet: "snippet a"},
							{Title: "Two", Link: "https://news.example.com/b", Snippet: "snippet b"},
						}, nil
					},
				},
			},
			Scraper: &mock.Scraper{
				ScrapeAllFn: func(_ context.Context, urls []string) []maya.Article {
					assert.Equal(t, []string{"https://news.example.com/a", "https://news.example.com/b"}, urls)
					return []maya.Article{
						{URL: "https://news.example.com/a", Text: "full article a", Summary: "summary a"},
					}
				},
			},
		}

		results, err := s.SearchAndScrape(context.Background(), "scrape me")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "full article a", results[0].Content)
		assert.Equal(t, "summary a", results[0].Summary)
		assert.Empty(t, results[1].Content, "unscraped result keeps snippet only")
	})

	t.Run("longer scraped title replaces the provider title", func(t *testing.T) {
		t.Parallel()

		s := &search.Searcher{
			Providers: []maya.SearchProvider{
				&mock.SearchProvider{
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						return []maya.SearchResult{
							{Title: "Short", Link: "https://news.example.com/a"},
							{Title: "A perfectly descriptive headline", Link: "https://news.example.com/b"},
						}, nil
					},
				},
			},
			Scraper: &mock.Scraper{
				ScrapeAllFn: func(_ context.Context, _ []string) []maya.Article {
					return []maya.Article{
						{URL: "https://news.example.com/a", Title: "Short No More: The Full Story", Text: "body a"},
						{URL: "https://news.example.com/b", Title: "tl;dr", Text: "body b"},
					}
				},
			},
		}

		results, err := s.SearchAndScrape(context.Background(), "headlines")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Short No More: The Full Story", results[0].Title)
		assert.Equal(t, "A perfectly descriptive headline", results[1].Title,
			"shorter scraped title should not clobber the provider one")
	})

	t.Run("caps scraped URLs at the limit", func(t *testing.T) {
		t.Parallel()

		many := make([]maya.SearchResult, 10)
		for i := range many {
			many[i] = maya.SearchResult{Link: "https://news.example.com/" + string(rune('a'+i))}
		}

		s := &search.Searcher{
			Providers: []maya.SearchProvider{
				&mock.SearchProvider{
					SearchFn: func(_ context.Context, _ string) ([]maya.SearchResult, error) {
						return many, nil
					},
				},
			},
			Scraper: &mock.Scraper{
				ScrapeAllFn: func(_ context.Context, urls []string) []maya.Article {
					assert.Len(t, urls, maya.MaxScrapeURLs)
					return nil
				},
			},
		}

		_, err := s.SearchAndScrape(context.Background(), "lots of results")
		require.NoError(t, err)
	})
}
