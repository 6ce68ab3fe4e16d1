package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rathodv/maya"
	"github.com/rathodv/maya/bloom"
)

var _ maya.Scraper = (*Scraper)(nil)

const (
	// minArticleLength drops pages whose extracted text is too short to
	// be a real article.
	minArticleLength = 100

	// summaryLength caps the per-article summary passed to the model.
	summaryLength = 500

	// dedupeExpectedURLs sizes the Bloom filters for a process lifetime.
	dedupeExpectedURLs = 10000

	// dedupeFalsePositiveRate is acceptable: a false positive only
	// means one article gets skipped.
	dedupeFalsePositiveRate = 0.01
)

// Scraper fetches result URLs concurrently and extracts article text.
// Extractors are tried in order until one finds a substantial body, so
// a fast selector-based pass can front a heavier boilerplate-removal
// fallback.
type Scraper struct {
	Fetcher     maya.Fetcher
	Extractors  []maya.Extractor
	Converter   maya.Converter
	RateLimiter maya.DomainLimiter // optional
	Concurrency int
	Timeout     time.Duration
	RetryDelays []time.Duration
	Logger      LogFunc // optional

	once      sync.Once
	seenURLs  *bloom.Filter
	seenBody  *bloom.Filter
	dedupedMu sync.Mutex
}

// ScrapeAll fetches and extracts articles from the given URLs, at most
// Concurrency at a time. Individual failures and duplicates are dropped;
// the returned slice preserves input order.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string) []maya.Article {
	s.once.Do(func() {
		s.seenURLs = bloom.NewFilter(dedupeExpectedURLs, dedupeFalsePositiveRate)
		s.seenBody = bloom.NewFilter(dedupeExpectedURLs, dedupeFalsePositiveRate)
	})

	if len(urls) > maya.MaxScrapeURLs {
		urls = urls[:maya.MaxScrapeURLs]
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = maya.MaxScrapeConcurrency
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = maya.ScrapeTimeout
	}

	articles := make([]*maya.Article, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			article, err := s.scrapeOne(gctx, u, timeout)
			if err != nil {
				s.logf("scrape %s: %v", u, err)
				return nil // failures degrade, never abort the batch
			}
			articles[i] = article
			return nil
		})
	}
	_ = g.Wait()

	out := make([]maya.Article, 0, len(urls))
	for _, a := range articles {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// scrapeOne fetches a single URL and extracts its article text.
func (s *Scraper) scrapeOne(ctx context.Context, rawURL string, timeout time.Duration) (*maya.Article, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, maya.Errorf(maya.EINVALID, "invalid article URL %q", rawURL)
	}

	if s.alreadySeen(s.seenURLs, rawURL) {
		return nil, maya.Errorf(maya.ECONFLICT, "already scraped")
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, rawURL, s.Fetcher.Fetch, s.Logger, delays)
	if err != nil {
		return nil, err
	}

	extracted, err := s.extract(html)
	if err != nil {
		return nil, err
	}

	text := extracted.ContentHTML
	if s.Converter != nil {
		if md, err := s.Converter.Convert(extracted.ContentHTML); err == nil {
			text = md
		}
	}
	text = strings.TrimSpace(text)
	if len(text) < minArticleLength {
		return nil, maya.Errorf(maya.ENOTFOUND, "article body too short")
	}

	// Same story republished under a different URL hashes identically.
	if s.alreadySeen(s.seenBody, contentHash(text)) {
		return nil, maya.Errorf(maya.ECONFLICT, "duplicate article body")
	}

	if len(text) > maya.MaxArticleLength {
		text = text[:maya.MaxArticleLength]
	}

	return &maya.Article{
		URL:         rawURL,
		Title:       extracted.Title,
		Text:        text,
		Summary:     summarize(text),
		PublishedAt: extracted.PublishedAt,
	}, nil
}

// extract tries each extractor in order.
func (s *Scraper) extract(html string) (*maya.ExtractResult, error) {
	var lastErr error
	for _, e := range s.Extractors {
		result, err := e.Extract(html)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = maya.Errorf(maya.EINTERNAL, "no extractors configured")
	}
	return nil, lastErr
}

func (s *Scraper) alreadySeen(filter *bloom.Filter, key string) bool {
	s.dedupedMu.Lock()
	defer s.dedupedMu.Unlock()
	if filter.Test(key) {
		return true
	}
	filter.Add(key)
	return false
}

func (s *Scraper) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger(format, args...)
	}
}

// summarize takes the opening of the article text, cut on a sentence or
// word boundary.
func summarize(text string) string {
	if len(text) <= summaryLength {
		return text
	}
	cut := text[:summaryLength]
	if idx := strings.LastIndexAny(cut, ".!?"); idx > summaryLength/2 {
		return strings.TrimSpace(cut[:idx+1])
	}
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}

// contentHash computes an xxhash of the article text for duplicate
// detection.
func contentHash(text string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(text))
}
