package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rathodv/maya"
)

// DefaultProviderTimeout bounds a single provider API call.
const DefaultProviderTimeout = 10 * time.Second

const serpAPIBaseURL = "https://serpapi.com/search.json"

var _ maya.SearchProvider = (*SerpAPIProvider)(nil)

// SerpAPIProvider queries the SerpAPI Google engine.
type SerpAPIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limit   int
}

// SerpAPIOption configures a SerpAPIProvider.
type SerpAPIOption func(*SerpAPIProvider)

// WithSerpAPIBaseURL overrides the API endpoint, for tests.
func WithSerpAPIBaseURL(u string) SerpAPIOption {
	return func(p *SerpAPIProvider) {
		p.baseURL = u
	}
}

// WithSerpAPILimit sets the number of results requested per query.
func WithSerpAPILimit(n int) SerpAPIOption {
	return func(p *SerpAPIProvider) {
		p.limit = n
	}
}

// NewSerpAPIProvider creates a provider backed by SerpAPI. An empty API
// key yields a provider whose Search always returns EUNAVAILABLE, which
// lets the failover chain skip past it.
func NewSerpAPIProvider(apiKey string, opts ...SerpAPIOption) *SerpAPIProvider {
	p := &SerpAPIProvider{
		apiKey:  apiKey,
		baseURL: serpAPIBaseURL,
		client:  &http.Client{Timeout: DefaultProviderTimeout},
		limit:   10,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name identifies the provider.
func (p *SerpAPIProvider) Name() string { return "serpapi" }

// serpAPIResponse is the subset of the SerpAPI payload we consume.
type serpAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Source  string `json:"source"`
		Date    string `json:"date"`
	} `json:"organic_results"`
	Error string `json:"error"`
}

// Search runs the query against SerpAPI and normalizes the organic
// results.
func (p *SerpAPIProvider) Search(ctx context.Context, query string) ([]maya.SearchResult, error) {
	if p.apiKey == "" {
		return nil, maya.Errorf(maya.EUNAVAILABLE, "SerpAPI key not configured")
	}

	q := url.Values{}
	q.Set("engine", "google")
	q.Set("q", query)
	q.Set("num", strconv.Itoa(p.limit))
	q.Set("api_key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload serpAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("serpapi: decode response: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("serpapi: %s", payload.Error)
	}

	results := make([]maya.SearchResult, 0, len(payload.OrganicResults))
	for _, r := range payload.OrganicResults {
		if r.Link == "" {
			continue
		}
		// Prefer the publication name; fall back to the provider.
		source := r.Source
		if source == "" {
			source = p.Name()
		}
		results = append(results, maya.SearchResult{
			Title:       r.Title,
			Link:        r.Link,
			Snippet:     r.Snippet,
			Source:      source,
			PublishedAt: r.Date,
		})
	}
	return results, nil
}
