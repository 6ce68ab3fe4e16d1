package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rathodv/maya"
)

const googleBaseURL = "https://www.googleapis.com/customsearch/v1"

var _ maya.SearchProvider = (*GoogleProvider)(nil)

// GoogleProvider queries the Google Custom Search JSON API. It serves
// as the fallback when SerpAPI is unavailable or out of quota.
type GoogleProvider struct {
	apiKey  string
	cxID    string
	baseURL string
	client  *http.Client
	limit   int
}

// GoogleOption configures a GoogleProvider.
type GoogleOption func(*GoogleProvider)

// WithGoogleBaseURL overrides the API endpoint, for tests.
func WithGoogleBaseURL(u string) GoogleOption {
	return func(p *GoogleProvider) {
		p.baseURL = u
	}
}

// NewGoogleProvider creates a provider backed by Google Custom Search.
// Both the API key and the search engine ID (cx) are required; with
// either missing, Search returns EUNAVAILABLE.
func NewGoogleProvider(apiKey, cxID string, opts ...GoogleOption) *GoogleProvider {
	p := &GoogleProvider{
		apiKey:  apiKey,
		cxID:    cxID,
		baseURL: googleBaseURL,
		client:  &http.Client{Timeout: DefaultProviderTimeout},
		limit:   10,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name identifies the provider.
func (p *GoogleProvider) Name() string { return "google" }

// googleResponse is the subset of the Custom Search payload we consume.
type googleResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Snippet     string `json:"snippet"`
		DisplayLink string `json:"displayLink"`
	} `json:"items"`
}

// Search runs the query against Google Custom Search and normalizes the
// items. The API caps num at 10.
func (p *GoogleProvider) Search(ctx context.Context, query string) ([]maya.SearchResult, error) {
	if p.apiKey == "" || p.cxID == "" {
		return nil, maya.Errorf(maya.EUNAVAILABLE, "Google Custom Search not configured")
	}

	limit := p.limit
	if limit > 10 {
		limit = 10
	}

	q := url.Values{}
	q.Set("key", p.apiKey)
	q.Set("cx", p.cxID)
	q.Set("q", query)
	q.Set("num", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, maya.Errorf(maya.EUNAVAILABLE, "Google Custom Search quota exceeded")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google search: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload googleResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("google search: decode response: %w", err)
	}

	results := make([]maya.SearchResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Link == "" {
			continue
		}
		// Prefer the result's own domain; fall back to the provider.
		source := item.DisplayLink
		if source == "" {
			source = p.Name()
		}
		results = append(results, maya.SearchResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
			Source:  source,
		})
	}
	return results, nil
}
