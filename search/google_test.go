package search_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rathodv/maya"
	"github.com/rathodv/maya/search"
)

func TestGoogleProvider_Search(t *testing.T) {
	t.Parallel()

	t.Run("parses items", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			assert.Equal(t, "test-cx", r.URL.Query().Get("cx"))
			assert.Equal(t, "space launch", r.URL.Query().Get("q"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"items": [
					{"title": "Launch succeeds", "link": "https://news.example.com/launch", "snippet": "Rocket reaches orbit", "displayLink": "news.example.com"}
				]
			}`))
		}))
		defer srv.Close()

		p := search.NewGoogleProvider("test-key", "test-cx", search.WithGoogleBaseURL(srv.URL))
		results, err := p.Search(context.Background(), "space launch")

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Launch succeeds", results[0].Title)
		assert.Equal(t, "https://news.example.com/launch", results[0].Link)
		assert.Equal(t, "news.example.com", results[0].Source)
	})

	t.Run("falls back to the provider name when displayLink is missing", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"items": [
					{"title": "Bare item", "link": "https://news.example.com/bare", "snippet": "no displayLink"}
				]
			}`))
		}))
		defer srv.Close()

		p := search.NewGoogleProvider("test-key", "test-cx", search.WithGoogleBaseURL(srv.URL))
		results, err := p.Search(context.Background(), "anything")

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "google", results[0].Source)
	})

	t.Run("returns EUNAVAILABLE without credentials", func(t *testing.T) {
		t.Parallel()

		_, err := search.NewGoogleProvider("", "cx").Search(context.Background(), "x")
		assert.Equal(t, maya.EUNAVAILABLE, maya.ErrorCode(err))

		_, err = search.NewGoogleProvider("key", "").Search(context.Background(), "x")
		assert.Equal(t, maya.EUNAVAILABLE, maya.ErrorCode(err))
	})

	t.Run("quota exhaustion maps to EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		p := search.NewGoogleProvider("test-key", "test-cx", search.WithGoogleBaseURL(srv.URL))
		_, err := p.Search(context.Background(), "anything")
		assert.Equal(t, maya.EUNAVAILABLE, maya.ErrorCode(err))
	})

	t.Run("empty items yields empty slice", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		p := search.NewGoogleProvider("test-key", "test-cx", search.WithGoogleBaseURL(srv.URL))
		results, err := p.Search(context.Background(), "obscure query")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("name", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "google", search.NewGoogleProvider("k", "cx").Name())
	})
}
