package enricher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/lecture-flow/internal/cache"
	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

type fakeSearcher struct {
	queries []string
	fail    map[string]bool
}

func (f *fakeSearcher) Search(ctx context.Context, query string, num int) ([]Result, error) {
	f.queries = append(f.queries, query)
	if f.fail[query] {
		return nil, errors.New("quota")
	}
	var out []Result
	for i := 0; i < num; i++ {
		out = append(out, Result{
			Title:   fmt.Sprintf("%s result %d", query, i),
			URL:     fmt.Sprintf("https://example.org/%d", i),
			Snippet: fmt.Sprintf("snippet  %d", i),
		})
	}
	return out, nil
}

func searchConfig() config.SearchConfig {
	return config.SearchConfig{ResultsPerQuery: 4, MaxSummaries: 3, MaxReferences: 4}
}

func newTestEnricher(s Searcher, c cache.Client) *implEnricher {
	e := New(s, c, searchConfig(), time.Hour, logger.Nop()).(*implEnricher)
	e.pause = 0
	return e
}

func TestEnrich(t *testing.T) {
	s := &fakeSearcher{}
	e := newTestEnricher(s, nil)

	long := ""
	for i := 0; i < 100; i++ {
		long += "x"
	}
	got := e.Enrich(context.Background(), " Gradient\ndescent ", long)

	require.Equal(t, []string{"Gradient descent", "Gradient descent " + long[:80]}, got.Queries)
	assert.Equal(t, got.Queries, s.queries)
	require.Len(t, got.Summaries, 3)
	assert.Equal(t, "snippet 0", got.Summaries[0].Text)
	require.Len(t, got.References, 4)
	assert.Equal(t, "https://example.org/0", got.References[0].URL)
}

func TestEnrichNoTitle(t *testing.T) {
	s := &fakeSearcher{}
	got := newTestEnricher(s, nil).Enrich(context.Background(), "", "text only")
	assert.Empty(t, got.Queries)
	assert.Empty(t, s.queries)
}

func TestEnrichSearchFailureIsSoft(t *testing.T) {
	s := &fakeSearcher{fail: map[string]bool{"Title": true}}
	got := newTestEnricher(s, nil).Enrich(context.Background(), "Title", "body")
	assert.Len(t, s.queries, 2)
	assert.NotEmpty(t, got.Summaries)

	s = &fakeSearcher{fail: map[string]bool{"Title": true}}
	got = newTestEnricher(s, nil).Enrich(context.Background(), "Title", "")
	assert.Empty(t, got.Summaries)
	assert.Empty(t, got.References)
}

func TestEnrichDisabled(t *testing.T) {
	e := New(nil, nil, searchConfig(), time.Hour, logger.Nop())
	got := e.Enrich(context.Background(), "Title", "text")
	assert.Empty(t, got.Queries)
}

func TestEnrichUsesCache(t *testing.T) {
	s := &fakeSearcher{}
	c := cache.NewMemoryClient(0)
	e := newTestEnricher(s, c)

	first := e.Enrich(context.Background(), "Title", "")
	second := e.Enrich(context.Background(), "Title", "")

	assert.Len(t, s.queries, 1)
	assert.Equal(t, first, second)
}

func TestSerpAPISearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google", q.Get("engine"))
		assert.Equal(t, "attention -site:medium.com -site:reddit.com", q.Get("q"))
		assert.Equal(t, "4", q.Get("num"))
		assert.Equal(t, "secret", q.Get("api_key"))
		assert.Equal(t, "ko", q.Get("hl"))
		assert.Equal(t, "kr", q.Get("gl"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"organic_results":[
			{"title":"Attention","link":"https://Arxiv.org/abs/1706","snippet":"Transformers."},
			{"title":"no link","link":"","snippet":"dropped"}
		]}`)
	}))
	defer srv.Close()

	s := NewSerpAPI(config.SearchConfig{
		Endpoint:       srv.URL,
		APIKey:         "secret",
		Language:       "ko",
		Country:        "kr",
		ExcludeDomains: []string{"medium.com", "reddit.com"},
	})
	results, err := s.Search(context.Background(), "attention", 4)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, Result{Title: "Attention", URL: "https://Arxiv.org/abs/1706", Snippet: "Transformers.", Domain: "arxiv.org"}, results[0])
}

func TestSerpAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "bad status" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"error":"Invalid API key."}`)
	}))
	defer srv.Close()

	s := NewSerpAPI(config.SearchConfig{Endpoint: srv.URL})
	_, err := s.Search(context.Background(), "bad status", 4)
	assert.Error(t, err)
	_, err = s.Search(context.Background(), "api error", 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key.")
}
