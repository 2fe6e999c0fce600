package enricher

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

// Enricher gathers external reference material for a slide. It never fails:
// search errors produce an empty Enrichment.
type Enricher interface {
	Enrich(ctx context.Context, title, text string) models.Enrichment
}

// Searcher runs one web search query.
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]Result, error)
}

// Result is one organic search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Domain  string `json:"domain"`
}
