package enricher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nguyentantai21042004/lecture-flow/internal/cache"
	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/textutil"
)

// Enrich searches the web for the slide title, and for the title plus the
// start of the slide text. Search failures are logged and skipped.
func (e *implEnricher) Enrich(ctx context.Context, title, text string) models.Enrichment {
	var out models.Enrichment
	if e.searcher == nil {
		return out
	}

	title = textutil.Clean(title)
	text = textutil.Clean(text)
	if title != "" {
		out.Queries = append(out.Queries, title)
		if text != "" {
			out.Queries = append(out.Queries, title+" "+textutil.Head(text, queryTextRunes))
		}
	}

	var all []Result
	for i, q := range out.Queries {
		if i > 0 && !e.sleep(ctx) {
			break
		}
		results, err := e.search(ctx, q)
		if err != nil {
			e.logger.Warn(ctx, "Search failed for %q: %v", q, err)
			continue
		}
		all = append(all, results...)
	}

	seen := make(map[string]bool)
	for _, r := range all {
		if r.Snippet != "" && len(out.Summaries) < e.cfg.MaxSummaries {
			out.Summaries = append(out.Summaries, models.Summary{
				Text:   textutil.Clean(r.Snippet),
				Source: r.Title,
			})
		}
		if !seen[r.URL] && len(out.References) < e.cfg.MaxReferences {
			seen[r.URL] = true
			out.References = append(out.References, models.Reference{
				Title: textutil.Clean(r.Title),
				URL:   r.URL,
			})
		}
	}
	return out
}

// search returns cached results for q when available.
func (e *implEnricher) search(ctx context.Context, q string) ([]Result, error) {
	key := cache.Key("serp", e.cfg.Language, e.cfg.Country, q)
	if e.cache != nil {
		if data, err := e.cache.Get(ctx, key); err == nil {
			var cached []Result
			if err := json.Unmarshal(data, &cached); err == nil {
				e.logger.Debug(ctx, "Search cache hit: %q", q)
				return cached, nil
			}
		}
	}

	results, err := e.searcher.Search(ctx, q, e.cfg.ResultsPerQuery)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			if err := e.cache.Set(ctx, key, data, e.ttl); err != nil {
				e.logger.Warn(ctx, "Search cache write failed: %v", err)
			}
		}
	}
	return results, nil
}

func (e *implEnricher) sleep(ctx context.Context) bool {
	if e.pause <= 0 {
		return true
	}
	t := time.NewTimer(e.pause)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
