package enricher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type serpResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search runs query with the configured domains excluded.
func (s *serpSearcher) Search(ctx context.Context, query string, num int) ([]Result, error) {
	q := query
	for _, d := range s.exclude {
		q += " -site:" + d
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", q)
	params.Set("num", strconv.Itoa(num))
	params.Set("api_key", s.apiKey)
	if s.language != "" {
		params.Set("hl", s.language)
	}
	if s.country != "" {
		params.Set("gl", s.country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var body serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if body.Error != "" {
		return nil, fmt.Errorf("search error: %s", body.Error)
	}

	var results []Result
	for _, item := range body.OrganicResults {
		if item.Link == "" {
			continue
		}
		results = append(results, Result{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Domain:  domainOf(item.Link),
		})
	}
	return results, nil
}

func domainOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
