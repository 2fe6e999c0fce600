package enricher

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/lecture-flow/internal/cache"
	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

const (
	queryTextRunes = 80
	queryPause     = 200 * time.Millisecond
	searchTimeout  = 15 * time.Second
)

type implEnricher struct {
	searcher Searcher
	cache    cache.Client
	cfg      config.SearchConfig
	ttl      time.Duration
	pause    time.Duration
	logger   logger.Logger
}

// New creates an Enricher. A nil searcher disables web search and every
// slide gets an empty enrichment; a nil cache disables caching.
func New(searcher Searcher, c cache.Client, cfg config.SearchConfig, ttl time.Duration, log logger.Logger) Enricher {
	return &implEnricher{
		searcher: searcher,
		cache:    c,
		cfg:      cfg,
		ttl:      ttl,
		pause:    queryPause,
		logger:   log,
	}
}

type serpSearcher struct {
	endpoint string
	apiKey   string
	language string
	country  string
	exclude  []string
	http     *http.Client
}

// NewSerpAPI creates a Searcher for the SerpAPI Google engine.
func NewSerpAPI(cfg config.SearchConfig) Searcher {
	return &serpSearcher{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		country:  cfg.Country,
		exclude:  cfg.ExcludeDomains,
		http:     &http.Client{Timeout: searchTimeout},
	}
}
