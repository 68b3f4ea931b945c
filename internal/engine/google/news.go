package google

import (
	"context"
	"fmt"
	"net/url"

	"github.com/law-makers/websearch/internal/engine"
	"github.com/law-makers/websearch/internal/engine/rss"
	"github.com/law-makers/websearch/internal/fetch"
	"github.com/law-makers/websearch/pkg/models"
)

// NewsEndpoint is the Google News search feed
const NewsEndpoint = "https://news.google.com/rss/search"

// newsCountry is the edition requested from Google News
const newsCountry = "US"

// NewsProvider reads the Google News RSS search feed
type NewsProvider struct {
	fetcher  Fetcher
	endpoint string
}

// NewNews creates a Google News RSS provider
func NewNews(f Fetcher) *NewsProvider {
	return &NewsProvider{fetcher: f, endpoint: NewsEndpoint}
}

// WithEndpoint returns a copy of p that queries endpoint instead of Google News
func (p *NewsProvider) WithEndpoint(endpoint string) *NewsProvider {
	cp := *p
	cp.endpoint = endpoint
	return &cp
}

// Name returns the name of this provider
func (p *NewsProvider) Name() string {
	return "google_news"
}

// NewsParams returns the locale-specific feed parameters
func NewsParams(query string, language string) url.Values {
	v := url.Values{}
	v.Set("q", query)
	v.Set("hl", fmt.Sprintf("%s-%s", language, newsCountry))
	v.Set("gl", newsCountry)
	v.Set("ceid", fmt.Sprintf("%s:%s", newsCountry, language))
	return v
}

// Search fetches the Google News feed for query and parses it
func (p *NewsProvider) Search(ctx context.Context, query string, maxResults int, language string) ([]models.SearchResult, error) {
	if maxResults <= 0 {
		return nil, engine.NewInvalidArgumentError("max results must be positive")
	}
	markup, err := p.fetcher.Fetch(ctx, fetch.Request{
		Endpoint:     p.endpoint,
		Params:       NewsParams(query, language),
		Language:     language,
		CheckBlocked: false,
	})
	if err != nil {
		return nil, err
	}
	return p.Parse(markup, maxResults)
}

// Parse extracts results from a Google News RSS document
func (p *NewsProvider) Parse(markup string, maxResults int) ([]models.SearchResult, error) {
	return rss.Parse(markup, maxResults, models.SourceGoogleNewsRSS)
}
