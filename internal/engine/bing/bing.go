// Package bing searches Bing through its RSS output format.
package bing

import (
	"context"
	"net/url"
	"strconv"

	"github.com/law-makers/websearch/internal/engine"
	"github.com/law-makers/websearch/internal/engine/rss"
	"github.com/law-makers/websearch/internal/fetch"
	"github.com/law-makers/websearch/pkg/models"
)

// Endpoint is Bing's search page; format=rss switches it to a feed
const Endpoint = "https://www.bing.com/search"

// Fetcher is the subset of fetch.Fetcher the provider needs
type Fetcher interface {
	Fetch(ctx context.Context, req fetch.Request) (string, error)
}

// Provider implements engine.Provider for Bing RSS
type Provider struct {
	fetcher  Fetcher
	endpoint string
}

// New creates a Bing provider
func New(f Fetcher) *Provider {
	return &Provider{fetcher: f, endpoint: Endpoint}
}

// WithEndpoint returns a copy of p that queries endpoint instead of Bing
func (p *Provider) WithEndpoint(endpoint string) *Provider {
	cp := *p
	cp.endpoint = endpoint
	return &cp
}

// Name returns the name of this provider
func (p *Provider) Name() string {
	return "bing"
}

// Params returns the query parameters sent to Bing
func Params(query string, maxResults int, language string) url.Values {
	v := url.Values{}
	v.Set("q", query)
	v.Set("format", "rss")
	v.Set("setlang", language)
	v.Set("count", strconv.Itoa(max(maxResults, 1)))
	return v
}

// Search fetches the Bing RSS feed for query and parses it
func (p *Provider) Search(ctx context.Context, query string, maxResults int, language string) ([]models.SearchResult, error) {
	if maxResults <= 0 {
		return nil, engine.NewInvalidArgumentError("max results must be positive")
	}
	markup, err := p.fetcher.Fetch(ctx, fetch.Request{
		Endpoint:     p.endpoint,
		Params:       Params(query, maxResults, language),
		Language:     language,
		CheckBlocked: false,
	})
	if err != nil {
		return nil, err
	}
	return p.Parse(markup, maxResults)
}

// Parse extracts results from a Bing RSS document
func (p *Provider) Parse(markup string, maxResults int) ([]models.SearchResult, error) {
	return rss.Parse(markup, maxResults, models.SourceBingRSS)
}
