// Package duckduckgo scrapes the HTML-only DuckDuckGo results page.
package duckduckgo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/websearch/internal/engine"
	"github.com/law-makers/websearch/internal/engine/text"
	"github.com/law-makers/websearch/internal/fetch"
	urlutil "github.com/law-makers/websearch/internal/utils/url"
	"github.com/law-makers/websearch/pkg/models"
	"github.com/rs/zerolog/log"
)

// Endpoint is the JavaScript-free DuckDuckGo frontend
const Endpoint = "https://html.duckduckgo.com/html/"

const (
	blockSelector       = "div.result"
	primaryLinkSelector = "a.result__a[href]"
	anyLinkSelector     = "a[href]"
	snippetSelector     = "a.result__snippet, div.result__snippet"
)

// Fetcher is the subset of fetch.Fetcher the provider needs
type Fetcher interface {
	Fetch(ctx context.Context, req fetch.Request) (string, error)
}

// Provider implements engine.Provider for DuckDuckGo HTML
type Provider struct {
	fetcher  Fetcher
	endpoint string
}

// New creates a DuckDuckGo provider
func New(f Fetcher) *Provider {
	return &Provider{fetcher: f, endpoint: Endpoint}
}

// WithEndpoint returns a copy of p that queries endpoint instead of DuckDuckGo
func (p *Provider) WithEndpoint(endpoint string) *Provider {
	cp := *p
	cp.endpoint = endpoint
	return &cp
}

// Name returns the name of this provider
func (p *Provider) Name() string {
	return "duckduckgo"
}

// Params returns the query parameters sent to DuckDuckGo. kl is the region,
// built as <lang>-<lang>, or wt-wt (no region) without a language.
func Params(query string, language string) url.Values {
	region := "wt-wt"
	if language != "" {
		region = fmt.Sprintf("%s-%s", language, language)
	}
	v := url.Values{}
	v.Set("q", query)
	v.Set("kl", region)
	return v
}

// Search fetches the DuckDuckGo result page for query and parses it
func (p *Provider) Search(ctx context.Context, query string, maxResults int, language string) ([]models.SearchResult, error) {
	if maxResults <= 0 {
		return nil, engine.NewInvalidArgumentError("max results must be positive")
	}
	markup, err := p.fetcher.Fetch(ctx, fetch.Request{
		Endpoint:     p.endpoint,
		Params:       Params(query, language),
		Language:     language,
		CheckBlocked: true,
	})
	if err != nil {
		return nil, err
	}
	return p.Parse(markup, maxResults)
}

// Parse extracts results from a DuckDuckGo HTML page
func (p *Provider) Parse(markup string, maxResults int) ([]models.SearchResult, error) {
	results := make([]models.SearchResult, 0)
	if maxResults <= 0 {
		return results, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeParseError, "failed to parse HTML", err)
	}

	blocks := doc.Find(blockSelector)
	blocks.EachWithBreak(func(i int, block *goquery.Selection) bool {
		link := block.Find(primaryLinkSelector).First()
		if link.Length() == 0 {
			// markup drift: accept any anchor in the block
			link = block.Find(anyLinkSelector).First()
		}
		if link.Length() == 0 {
			return true
		}

		href, _ := link.Attr("href")
		target := urlutil.NormalizeDuckDuckGoURL(strings.TrimSpace(href))
		if !urlutil.IsHTTPURL(target) {
			return true
		}

		title := text.Of(link)
		if title == "" {
			return true
		}

		results = append(results, models.SearchResult{
			Title:   title,
			URL:     target,
			Snippet: text.Of(block.Find(snippetSelector).First()),
			Source:  models.SourceDuckDuckGo,
		})
		return len(results) < maxResults
	})

	log.Debug().
		Int("blocks", blocks.Length()).
		Int("results", len(results)).
		Msg("DuckDuckGo page parsed")

	return results, nil
}
