// internal/engine/google/web.go
package google

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/websearch/internal/engine"
	"github.com/law-makers/websearch/internal/engine/text"
	"github.com/law-makers/websearch/internal/fetch"
	urlutil "github.com/law-makers/websearch/internal/utils/url"
	"github.com/law-makers/websearch/pkg/models"
	"github.com/rs/zerolog/log"
)

// WebEndpoint is Google's HTML results page
const WebEndpoint = "https://www.google.com/search"

const (
	containerSelector = "div#search div.g, div#rso div.g"
	linkSelector      = "a[href]"
	headingSelector   = "h3"
	snippetSelector   = "div.VwiC3b, div.IsZvec, span.aCOpRe"
)

// Fetcher is the subset of fetch.Fetcher the providers need
type Fetcher interface {
	Fetch(ctx context.Context, req fetch.Request) (string, error)
}

// WebProvider scrapes Google's rendered HTML results
type WebProvider struct {
	fetcher  Fetcher
	endpoint string
}

// NewWeb creates a Google web HTML provider
func NewWeb(f Fetcher) *WebProvider {
	return &WebProvider{fetcher: f, endpoint: WebEndpoint}
}

// WithEndpoint returns a copy of p that queries endpoint instead of Google
func (p *WebProvider) WithEndpoint(endpoint string) *WebProvider {
	cp := *p
	cp.endpoint = endpoint
	return &cp
}

// Name returns the name of this provider
func (p *WebProvider) Name() string {
	return "google_web"
}

// WebParams returns the query parameters of a Google web search
func WebParams(query string, maxResults int, language string) url.Values {
	v := url.Values{}
	v.Set("q", query)
	v.Set("hl", language)
	v.Set("num", strconv.Itoa(max(maxResults, 1)))
	v.Set("safe", "active")
	return v
}

// Search fetches the Google results page for query and parses it
func (p *WebProvider) Search(ctx context.Context, query string, maxResults int, language string) ([]models.SearchResult, error) {
	if maxResults <= 0 {
		return nil, engine.NewInvalidArgumentError("max results must be positive")
	}
	markup, err := p.fetcher.Fetch(ctx, fetch.Request{
		Endpoint:     p.endpoint,
		Params:       WebParams(query, maxResults, language),
		Language:     language,
		CheckBlocked: true,
	})
	if err != nil {
		return nil, err
	}
	return p.Parse(markup, maxResults)
}

// Parse extracts results in two passes. The container pass reads the
// structured result blocks; the heading pass then scans every h3 inside a
// link so results survive when Google renames its container classes. URLs
// already collected are not emitted twice.
func (p *WebProvider) Parse(markup string, maxResults int) ([]models.SearchResult, error) {
	results := make([]models.SearchResult, 0)
	if maxResults <= 0 {
		return results, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeParseError, "failed to parse HTML", err)
	}

	results = containerPass(doc, results, maxResults)
	fromContainers := len(results)
	if len(results) >= maxResults {
		log.Debug().Int("results", len(results)).Msg("Google container pass filled the cap")
		return results, nil
	}

	results = headingPass(doc, results, maxResults)

	log.Debug().
		Int("container_results", fromContainers).
		Int("heading_results", len(results)-fromContainers).
		Msg("Google page parsed")

	return results, nil
}

func containerPass(doc *goquery.Document, results []models.SearchResult, maxResults int) []models.SearchResult {
	doc.Find(containerSelector).EachWithBreak(func(i int, block *goquery.Selection) bool {
		link := block.Find(linkSelector).First()
		heading := block.Find(headingSelector).First()
		if link.Length() == 0 || heading.Length() == 0 {
			return true
		}

		href, _ := link.Attr("href")
		target := urlutil.NormalizeGoogleURL(strings.TrimSpace(href))
		if !urlutil.IsHTTPURL(target) {
			return true
		}
		title := text.Of(heading)
		if title == "" {
			return true
		}

		results = append(results, models.SearchResult{
			Title:   title,
			URL:     target,
			Snippet: text.Of(block.Find(snippetSelector).First()),
			Source:  models.SourceGoogleHTML,
		})
		return len(results) < maxResults
	})
	return results
}

func headingPass(doc *goquery.Document, results []models.SearchResult, maxResults int) []models.SearchResult {
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		seen[r.URL] = true
	}

	doc.Find(headingSelector).EachWithBreak(func(i int, heading *goquery.Selection) bool {
		link := heading.ParentsFiltered(linkSelector).First()
		if link.Length() == 0 {
			return true
		}

		href, _ := link.Attr("href")
		target := urlutil.NormalizeGoogleURL(strings.TrimSpace(href))
		if !urlutil.IsHTTPURL(target) || seen[target] {
			return true
		}
		title := text.Of(heading)
		if title == "" {
			return true
		}

		seen[target] = true
		results = append(results, models.SearchResult{
			Title:  title,
			URL:    target,
			Source: models.SourceGoogleHTML,
		})
		return len(results) < maxResults
	})
	return results
}
