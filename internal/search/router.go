// Package search routes a search request to the provider of its engine.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/law-makers/websearch/internal/engine"
	"github.com/law-makers/websearch/internal/engine/bing"
	"github.com/law-makers/websearch/internal/engine/duckduckgo"
	"github.com/law-makers/websearch/internal/engine/google"
	"github.com/law-makers/websearch/internal/fetch"
	"github.com/law-makers/websearch/internal/reqctx"
	"github.com/law-makers/websearch/pkg/models"
)

// GoogleSearcher is the mode-aware Google backend
type GoogleSearcher interface {
	Search(ctx context.Context, query string, maxResults int, language string, mode string) ([]models.SearchResult, error)
	Name() string
}

// Router dispatches requests by engine name. It is immutable once built.
type Router struct {
	google     GoogleSearcher
	bing       engine.Provider
	duckduckgo engine.Provider
}

// NewRouter wires the live providers around one fetcher
func NewRouter(f *fetch.Fetcher) *Router {
	return NewRouterWith(google.New(f), bing.New(f), duckduckgo.New(f))
}

// NewRouterWith builds a Router from explicit backends
func NewRouterWith(g GoogleSearcher, b, ddg engine.Provider) *Router {
	return &Router{google: g, bing: b, duckduckgo: ddg}
}

// Engines lists the accepted engine names
func Engines() []models.Engine {
	return []models.Engine{models.EngineGoogle, models.EngineGoogleSearch, models.EngineBing, models.EngineDuckDuckGo}
}

// ParseEngine normalizes an engine name; unknown names fail with UnsupportedEngine
func ParseEngine(name string) (models.Engine, error) {
	e := models.Engine(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Engines() {
		if e == known {
			return e, nil
		}
	}
	return "", engine.NewUnsupportedEngineError(name)
}

// Search validates req and runs it against the matching provider.
// Validation failures return before any network request.
func (r *Router) Search(ctx context.Context, req models.SearchRequest) ([]models.SearchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = reqctx.WithRequestContext(ctx)
	logger := reqctx.Logger(ctx)

	eng, err := ParseEngine(string(req.Engine))
	if err != nil {
		return nil, err
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, engine.NewInvalidArgumentError("query must not be empty")
	}
	if req.MaxResults <= 0 {
		return nil, engine.NewInvalidArgumentError("max results must be positive").
			WithDetail("max_results", req.MaxResults)
	}
	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = models.DefaultLanguage
	}

	var mode models.GoogleMode
	if eng == models.EngineGoogle || eng == models.EngineGoogleSearch {
		if mode, err = google.ParseMode(string(req.GoogleMode)); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	logger.Debug().
		Str("engine", string(eng)).
		Str("provider", r.providerName(eng)).
		Str("query", query).
		Int("max_results", req.MaxResults).
		Str("language", language).
		Msg("Search started")

	var results []models.SearchResult
	switch eng {
	case models.EngineGoogle, models.EngineGoogleSearch:
		results, err = r.google.Search(ctx, query, req.MaxResults, language, string(mode))
	case models.EngineBing:
		results, err = r.bing.Search(ctx, query, req.MaxResults, language)
	case models.EngineDuckDuckGo:
		results, err = r.duckduckgo.Search(ctx, query, req.MaxResults, language)
	}
	if err != nil {
		logger.Debug().Err(err).Str("engine", string(eng)).Msg("Search failed")
		return nil, err
	}

	logger.Debug().
		Str("engine", string(eng)).
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("Search completed")

	return results, nil
}

func (r *Router) providerName(eng models.Engine) string {
	switch eng {
	case models.EngineGoogle, models.EngineGoogleSearch:
		return r.google.Name()
	case models.EngineBing:
		return r.bing.Name()
	case models.EngineDuckDuckGo:
		return r.duckduckgo.Name()
	}
	return ""
}
