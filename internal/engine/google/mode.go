// internal/engine/google/mode.go
package google

import (
	"context"
	"strings"

	"github.com/law-makers/websearch/internal/engine"
	"github.com/law-makers/websearch/internal/reqctx"
	"github.com/law-makers/websearch/pkg/models"
)

// ParseMode validates a mode string. Empty means auto.
func ParseMode(s string) (models.GoogleMode, error) {
	mode := models.GoogleMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case "":
		return models.GoogleModeAuto, nil
	case models.GoogleModeAuto, models.GoogleModeWebHTML, models.GoogleModeNewsRSS:
		return mode, nil
	default:
		return "", engine.NewInvalidArgumentError("unsupported google mode: " + s).WithDetail("google_mode", s)
	}
}

// Modes lists the accepted google modes
func Modes() []models.GoogleMode {
	return []models.GoogleMode{models.GoogleModeAuto, models.GoogleModeWebHTML, models.GoogleModeNewsRSS}
}

// Searcher chooses between the web and news providers
type Searcher struct {
	web  engine.Provider
	news engine.Provider
}

// New creates a Searcher backed by Google's live endpoints
func New(f Fetcher) *Searcher {
	return NewSearcher(NewWeb(f), NewNews(f))
}

// NewSearcher creates a Searcher from explicit providers
func NewSearcher(web, news engine.Provider) *Searcher {
	return &Searcher{web: web, news: news}
}

// Name returns the name of this provider
func (s *Searcher) Name() string {
	return "google"
}

// Search runs query with the given mode.
//
// In auto mode the web page is tried first. A Blocked failure or an empty
// result list falls back to the news feed; this cannot tell markup drift
// from a query with no hits. Other web failures are returned as is.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int, language string, rawMode string) ([]models.SearchResult, error) {
	mode, err := ParseMode(rawMode)
	if err != nil {
		return nil, err
	}
	logger := reqctx.Logger(ctx)

	switch mode {
	case models.GoogleModeNewsRSS:
		return s.news.Search(ctx, query, maxResults, language)
	case models.GoogleModeWebHTML:
		return s.web.Search(ctx, query, maxResults, language)
	}

	results, err := s.web.Search(ctx, query, maxResults, language)
	switch {
	case err == nil && len(results) > 0:
		return results, nil
	case err == nil:
		logger.Debug().Str("from", s.web.Name()).Str("to", s.news.Name()).Str("reason", "no_results").Msg("Google web search empty, falling back to news feed")
	case engine.IsBlocked(err):
		logger.Debug().Err(err).Str("from", s.web.Name()).Str("to", s.news.Name()).Str("reason", "blocked").Msg("Google web search blocked, falling back to news feed")
	default:
		return nil, err
	}

	return s.news.Search(ctx, query, maxResults, language)
}
