package engine

import (
	"context"

	"github.com/law-makers/websearch/pkg/models"
)

// Parser turns provider markup into an ordered result list.
// Implementations never return more than maxResults items.
type Parser interface {
	Parse(markup string, maxResults int) ([]models.SearchResult, error)
}

// Provider is a search backend: it fetches one page of markup and parses it.
type Provider interface {
	Parser

	// Search fetches and parses results for query
	Search(ctx context.Context, query string, maxResults int, language string) ([]models.SearchResult, error)

	// Name returns the name of the provider implementation
	Name() string
}
