package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/law-makers/websearch/internal/engine"
	"github.com/law-makers/websearch/pkg/models"
)

type stubProvider struct {
	source models.Source
	calls  int
	lang   string
}

func (s *stubProvider) Name() string { return string(s.source) }

func (s *stubProvider) Parse(markup string, maxResults int) ([]models.SearchResult, error) {
	return nil, nil
}

func (s *stubProvider) Search(ctx context.Context, query string, maxResults int, language string) ([]models.SearchResult, error) {
	s.calls++
	s.lang = language
	return []models.SearchResult{{Title: query, URL: "https://example.com", Source: s.source}}, nil
}

type stubGoogle struct {
	calls int
	mode  string
}

func (s *stubGoogle) Name() string { return "google" }

func (s *stubGoogle) Search(ctx context.Context, query string, maxResults int, language string, mode string) ([]models.SearchResult, error) {
	s.calls++
	s.mode = mode
	return []models.SearchResult{{Title: query, URL: "https://example.com", Source: models.SourceGoogleHTML}}, nil
}

func newStubRouter() (*Router, *stubGoogle, *stubProvider, *stubProvider) {
	g := &stubGoogle{}
	b := &stubProvider{source: models.SourceBingRSS}
	d := &stubProvider{source: models.SourceDuckDuckGo}
	return NewRouterWith(g, b, d), g, b, d
}

func TestRouter_Dispatch(t *testing.T) {
	tests := []struct {
		engine string
		want   models.Source
	}{
		{"google", models.SourceGoogleHTML},
		{"googlesearch", models.SourceGoogleHTML},
		{" Google ", models.SourceGoogleHTML},
		{"bing", models.SourceBingRSS},
		{"DuckDuckGo", models.SourceDuckDuckGo},
	}
	for _, tt := range tests {
		r, _, _, _ := newStubRouter()
		results, err := r.Search(context.Background(), models.SearchRequest{
			Engine:     models.Engine(tt.engine),
			Query:      "golang",
			MaxResults: 3,
		})
		if err != nil {
			t.Fatalf("engine %q: Search failed: %v", tt.engine, err)
		}
		if len(results) != 1 || results[0].Source != tt.want {
			t.Errorf("engine %q: expected %s result, got %#v", tt.engine, tt.want, results)
		}
	}
}

func TestRouter_DefaultsLanguageAndMode(t *testing.T) {
	r, g, b, _ := newStubRouter()
	if _, err := r.Search(context.Background(), models.SearchRequest{Engine: "bing", Query: "x", MaxResults: 1}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if b.lang != "en" {
		t.Errorf("Expected default language en, got %q", b.lang)
	}

	if _, err := r.Search(context.Background(), models.SearchRequest{Engine: "google", Query: "x", MaxResults: 1}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if g.mode != "auto" {
		t.Errorf("Expected default google mode auto, got %q", g.mode)
	}
}

func TestRouter_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.SearchRequest
		want error
	}{
		{"unknown engine", models.SearchRequest{Engine: "yahoo", Query: "x", MaxResults: 3}, engine.ErrUnsupportedEngine},
		{"empty query", models.SearchRequest{Engine: "bing", Query: "   ", MaxResults: 3}, engine.ErrInvalidArgument},
		{"zero max", models.SearchRequest{Engine: "bing", Query: "x", MaxResults: 0}, engine.ErrInvalidArgument},
		{"bad google mode", models.SearchRequest{Engine: "google", Query: "x", MaxResults: 3, GoogleMode: "images"}, engine.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, d := newStubRouter()
			_, err := r.Search(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			if g.calls+b.calls+d.calls != 0 {
				t.Error("Expected no provider call on validation failure")
			}
		})
	}
}

func TestParseEngine_NamesInput(t *testing.T) {
	_, err := ParseEngine("Yahoo")
	if err == nil || !strings.Contains(err.Error(), "Yahoo") {
		t.Errorf("Expected error naming the engine, got %v", err)
	}
}

func TestRouter_ProviderName(t *testing.T) {
	r, _, _, _ := newStubRouter()
	tests := []struct {
		engine models.Engine
		want   string
	}{
		{models.EngineGoogle, "google"},
		{models.EngineGoogleSearch, "google"},
		{models.EngineBing, string(models.SourceBingRSS)},
		{models.EngineDuckDuckGo, string(models.SourceDuckDuckGo)},
		{"yahoo", ""},
	}
	for _, tt := range tests {
		if got := r.providerName(tt.engine); got != tt.want {
			t.Errorf("engine %q: expected provider %q, got %q", tt.engine, tt.want, got)
		}
	}
}
