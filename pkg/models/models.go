package models

// Source identifies the parser that produced a SearchResult
type Source string

const (
	SourceGoogleHTML    Source = "google_html"
	SourceGoogleNewsRSS Source = "google_news_rss"
	SourceBingRSS       Source = "bing_rss"
	SourceDuckDuckGo    Source = "duckduckgo_html"
)

// SearchResult is a single normalized search hit
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Snippet     string `json:"snippet"`
	Source      Source `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Engine names accepted by the router
type Engine string

const (
	EngineGoogle       Engine = "google"
	EngineGoogleSearch Engine = "googlesearch"
	EngineBing         Engine = "bing"
	EngineDuckDuckGo   Engine = "duckduckgo"
)

// GoogleMode selects how the Google provider obtains results
type GoogleMode string

const (
	GoogleModeAuto    GoogleMode = "auto"
	GoogleModeWebHTML GoogleMode = "web_html"
	GoogleModeNewsRSS GoogleMode = "news_rss"
)

// DefaultLanguage is used when a request carries no locale hint
const DefaultLanguage = "en"

// SearchRequest contains the inputs of a single search call
type SearchRequest struct {
	Engine     Engine
	Query      string
	MaxResults int
	Language   string
	GoogleMode GoogleMode
}

// BatchResult is the outcome of one query in a batch run
type BatchResult struct {
	Index   int // position of Request in the submitted batch
	Request SearchRequest
	Results []SearchResult
	Error   error
}
