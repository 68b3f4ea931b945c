// internal/engine/rss/parser.go
package rss

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/law-makers/websearch/internal/engine"
	"github.com/law-makers/websearch/internal/engine/text"
	urlutil "github.com/law-makers/websearch/internal/utils/url"
	"github.com/law-makers/websearch/pkg/models"
	"github.com/rs/zerolog/log"
)

// The markup handed to Parse is already decoded to UTF-8, so a declared
// encoding must not be applied a second time.
var xmlEncodingDecl = regexp.MustCompile(`^(\s*<\?xml[^>]*?)\s+encoding\s*=\s*["'][^"']*["']`)

// Feeds in the wild carry HTML entities and bare ampersands. The lenient
// decoder keeps them as text instead of rejecting the document. No
// AutoClose list: HTML's void <link> would swallow the item URL.
var parserOptions = xmlquery.ParserOptions{
	Decoder: &xmlquery.DecoderOptions{
		Strict: false,
		Entity: xml.HTMLEntity,
	},
}

// Parse walks every channel/item of an RSS document. Items need a title and
// an http(s) link; title and description are reduced to plain text and
// pubDate becomes the publication time.
func Parse(markup string, maxResults int, source models.Source) ([]models.SearchResult, error) {
	results := make([]models.SearchResult, 0)
	if maxResults <= 0 {
		return results, nil
	}

	doc, err := xmlquery.ParseWithOptions(strings.NewReader(xmlEncodingDecl.ReplaceAllString(markup, "$1")), parserOptions)
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeParseError, "failed to parse RSS feed", err).
			WithDetail("source", string(source))
	}

	items, err := xmlquery.QueryAll(doc, "//channel/item")
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeParseError, "failed to query RSS items", err)
	}

	skipped := 0
	for _, item := range items {
		titleEl := child(item, "title")
		linkEl := child(item, "link")
		if titleEl == nil || linkEl == nil {
			skipped++
			continue
		}

		link := strings.TrimSpace(linkEl.InnerText())
		title := text.StripMarkup(titleEl.InnerText())
		if title == "" || !urlutil.IsHTTPURL(link) {
			skipped++
			continue
		}

		result := models.SearchResult{
			Title:  title,
			URL:    link,
			Source: source,
		}
		if desc := child(item, "description"); desc != nil {
			result.Snippet = text.StripMarkup(desc.InnerText())
		}
		if pub := child(item, "pubDate"); pub != nil {
			result.PublishedAt = strings.TrimSpace(pub.InnerText())
		}

		results = append(results, result)
		if len(results) >= maxResults {
			break
		}
	}

	log.Debug().
		Str("source", string(source)).
		Int("items", len(items)).
		Int("skipped", skipped).
		Int("results", len(results)).
		Msg("RSS feed parsed")

	return results, nil
}

// child returns the first unprefixed element child of n named name
func child(n *xmlquery.Node, name string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Prefix == "" && c.Data == name {
			return c
		}
	}
	return nil
}
