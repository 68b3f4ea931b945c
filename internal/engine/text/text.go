// internal/engine/text/text.go
package text

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Collapse trims s and folds every whitespace run into a single space
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Of returns the visible text of sel with text nodes joined by a space.
// Script and style contents are ignored.
func Of(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	var parts []string
	for _, n := range sel.Nodes {
		parts = appendText(parts, n)
	}
	return Collapse(strings.Join(parts, " "))
}

func appendText(parts []string, n *html.Node) []string {
	switch n.Type {
	case html.TextNode:
		if t := strings.TrimSpace(n.Data); t != "" {
			parts = append(parts, t)
		}
		return parts
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
			return parts
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = appendText(parts, c)
	}
	return parts
}

// StripMarkup converts a possibly HTML-bearing string (such as an RSS
// description) to collapsed plain text.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return Collapse(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return Collapse(s)
	}
	return Of(doc.Find("body"))
}
