package output

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textElement(a atom.Atom, text string, attrs ...html.Attribute) *html.Node {
	n := element(a, attrs...)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// BuildHTML renders the report as a standalone HTML document node.
// Result text is stored in text nodes, so rendering escapes it.
func BuildHTML(report *Report) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	title := fmt.Sprintf("%s results for %q", report.Engine, report.Query)
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(textElement(atom.Title, title))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(textElement(atom.H1, title))

	if len(report.Results) == 0 {
		body.AppendChild(textElement(atom.P, "No results."))
		return doc
	}

	list := element(atom.Ol)
	body.AppendChild(list)
	for _, r := range report.Results {
		item := element(atom.Li)

		heading := element(atom.H2)
		heading.AppendChild(textElement(atom.A, r.Title, attr("href", r.URL)))
		item.AppendChild(heading)

		if r.Snippet != "" {
			item.AppendChild(textElement(atom.P, r.Snippet))
		}

		meta := textElement(atom.Small, string(r.Source), attr("class", "source"))
		if r.PublishedAt != "" {
			meta.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
			meta.AppendChild(textElement(atom.Time, r.PublishedAt))
		}
		item.AppendChild(meta)

		list.AppendChild(item)
	}

	return doc
}

// RenderHTML returns the report as an HTML document string
func RenderHTML(report *Report) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, BuildHTML(report)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SaveHTML writes the HTML report to filepath
func SaveHTML(report *Report, filepath string) error {
	doc, err := RenderHTML(report)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, []byte(doc), 0644)
}
