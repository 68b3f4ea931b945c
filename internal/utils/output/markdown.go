package output

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// RenderMarkdown converts the HTML report to Markdown
func RenderMarkdown(report *Report) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	// Source and date line rendered as emphasis
	converter.AddRules(md.Rule{
		Filter: []string{"small"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			text := strings.TrimSpace(selec.Text())
			if text == "" {
				return nil
			}
			str := fmt.Sprintf("\n\n_%s_\n\n", text)
			return &str
		},
	})

	rendered, err := RenderHTML(report)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return "", err
	}
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return converter.ConvertString(body)
}

// SaveMarkdown writes the Markdown report to filepath
func SaveMarkdown(report *Report, filepath string) error {
	mdStr, err := RenderMarkdown(report)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, []byte(mdStr), 0644)
}
