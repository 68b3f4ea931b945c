// Package output renders search results to files and terminals.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/law-makers/websearch/pkg/models"
)

// Report is one query and the results it produced
type Report struct {
	Engine  models.Engine         `json:"engine"`
	Query   string                `json:"query"`
	Results []models.SearchResult `json:"results"`
}

// NewReport builds a Report; a nil result list becomes empty
func NewReport(engine models.Engine, query string, results []models.SearchResult) *Report {
	if results == nil {
		results = []models.SearchResult{}
	}
	return &Report{Engine: engine, Query: query, Results: results}
}

// Formats lists the file extensions Save understands
func Formats() []string {
	return []string{".json", ".csv", ".html", ".md"}
}

// Save writes report to path in the format named by its extension.
func Save(report *Report, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SaveJSON(report, path)
	case ".csv":
		return SaveCSV(report, path)
	case ".html", ".htm":
		return SaveHTML(report, path)
	case ".md", ".markdown":
		return SaveMarkdown(report, path)
	default:
		return fmt.Errorf("unsupported output format %q (use one of %s)", filepath.Ext(path), strings.Join(Formats(), ", "))
	}
}
