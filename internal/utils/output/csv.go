package output

import (
	"encoding/csv"
	"io"
	"os"
)

// CSVHeader is the column order of CSV exports
var CSVHeader = []string{"title", "url", "snippet", "source", "published_at"}

// WriteCSV writes one row per result
func WriteCSV(w io.Writer, report *Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range report.Results {
		if err := writer.Write([]string{r.Title, r.URL, r.Snippet, string(r.Source), r.PublishedAt}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV writes the report results to a CSV file. Returns an error on failure.
func SaveCSV(report *Report, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, report)
}
