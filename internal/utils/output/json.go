package output

import (
	"encoding/json"
	"io"
	"os"
)

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}

// SaveJSON writes a JSON export of the report to filepath.
func SaveJSON(report *Report, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, report)
}
