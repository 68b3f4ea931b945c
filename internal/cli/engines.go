// internal/cli/engines.go
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/law-makers/websearch/internal/engine/google"
	"github.com/law-makers/websearch/internal/search"
	"github.com/law-makers/websearch/internal/ui"
	"github.com/spf13/cobra"
)

// engineDescriptions documents each accepted engine name
var engineDescriptions = map[string]string{
	"google":       "Google web results, news feed fallback in auto mode",
	"googlesearch": "Alias for google",
	"bing":         "Bing RSS feed",
	"duckduckgo":   "DuckDuckGo HTML endpoint",
}

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List supported engines and Google modes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engines := search.Engines()
		modes := google.Modes()

		if jsonOutput(cmd) {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"engines": engines, "google_modes": modes})
		}

		fmt.Fprintf(os.Stdout, "%s\n", ui.Bold("Engines"))
		for _, e := range engines {
			fmt.Fprintf(os.Stdout, "  %s %s\n", ui.Link(fmt.Sprintf("%-14s", e)), ui.Dim(engineDescriptions[string(e)]))
		}
		fmt.Fprintf(os.Stdout, "\n%s\n", ui.Bold("Google modes"))
		for _, m := range modes {
			fmt.Fprintf(os.Stdout, "  %s\n", ui.Link(string(m)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enginesCmd)
}
