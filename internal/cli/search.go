// internal/cli/search.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/law-makers/websearch/internal/batch"
	"github.com/law-makers/websearch/internal/config"
	"github.com/law-makers/websearch/internal/reqctx"
	"github.com/law-makers/websearch/internal/retry"
	"github.com/law-makers/websearch/internal/ui"
	"github.com/law-makers/websearch/internal/utils/output"
	"github.com/law-makers/websearch/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search one engine and print the results",
	Long: `Fetches a single page of results from the chosen engine.

Engines: google (alias googlesearch), bing, duckduckgo.

Google modes:
- auto: web page first, news feed when blocked or empty
- web_html: web page only
- news_rss: Google News feed only`,
	Example: `  # Search Google, falling back to the news feed when blocked
  websearch search "golang generics"

  # Query Bing's RSS feed for five results
  websearch search "golang generics" --engine bing --max 5

  # Save DuckDuckGo results as CSV
  websearch search "golang" -e duckduckgo --output results.csv

  # Retry transient transport failures
  websearch search "golang" --retries 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addSearchFlags(searchCmd)

	searchCmd.Flags().StringP("output", "o", "", "File path to save results (supports .json, .csv, .html, .md)")
	searchCmd.Flags().StringArrayP("header", "H", []string{}, "Custom headers (e.g., -H \"Accept-Language: de\")")
}

// addSearchFlags registers the request flags shared by search and batch
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("engine", "e", config.DefaultEngine, "Search engine: google, googlesearch, bing, duckduckgo")
	cmd.Flags().IntP("max", "n", config.DefaultMaxResults, "Maximum number of results")
	cmd.Flags().StringP("lang", "l", "", "Language code (default en, or WEBSEARCH_LANGUAGE)")
	cmd.Flags().String("google-mode", "", "Google mode: auto, web_html, news_rss (default auto, or WEBSEARCH_GOOGLE_MODE)")
	cmd.Flags().Int("retries", config.DefaultRetries, "Attempts per query for transient transport failures")
}

// requestTemplate builds a SearchRequest from flags, falling back to cfg
func requestTemplate(cmd *cobra.Command, cfg *config.Config) (models.SearchRequest, error) {
	req := models.SearchRequest{
		Engine:     models.Engine(cfg.Engine),
		MaxResults: cfg.MaxResults,
		Language:   cfg.Language,
		GoogleMode: models.GoogleMode(cfg.GoogleMode),
	}

	if engineName, _ := cmd.Flags().GetString("engine"); engineName != "" {
		req.Engine = models.Engine(engineName)
	}
	if cmd.Flags().Changed("max") {
		n, err := cmd.Flags().GetInt("max")
		if err != nil {
			return req, err
		}
		req.MaxResults = n
	}
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		req.Language = lang
	}
	if mode, _ := cmd.Flags().GetString("google-mode"); mode != "" {
		req.GoogleMode = models.GoogleMode(mode)
	}
	return req, nil
}

// retryConfig maps --retries onto the retry package defaults
func retryConfig(cmd *cobra.Command, cfg *config.Config) retry.Config {
	rc := retry.DefaultConfig()
	rc.MaxAttempts = cfg.Retries
	if cmd.Flags().Changed("retries") {
		if n, err := cmd.Flags().GetInt("retries"); err == nil {
			rc.MaxAttempts = n
		}
	}
	return rc
}

// searchWithRetry wraps one router call in the retry loop
func searchWithRetry(ctx context.Context, s batch.Searcher, rc retry.Config, req models.SearchRequest) ([]models.SearchResult, error) {
	var results []models.SearchResult
	err := retry.WithRetry(ctx, rc, func() error {
		var err error
		results, err = s.Search(ctx, req)
		return err
	})
	return results, err
}

func runSearch(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	req, err := requestTemplate(cmd, a.Config)
	if err != nil {
		return err
	}
	req.Query = strings.Join(args, " ")

	ctx := reqctx.WithRequestContext(cmd.Context())
	start := time.Now()

	log.Info().
		Str("engine", string(req.Engine)).
		Str("query", req.Query).
		Int("max", req.MaxResults).
		Msg("Searching")

	results, err := searchWithRetry(ctx, a.Router, retryConfig(cmd, a.Config), req)
	if err != nil {
		return reqctx.NewRequestError(ctx, err)
	}

	log.Debug().
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("Search finished")

	report := output.NewReport(req.Engine, req.Query, results)

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := output.Save(report, path); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		if !quietOutput(cmd) {
			fmt.Fprintf(os.Stderr, "%s %d results saved to %s\n", ui.Success("✓"), len(results), path)
		}
		return nil
	}

	if jsonOutput(cmd) {
		return output.WriteJSON(os.Stdout, report)
	}
	printResults(os.Stdout, report)
	return nil
}

// printResults writes a colorized, numbered result list
func printResults(w io.Writer, report *output.Report) {
	if len(report.Results) == 0 {
		fmt.Fprintf(w, "%s\n", ui.Info("No results."))
		return
	}

	for i, r := range report.Results {
		fmt.Fprintf(w, "%s %s\n", ui.Dim(fmt.Sprintf("%2d.", i+1)), ui.Bold(r.Title))
		fmt.Fprintf(w, "    %s\n", ui.Link(r.URL))
		if r.Snippet != "" {
			fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(wrapText(r.Snippet, 76), "\n", "\n    "))
		}
		meta := string(r.Source)
		if r.PublishedAt != "" {
			meta += " · " + r.PublishedAt
		}
		fmt.Fprintf(w, "    %s\n\n", ui.Dim(meta))
	}
}
