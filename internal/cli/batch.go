// internal/cli/batch.go
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/law-makers/websearch/internal/batch"
	"github.com/law-makers/websearch/internal/retry"
	"github.com/law-makers/websearch/internal/ui"
	"github.com/law-makers/websearch/internal/utils/output"
	"github.com/law-makers/websearch/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run many queries from a file",
	Long: `Reads one query per line and runs them with bounded concurrency.
Blank lines and lines starting with # are skipped.

Every query shares the per-host rate limiter, so raising --concurrency does
not raise the request rate against a single engine.`,
	Example: `  # Run queries against Bing, four at a time
  websearch batch --file queries.txt --engine bing --concurrency 4

  # Write one Markdown report per query
  websearch batch --file queries.txt --output-dir reports --format md`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addSearchFlags(batchCmd)

	batchCmd.Flags().StringP("file", "f", "", "File with one query per line (- for stdin)")
	batchCmd.Flags().IntP("concurrency", "c", 0, "Concurrent queries (default from config)")
	batchCmd.Flags().String("output-dir", "", "Directory for one report per query")
	batchCmd.Flags().String("format", "json", "Report format in --output-dir: json, csv, html, md")
	_ = batchCmd.MarkFlagRequired("file")
}

// readQueries returns the non-empty, non-comment lines of r
func readQueries(r io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return queries, nil
}

// slugify turns a query into a file name fragment
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if runes := []rune(slug); len(runes) > 40 {
		slug = strings.TrimSuffix(string(runes[:40]), "-")
	}
	if slug == "" {
		slug = "query"
	}
	return slug
}

// reportPath names the report of the i-th query
func reportPath(dir string, i int, query, format string) string {
	return filepath.Join(dir, fmt.Sprintf("%03d-%s.%s", i+1, slugify(query), format))
}

func validFormat(format string) bool {
	for _, ext := range output.Formats() {
		if "."+format == ext {
			return true
		}
	}
	return false
}

// retryingSearcher applies the retry loop to every batch query
type retryingSearcher struct {
	next batch.Searcher
	cfg  retry.Config
}

func (s retryingSearcher) Search(ctx context.Context, req models.SearchRequest) ([]models.SearchResult, error) {
	return searchWithRetry(ctx, s.next, s.cfg, req)
}

func runBatch(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	path, _ := cmd.Flags().GetString("file")
	var in io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open query file: %w", err)
		}
		defer file.Close()
		in = file
	}
	queries, err := readQueries(in)
	if err != nil {
		return fmt.Errorf("failed to read query file: %w", err)
	}
	if len(queries) == 0 {
		return fmt.Errorf("no queries in %s", path)
	}

	tmpl, err := requestTemplate(cmd, a.Config)
	if err != nil {
		return err
	}
	requests := make([]models.SearchRequest, len(queries))
	for i, q := range queries {
		requests[i] = tmpl
		requests[i].Query = q
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	format, _ := cmd.Flags().GetString("format")
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	if !validFormat(format) {
		return fmt.Errorf("unsupported format %q (use one of %s)", format, strings.Join(output.Formats(), ", "))
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	concurrency := a.Config.Concurrency
	if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
		concurrency = n
	}
	runner := batch.New(retryingSearcher{next: a.Router, cfg: retryConfig(cmd, a.Config)}, concurrency)

	log.Info().
		Int("queries", len(requests)).
		Int("concurrency", runner.Concurrency()).
		Str("engine", string(tmpl.Engine)).
		Msg("Starting batch")

	return executeBatch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), runner, requests, batchOptions{
		outDir: outDir,
		format: format,
		json:   jsonOutput(cmd),
		quiet:  quietOutput(cmd),
	})
}

type batchOptions struct {
	outDir string
	format string
	json   bool
	quiet  bool
}

// executeBatch runs requests, writes reports to stdout or opts.outDir and a
// summary to stderr. Any failed query makes the returned error non-nil.
func executeBatch(ctx context.Context, stdout, stderr io.Writer, runner *batch.Runner, requests []models.SearchRequest, opts batchOptions) error {
	var bar *progressbar.ProgressBar
	if !opts.quiet && !opts.json {
		bar = progressbar.NewOptions(len(requests),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("Searching"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	reports := make([]*output.Report, len(requests))
	failures := make([]models.BatchResult, 0)
	for res := range runner.Run(ctx, requests) {
		if bar != nil {
			_ = bar.Add(1)
		}
		if res.Error != nil {
			log.Debug().Err(res.Error).Str("query", res.Request.Query).Msg("Query failed")
			failures = append(failures, res)
			continue
		}
		reports[res.Index] = output.NewReport(res.Request.Engine, res.Request.Query, res.Results)
		if opts.outDir != "" {
			if err := output.Save(reports[res.Index], reportPath(opts.outDir, res.Index, res.Request.Query, opts.format)); err != nil {
				return fmt.Errorf("failed to save output: %w", err)
			}
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if opts.outDir == "" {
		ordered := make([]*output.Report, 0, len(reports))
		for _, r := range reports {
			if r != nil {
				ordered = append(ordered, r)
			}
		}
		if opts.json {
			if err := writeReportsJSON(stdout, ordered); err != nil {
				return err
			}
		} else {
			for _, r := range ordered {
				fmt.Fprintf(stdout, "%s %s\n\n", ui.Bold("#"), ui.Bold(r.Query))
				printResults(stdout, r)
			}
		}
	}

	for _, f := range failures {
		fmt.Fprintf(stderr, "%s %q: %v\n", ui.Error("✗"), f.Request.Query, f.Error)
	}
	if !opts.quiet {
		fmt.Fprintf(stderr, "%s %d of %d queries succeeded\n", ui.Success("✓"), len(requests)-len(failures), len(requests))
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d queries failed", len(failures), len(requests))
	}
	return nil
}

// writeReportsJSON writes the reports as one JSON array
func writeReportsJSON(w io.Writer, reports []*output.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(reports)
}
