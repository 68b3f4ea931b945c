package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/law-makers/websearch/internal/batch"
	"github.com/law-makers/websearch/internal/config"
	"github.com/law-makers/websearch/internal/ui"
	"github.com/law-makers/websearch/internal/utils/output"
	"github.com/law-makers/websearch/pkg/models"
	"github.com/spf13/cobra"
)

func TestReadQueries(t *testing.T) {
	in := "golang\n\n# comment\n  rust lang  \n#another\n"
	queries, err := readQueries(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readQueries failed: %v", err)
	}
	if len(queries) != 2 || queries[0] != "golang" || queries[1] != "rust lang" {
		t.Errorf("Unexpected queries: %q", queries)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Golang Generics", "golang-generics"},
		{"  what's new in Go 1.25?  ", "what-s-new-in-go-1-25"},
		{"!!!", "query"},
		{strings.Repeat("a", 60), strings.Repeat("a", 40)},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestReportPath(t *testing.T) {
	got := reportPath("out", 0, "Go Modules", "md")
	if !strings.HasSuffix(got, "001-go-modules.md") {
		t.Errorf("Unexpected path: %s", got)
	}
}

func newFlagCmd(args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addSearchFlags(cmd)
	_ = cmd.ParseFlags(args)
	return cmd
}

func TestRequestTemplate(t *testing.T) {
	cfg := config.Default()
	cfg.Language = "de"

	req, err := requestTemplate(newFlagCmd(), cfg)
	if err != nil {
		t.Fatalf("requestTemplate failed: %v", err)
	}
	if req.Engine != models.EngineGoogle || req.MaxResults != config.DefaultMaxResults || req.Language != "de" {
		t.Errorf("Expected config defaults, got %+v", req)
	}

	req, err = requestTemplate(newFlagCmd("-e", "bing", "-n", "3", "--lang", "fr", "--google-mode", "news_rss"), cfg)
	if err != nil {
		t.Fatalf("requestTemplate failed: %v", err)
	}
	if req.Engine != models.EngineBing || req.MaxResults != 3 || req.Language != "fr" || req.GoogleMode != models.GoogleModeNewsRSS {
		t.Errorf("Expected flag overrides, got %+v", req)
	}
}

func TestRetryConfig(t *testing.T) {
	cfg := config.Default()
	if rc := retryConfig(newFlagCmd(), cfg); rc.MaxAttempts != cfg.Retries {
		t.Errorf("Expected %d attempts, got %d", cfg.Retries, rc.MaxAttempts)
	}
	if rc := retryConfig(newFlagCmd("--retries", "4"), cfg); rc.MaxAttempts != 4 {
		t.Errorf("Expected 4 attempts, got %d", rc.MaxAttempts)
	}
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	printResults(&buf, output.NewReport(models.EngineBing, "go", []models.SearchResult{
		{Title: "Go", URL: "https://go.dev/", Snippet: "The Go language", Source: models.SourceBingRSS, PublishedAt: "yesterday"},
	}))
	out := buf.String()
	for _, want := range []string{"Go", "https://go.dev/", "The Go language", "bing_rss", "yesterday"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	printResults(&buf, output.NewReport(models.EngineBing, "go", nil))
	if !strings.Contains(buf.String(), "No results.") {
		t.Error("Expected empty notice")
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"json", "csv", "html", "md"} {
		if !validFormat(f) {
			t.Errorf("Expected %s to be valid", f)
		}
	}
	if validFormat("xml") {
		t.Error("Expected xml to be rejected")
	}
}

type failingSearcher struct{ bad string }

func (s failingSearcher) Search(ctx context.Context, req models.SearchRequest) ([]models.SearchResult, error) {
	if req.Query == s.bad {
		return nil, errors.New("engine unreachable")
	}
	return []models.SearchResult{{Title: req.Query + " result", URL: "https://example.com/" + req.Query, Source: models.SourceBingRSS}}, nil
}

func TestExecuteBatch_FailedQueryReturnsError(t *testing.T) {
	requests := []models.SearchRequest{
		{Engine: models.EngineBing, Query: "good", MaxResults: 3},
		{Engine: models.EngineBing, Query: "bad", MaxResults: 3},
	}
	var stdout, stderr bytes.Buffer
	runner := batch.New(failingSearcher{bad: "bad"}, 2)

	err := executeBatch(context.Background(), &stdout, &stderr, runner, requests, batchOptions{format: "json", json: true, quiet: true})
	if err == nil || !strings.Contains(err.Error(), "1 of 2 queries failed") {
		t.Fatalf("Expected 1 of 2 failure error, got %v", err)
	}
	if !strings.Contains(stdout.String(), "good result") {
		t.Errorf("Expected successful report on stdout, got:\n%s", stdout.String())
	}
	if strings.Contains(stdout.String(), "engine unreachable") {
		t.Error("Expected failure to stay off stdout")
	}
	if !strings.Contains(stderr.String(), `"bad"`) || !strings.Contains(stderr.String(), "engine unreachable") {
		t.Errorf("Expected failure on stderr, got:\n%s", stderr.String())
	}
}

func TestExecuteBatch_AllSucceed(t *testing.T) {
	requests := []models.SearchRequest{{Engine: models.EngineBing, Query: "go", MaxResults: 3}}
	var stdout, stderr bytes.Buffer
	runner := batch.New(failingSearcher{}, 1)

	if err := executeBatch(context.Background(), &stdout, &stderr, runner, requests, batchOptions{format: "json", quiet: true}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(stdout.String(), "go result") {
		t.Errorf("Expected results on stdout, got:\n%s", stdout.String())
	}
}

func TestRenderHelp_PlainWhenColorsDisabled(t *testing.T) {
	prev := ui.Enabled
	ui.Enabled = false
	defer func() { ui.Enabled = prev }()

	var buf bytes.Buffer
	searchCmd.SetOut(&buf)
	defer searchCmd.SetOut(nil)

	renderHelp(searchCmd, nil)
	out := buf.String()
	if strings.Contains(out, "\033") {
		t.Errorf("Expected no escape codes, got:\n%q", out)
	}
	for _, want := range []string{"Usage", "Flags", "Global Flags", "--engine", "--json"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected help to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderHelp_ListsCommands(t *testing.T) {
	prev := ui.Enabled
	ui.Enabled = false
	defer func() { ui.Enabled = prev }()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	renderHelp(rootCmd, nil)
	for _, want := range []string{"Commands", "search", "batch", "engines"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected root help to contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four\n- item", 9)
	want := "one two\nthree\nfour\n- item"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
