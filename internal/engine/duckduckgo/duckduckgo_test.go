package duckduckgo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/law-makers/websearch/internal/engine"
	"github.com/law-makers/websearch/internal/fetch"
	urlutil "github.com/law-makers/websearch/internal/utils/url"
	"github.com/law-makers/websearch/pkg/models"
)

const ddgFixture = `<!DOCTYPE html>
<html>
<body>
<div id="links">
	<div class="result results_links web-result">
		<h2 class="result__title">
			<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&amp;rut=abc">Documentation - <b>The Go</b> Programming Language</a>
		</h2>
		<a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F">The Go programming language is an <b>open source</b> project</a>
	</div>
	<div class="result">
		<h2><a class="renamed__title" href="https://gobyexample.com/">Go by Example</a></h2>
		<div class="result__snippet">Hands-on   introduction</div>
	</div>
	<div class="result">
		<h2>No anchor in this block</h2>
	</div>
	<div class="result">
		<a class="result__a" href="javascript:void(0)">Bad link</a>
	</div>
	<div class="result">
		<a class="result__a" href="/relative/link">Relative</a>
	</div>
	<div class="result">
		<a class="result__a" href="https://example.org/plain">Plain result</a>
	</div>
</div>
</body>
</html>`

func TestParse_Fixture(t *testing.T) {
	results, err := New(nil).Parse(ddgFixture, 10)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d: %#v", len(results), results)
	}

	first := results[0]
	if first.URL != "https://go.dev/doc/" {
		t.Errorf("Expected unwrapped URL, got %s", first.URL)
	}
	if first.Title != "Documentation - The Go Programming Language" {
		t.Errorf("Unexpected title: %q", first.Title)
	}
	if first.Snippet != "The Go programming language is an open source project" {
		t.Errorf("Unexpected snippet: %q", first.Snippet)
	}

	second := results[1]
	if second.URL != "https://gobyexample.com/" || second.Title != "Go by Example" {
		t.Errorf("Expected fallback anchor result, got %#v", second)
	}
	if second.Snippet != "Hands-on introduction" {
		t.Errorf("Unexpected snippet: %q", second.Snippet)
	}

	third := results[2]
	if third.URL != "https://example.org/plain" || third.Snippet != "" {
		t.Errorf("Expected plain result with empty snippet, got %#v", third)
	}

	for _, r := range results {
		if r.Source != models.SourceDuckDuckGo {
			t.Errorf("Expected source duckduckgo_html, got %s", r.Source)
		}
		if !urlutil.IsHTTPURL(r.URL) {
			t.Errorf("Emitted non-http URL %s", r.URL)
		}
		if r.PublishedAt != "" {
			t.Errorf("Expected no published_at, got %s", r.PublishedAt)
		}
	}
}

func TestParse_RespectsMaxResults(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, `<div class="result"><a class="result__a" href="https://example.com/%d">Result %d</a></div>`, i, i)
	}
	b.WriteString("</body></html>")

	for _, max := range []int{1, 5, 15, 30} {
		results, err := New(nil).Parse(b.String(), max)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		want := max
		if want > 15 {
			want = 15
		}
		if len(results) != want {
			t.Errorf("max=%d: expected %d results, got %d", max, want, len(results))
		}
	}
}

func TestParse_NoBlocks(t *testing.T) {
	results, err := New(nil).Parse("<html><body><p>No results.</p></body></html>", 5)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty list, got %d", len(results))
	}
}

func TestParams(t *testing.T) {
	if kl := Params("x", "fr").Get("kl"); kl != "fr-fr" {
		t.Errorf("Expected kl fr-fr, got %s", kl)
	}
	if kl := Params("x", "").Get("kl"); kl != "wt-wt" {
		t.Errorf("Expected kl wt-wt, got %s", kl)
	}
}

func TestSearch_Blocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="anomaly-modal">Unfortunately, bots use DuckDuckGo too. Please complete the CAPTCHA.</div></body></html>`))
	}))
	defer server.Close()

	p := New(fetch.New(server.Client())).WithEndpoint(server.URL + "/html/")
	_, err := p.Search(context.Background(), "golang", 5, "en")
	if !engine.IsBlocked(err) {
		t.Errorf("Expected blocked error, got %v", err)
	}
}

func TestSearch_EndToEnd(t *testing.T) {
	var gotQuery, gotRegion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotRegion = r.URL.Query().Get("kl")
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		w.Write([]byte(ddgFixture))
	}))
	defer server.Close()

	p := New(fetch.New(server.Client())).WithEndpoint(server.URL + "/html/")
	results, err := p.Search(context.Background(), "go docs", 2, "en")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}
	if gotQuery != "go docs" || gotRegion != "en-en" {
		t.Errorf("Unexpected params q=%s kl=%s", gotQuery, gotRegion)
	}
}
