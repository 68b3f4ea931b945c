// Package fetch issues the single browser-like GET behind every provider
// and screens responses for anti-bot challenge pages.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/law-makers/websearch/internal/engine"
	"github.com/law-makers/websearch/internal/proxy"
	"github.com/law-makers/websearch/internal/ratelimit"
	"github.com/law-makers/websearch/internal/reqctx"
	"github.com/law-makers/websearch/internal/retry"
	urlutil "github.com/law-makers/websearch/internal/utils/url"
)

const (
	// DefaultUserAgent is a current desktop Chrome on macOS
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
	DefaultAccept  = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	DefaultReferer = "https://www.google.com/"
	DefaultTimeout = 30 * time.Second
)

// maxBodyBytes caps how much of a response is read. Longer bodies are cut.
var maxBodyBytes int64 = 10 << 20

// Request describes one outbound GET
type Request struct {
	Endpoint     string     // absolute URL without query string
	Params       url.Values // repeated keys for multi-valued params
	Language     string     // used for Accept-Language
	Timeout      time.Duration
	CheckBlocked bool
	Headers      map[string]string
}

// Fetcher performs requests. It holds no per-call state and is safe for
// concurrent use.
type Fetcher struct {
	client    *http.Client
	userAgent string
	headers   map[string]string
	timeout   time.Duration
	limiter   ratelimit.RateLimiter
	proxies   *proxy.ProxyPool
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithUserAgent overrides DefaultUserAgent
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithHeaders adds headers to every request, after the defaults
func WithHeaders(h map[string]string) Option {
	return func(f *Fetcher) {
		for k, v := range h {
			f.headers[k] = v
		}
	}
}

// WithTimeout sets the deadline for requests that carry none
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithRateLimiter makes every request wait on lim first
func WithRateLimiter(lim ratelimit.RateLimiter) Option {
	return func(f *Fetcher) { f.limiter = lim }
}

// WithProxyPool routes each request through the next proxy of pool
func WithProxyPool(pool *proxy.ProxyPool) Option {
	return func(f *Fetcher) { f.proxies = pool }
}

// New creates a Fetcher. A nil client means a fresh http.Client.
func New(client *http.Client, opts ...Option) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	f := &Fetcher{
		client:    client,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		headers:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs req and returns the decoded body text.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = reqctx.WithRequestContext(ctx)
	logger := reqctx.Logger(ctx)

	if err := urlutil.ValidateURL(req.Endpoint); err != nil {
		return "", engine.NewEngineError(engine.ErrCodeInvalidArgument, "invalid endpoint", err).
			WithDetail("endpoint", req.Endpoint)
	}
	host := urlutil.Host(req.Endpoint)
	target := buildURL(req.Endpoint, req.Params)

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = f.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, target); err != nil {
			return "", engine.NewTransportError("rate limiter wait aborted", err).WithDetail("host", host)
		}
	}

	start := time.Now()
	logger.Debug().
		Str("url", target).
		Bool("check_blocked", req.CheckBlocked).
		Msg("Starting fetch")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", engine.NewEngineError(engine.ErrCodeInvalidArgument, "failed to create request", err)
	}
	f.setHeaders(httpReq, req)

	client, proxyURL, err := f.clientFor()
	if err != nil {
		return "", engine.NewTransportError("invalid proxy", err).WithDetail("proxy", proxyURL)
	}
	if client != f.client {
		defer client.CloseIdleConnections()
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		if proxyURL != "" {
			f.proxies.MarkFailed(proxyURL)
		}
		msg := "failed to fetch URL"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "request timeout"
		}
		return "", engine.NewTransportError(msg, err).WithDetail("host", host)
	}
	defer resp.Body.Close()

	if proxyURL != "" {
		f.proxies.MarkHealthy(proxyURL)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", engine.NewTransportError("failed to read response body", err).WithDetail("host", host)
	}
	if int64(len(raw)) > maxBodyBytes {
		raw = raw[:maxBodyBytes]
		logger.Warn().
			Str("host", host).
			Int64("limit", maxBodyBytes).
			Msg("Response body truncated")
	}
	body := decodeBody(raw, resp.Header.Get("Content-Type"))

	logger.Debug().
		Str("url", target).
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Dur("duration", time.Since(start)).
		Msg("Fetch completed")

	if req.CheckBlocked {
		if marker, blocked := DetectChallenge(body); blocked {
			logger.Warn().
				Str("host", host).
				Str("marker", marker).
				Int("status", resp.StatusCode).
				Msg("Challenge page detected")
			return "", engine.NewBlockedError(host).WithDetail("marker", marker)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := retry.NewHTTPError(resp.StatusCode, http.StatusText(resp.StatusCode), host)
		ee := engine.NewEngineError(engine.ErrCodeTransport, "unexpected status", httpErr).
			WithDetail("host", host).
			WithDetail("status", resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			ee.WithRetry()
		}
		return "", ee
	}

	return body, nil
}

func (f *Fetcher) setHeaders(httpReq *http.Request, req Request) {
	language := req.Language
	if language == "" {
		language = "en"
	}
	httpReq.Header.Set("User-Agent", f.userAgent)
	httpReq.Header.Set("Accept", DefaultAccept)
	httpReq.Header.Set("Accept-Language", language)
	httpReq.Header.Set("Cache-Control", "no-cache")
	httpReq.Header.Set("Referer", DefaultReferer)

	for key, value := range f.headers {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
}

// clientFor returns the client for one request. With a proxy pool it is a
// copy of the base client whose transport goes through the next proxy.
func (f *Fetcher) clientFor() (*http.Client, string, error) {
	if f.proxies.Len() == 0 {
		return f.client, "", nil
	}
	raw, proxyURL, err := f.proxies.Next()
	if err != nil {
		return nil, raw, fmt.Errorf("parse proxy %q: %w", raw, err)
	}

	var transport *http.Transport
	if base, ok := f.client.Transport.(*http.Transport); ok && base != nil {
		transport = base.Clone()
	} else {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	transport.Proxy = http.ProxyURL(proxyURL)

	client := *f.client
	client.Transport = transport
	return &client, raw, nil
}

func buildURL(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + params.Encode()
}
