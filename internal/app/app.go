// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/law-makers/websearch/internal/config"
	"github.com/law-makers/websearch/internal/fetch"
	"github.com/law-makers/websearch/internal/proxy"
	"github.com/law-makers/websearch/internal/ratelimit"
	"github.com/law-makers/websearch/internal/search"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	RateLimiter ratelimit.RateLimiter
	Proxies     *proxy.ProxyPool
	HTTPClient  *http.Client
	Fetcher     *fetch.Fetcher
	Router      *search.Router
	startTime   time.Time
}

// Option customizes an Application before its fetcher is built
type Option func(*options)

type options struct {
	headers map[string]string
}

// WithHeaders adds headers sent with every outbound request
func WithHeaders(h map[string]string) Option {
	return func(o *options) { o.headers = h }
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the per-host rate limiter (skipped when the rate is 0)
//   - Parses the proxy rotation list
//   - Initializes the HTTP client with proper timeouts
//   - Creates the fetcher and the engine router
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	logLevel := zerolog.ErrorLevel // default: suppress non-verbose info logs
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	fetchOpts := []fetch.Option{fetch.WithTimeout(cfg.HTTPTimeout)}

	var rateLimiter ratelimit.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = ratelimit.NewDomainLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		fetchOpts = append(fetchOpts, fetch.WithRateLimiter(rateLimiter))
		logger.Debug().
			Float64("rps", cfg.RateLimitRPS).
			Int("burst", cfg.RateLimitBurst).
			Msg("Rate limiter initialized")
	}

	var proxies *proxy.ProxyPool
	if list := proxy.ParseList(cfg.Proxy); len(list) > 0 {
		proxies = proxy.NewProxyPool(list)
		fetchOpts = append(fetchOpts, fetch.WithProxyPool(proxies))
		logger.Debug().Int("proxies", proxies.Len()).Msg("Proxy pool initialized")
	}

	if cfg.UserAgent != "" {
		fetchOpts = append(fetchOpts, fetch.WithUserAgent(cfg.UserAgent))
	}
	if len(o.headers) > 0 {
		fetchOpts = append(fetchOpts, fetch.WithHeaders(o.headers))
	}

	// The fetcher owns the per-request deadline; the client timeout is a backstop.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout + 5*time.Second,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			DisableKeepAlives:   false,
		},
	}
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Msg("HTTP client initialized")

	fetcher := fetch.New(httpClient, fetchOpts...)
	router := search.NewRouter(fetcher)
	logger.Debug().Msg("Search router initialized")

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		RateLimiter: rateLimiter,
		Proxies:     proxies,
		HTTPClient:  httpClient,
		Fetcher:     fetcher,
		Router:      router,
		startTime:   time.Now(),
	}

	logger.Info().Msg("Application initialized successfully")
	return app, nil
}

// Close releases idle connections held by the HTTP client.
// Any errors during shutdown are logged but do not prevent other shutdown steps.
func (a *Application) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	a.Logger.Info().Msg("Shutting down application")

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	uptime := time.Since(a.startTime)
	a.Logger.Info().Dur("uptime", uptime).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
