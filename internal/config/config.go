package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout time.Duration
	UserAgent   string
	Proxy       string

	// Rate Limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Search defaults
	Engine     string
	Language   string
	GoogleMode string
	MaxResults int

	// Caller orchestration
	Retries     int
	Concurrency int
}

// Default returns a Config populated with the package defaults
func Default() *Config {
	return &Config{
		LogLevel:       DefaultLogLevel,
		JSONLog:        DefaultJSONLog,
		HTTPTimeout:    DefaultHTTPTimeout,
		RateLimitRPS:   DefaultRateLimitRPS,
		RateLimitBurst: DefaultRateLimitBurst,
		Engine:         DefaultEngine,
		Language:       DefaultLanguage,
		GoogleMode:     DefaultGoogleMode,
		MaxResults:     DefaultMaxResults,
		Retries:        DefaultRetries,
		Concurrency:    DefaultConcurrency,
	}
}

// Load builds a Config by combining defaults, environment variables, and CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	if v := os.Getenv("WEBSEARCH_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("WEBSEARCH_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("WEBSEARCH_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("WEBSEARCH_GOOGLE_MODE"); v != "" {
		cfg.GoogleMode = strings.ToLower(strings.TrimSpace(v))
	}

	if cmd != nil {
		flags := cmd.Flags()
		if f := flags.Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := flags.Lookup("proxy"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Proxy = s
			}
		}
		if f := flags.Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				d, err := time.ParseDuration(s)
				if err != nil {
					return nil, fmt.Errorf("invalid config: timeout %q: %w", s, err)
				}
				cfg.HTTPTimeout = d
			}
		}
		if f := flags.Lookup("rate-limit"); f != nil && f.Changed {
			rps, err := flags.GetFloat64("rate-limit")
			if err != nil {
				return nil, fmt.Errorf("invalid config: %w", err)
			}
			cfg.RateLimitRPS = rps
		}
		if f := flags.Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := flags.Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if f := flags.Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
