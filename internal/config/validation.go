package config

import (
	"fmt"
	"strings"
)

var googleModes = map[string]bool{"auto": true, "web_html": true, "news_rss": true}

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must be >= 0")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be > 0")
	}
	if c.MaxResults <= 0 || c.MaxResults > DefaultMaxMaxResults {
		return fmt.Errorf("max results must be between 1 and %d", DefaultMaxMaxResults)
	}
	if c.Retries <= 0 || c.Retries > DefaultMaxRetries {
		return fmt.Errorf("retries must be between 1 and %d", DefaultMaxRetries)
	}
	if c.Concurrency <= 0 || c.Concurrency > DefaultMaxConcurrency {
		return fmt.Errorf("concurrency must be between 1 and %d", DefaultMaxConcurrency)
	}
	if !googleModes[strings.ToLower(c.GoogleMode)] {
		return fmt.Errorf("unsupported google mode: %s", c.GoogleMode)
	}
	if strings.TrimSpace(c.Language) == "" {
		return fmt.Errorf("language must not be empty")
	}
	return nil
}
