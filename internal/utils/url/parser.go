package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	googleRedirectPrefix = "/url?"
	duckDuckGoDomain     = "duckduckgo.com"
	duckDuckGoRedirect   = "/l/"
)

// ValidateURL checks that urlStr is an absolute http(s) URL with a host
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// IsHTTPURL is the admission gate for every emitted result URL.
func IsHTTPURL(urlStr string) bool {
	return ValidateURL(urlStr) == nil
}

// Host returns the host component of urlStr, or "" if it does not parse
func Host(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}

// NormalizeGoogleURL unwraps Google's /url?q= redirect links.
// A redirect link without q yields "".
func NormalizeGoogleURL(href string) string {
	if !strings.HasPrefix(href, googleRedirectPrefix) {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("q")
}

// NormalizeDuckDuckGoURL promotes protocol-relative links to https and
// unwraps DuckDuckGo's /l/?uddg= redirect links.
func NormalizeDuckDuckGoURL(href string) string {
	candidate := href
	if strings.HasPrefix(href, "//") {
		candidate = "https:" + href
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return candidate
	}
	if strings.HasSuffix(u.Host, duckDuckGoDomain) && strings.HasPrefix(u.Path, duckDuckGoRedirect) {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return candidate
}
