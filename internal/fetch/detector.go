// internal/fetch/detector.go
package fetch

import (
	"strings"
)

// challengeMarkers are lower-case phrases found on anti-bot interstitials
var challengeMarkers = []string{
	"enable javascript",
	"unusual traffic",
	"captcha",
	"verify you are human",
	"cloudflare",
	"bot detection",
}

// DetectChallenge returns the first challenge marker found in body
func DetectChallenge(body string) (string, bool) {
	normalized := strings.ToLower(body)
	for _, marker := range challengeMarkers {
		if strings.Contains(normalized, marker) {
			return marker, true
		}
	}
	return "", false
}
