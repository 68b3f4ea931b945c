package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel       = "info"
	DefaultJSONLog        = false
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRateLimitRPS   = 1.0
	DefaultRateLimitBurst = 1
	DefaultLanguage       = "en"
	DefaultGoogleMode     = "auto"
	DefaultEngine         = "google"
	DefaultMaxResults     = 10
	DefaultMaxMaxResults  = 100
	DefaultRetries        = 1
	DefaultMaxRetries     = 10
	DefaultConcurrency    = 4
	DefaultMaxConcurrency = 32
)
