package urlutil

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://example.com/path",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("expected valid, got error: %v", err)
		}
	}

	invalid := []string{"ftp://example.com", "//example.com", "http:///"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Fatalf("expected invalid for %s", u)
		}
	}
}

func TestIsHTTPURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://a.b", true},
		{"http://example.com/x?y=1", true},
		{"javascript:alert(1)", false},
		{"mailto:someone@example.com", false},
		{"/relative/path", false},
		{"#top", false},
		{"", false},
		{"https://", false},
		{"://broken", false},
	}
	for _, tt := range tests {
		if got := IsHTTPURL(tt.in); got != tt.want {
			t.Errorf("IsHTTPURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeGoogleURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/url?q=https://example.com/path&sa=U", "https://example.com/path"},
		{"/url?q=https%3A%2F%2Fexample.com%2Fa%3Fb%3Dc&sa=U", "https://example.com/a?b=c"},
		{"/url?sa=U&ved=x", ""},
		{"https://example.com", "https://example.com"},
		{"/search?q=other", "/search?q=other"},
	}
	for _, tt := range tests {
		if got := NormalizeGoogleURL(tt.in); got != tt.want {
			t.Errorf("NormalizeGoogleURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDuckDuckGoURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com", "https://example.com"},
		{"https://duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fx&rut=abc", "https://example.com/x"},
		{"https://example.org", "https://example.org"},
		{"//example.net/page", "https://example.net/page"},
		{"//duckduckgo.com/l/?rut=abc", "https://duckduckgo.com/l/?rut=abc"},
		{"https://duckduckgo.com/about", "https://duckduckgo.com/about"},
	}
	for _, tt := range tests {
		if got := NormalizeDuckDuckGoURL(tt.in); got != tt.want {
			t.Errorf("NormalizeDuckDuckGoURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHost(t *testing.T) {
	if h := Host("https://www.google.com/search"); h != "www.google.com" {
		t.Errorf("Expected www.google.com, got %s", h)
	}
	if h := Host("/relative"); h != "" {
		t.Errorf("Expected empty host, got %s", h)
	}
}
