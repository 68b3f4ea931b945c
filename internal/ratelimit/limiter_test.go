package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestDomainLimiter_PerHostBuckets(t *testing.T) {
	dl := NewDomainLimiter(0.001, 1)

	if err := dl.Wait(context.Background(), "https://www.google.com/search"); err != nil {
		t.Fatalf("Expected first google request to pass, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := dl.Wait(ctx, "https://www.google.com/search?q=x"); err == nil {
		t.Error("Expected second google request to be throttled")
	}

	if err := dl.Wait(context.Background(), "https://www.bing.com/search"); err != nil {
		t.Errorf("Expected bing to have its own bucket, got %v", err)
	}
}

func TestDomainLimiter_WaitHonoursContext(t *testing.T) {
	dl := NewDomainLimiter(0.001, 1)
	if err := dl.Wait(context.Background(), "https://html.duckduckgo.com/html/"); err != nil {
		t.Fatalf("Expected first request to pass, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := dl.Wait(ctx, "https://html.duckduckgo.com/html/"); err == nil {
		t.Error("Expected Wait to fail on a cancelled context")
	}
}

func TestDomainLimiter_InvalidURLPasses(t *testing.T) {
	dl := NewDomainLimiter(1, 1)
	if err := dl.Wait(context.Background(), "::not a url"); err != nil {
		t.Errorf("Expected nil for unparsable URL, got %v", err)
	}
}

func TestDomainLimiter_Defaults(t *testing.T) {
	dl := NewDomainLimiter(0, 0)
	if dl.perHost != 1 || dl.burst != 1 {
		t.Errorf("Expected 1 rps burst 1, got %v burst %d", dl.perHost, dl.burst)
	}
}
