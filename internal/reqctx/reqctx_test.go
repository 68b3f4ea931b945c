package reqctx

import (
	"context"
	"errors"
	"testing"
)

func TestWithRequestContext_KeepsExistingID(t *testing.T) {
	ctx := WithRequestContext(context.Background())
	first := GetRequestContext(ctx).RequestID
	if len(first) != 16 {
		t.Fatalf("Expected 16 hex chars, got %q", first)
	}

	again := WithRequestContext(ctx)
	if id := GetRequestContext(again).RequestID; id != first {
		t.Errorf("Expected request id %s to be kept, got %s", first, id)
	}
}

func TestGetRequestContext_Unknown(t *testing.T) {
	if id := GetRequestContext(context.Background()).RequestID; id != "unknown" {
		t.Errorf("Expected 'unknown', got %s", id)
	}
}

func TestNewRequestError(t *testing.T) {
	ctx := WithRequestContext(context.Background())
	base := errors.New("boom")

	err := NewRequestError(ctx, base)
	if !errors.Is(err, base) {
		t.Error("Expected wrapped error to match base error")
	}
	if NewRequestError(ctx, nil) != nil {
		t.Error("Expected nil for nil error")
	}
}
