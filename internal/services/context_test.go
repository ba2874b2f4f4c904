package services_test

import (
	"context"
	"testing"

	"ytpd/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithMode(ctx, "direct")
	ctx = services.WithRequestID(ctx, "req-123")

	if mode, ok := services.ModeFromContext(ctx); !ok || mode != "direct" {
		t.Fatalf("unexpected mode: %v %v", mode, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithMode(ctx, "")
	ctx = services.WithRequestID(ctx, "")
	if _, ok := services.ModeFromContext(ctx); ok {
		t.Fatal("expected no mode value")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
}
