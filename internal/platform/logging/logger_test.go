package logging

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

func TestFields_PairsAndErrors(t *testing.T) {
	t.Parallel()

	err := errors.New("poll fetch failed")
	got := fields([]any{"season_id", int64(3), "error", err, "trailing"})

	if len(got) != 3 {
		t.Fatalf("unexpected field count: got=%d want=3 (%v)", len(got), got)
	}
	if got[0].Key != "season_id" {
		t.Fatalf("unexpected first key: %q", got[0].Key)
	}
	if got[1].Key != "error" || got[1].Type != zapcore.ErrorType {
		t.Fatalf("error value must become a named error field: %+v", got[1])
	}
	if got[2].Key != "trailing" {
		t.Fatalf("trailing key must be kept: %+v", got[2])
	}
}

func TestFields_NonStringKey(t *testing.T) {
	t.Parallel()

	got := fields([]any{42, "value"})
	if len(got) != 1 || got[0].Key != "field" {
		t.Fatalf("non-string key must fall back to a placeholder: %+v", got)
	}
}

func TestCorrelationFields(t *testing.T) {
	t.Parallel()

	if got := correlationFields(context.Background()); got != nil {
		t.Fatalf("expected no correlation fields without a span, got %v", got)
	}

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01},
		SpanID:  trace.SpanID{0x02},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	got := correlationFields(ctx)
	if len(got) != 2 {
		t.Fatalf("expected trace and span ids, got %v", got)
	}
	if got[0].Key != "trace_id" || got[1].Key != "span_id" {
		t.Fatalf("unexpected correlation keys: %v", got)
	}
}
