package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	l := New(Config{Level: "warn", Output: &buf, Service: "riviera"})

	l.LogInfo("skipped %d", 1)
	l.LogWarn("kept %d", 2)

	out := strings.TrimSpace(buf.String())
	if strings.Count(out, "\n") != 0 {
		t.Fatalf("expected exactly one record, got %q", out)
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("record is not json: %v", err)
	}

	if rec["msg"] != "kept 2" {
		t.Errorf("msg = %v, want %q", rec["msg"], "kept 2")
	}

	if rec["service"] != "riviera" {
		t.Errorf("service = %v, want riviera", rec["service"])
	}
}

func TestFromContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer

	l := New(Config{Output: &buf, Format: FormatText})

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		SpanID:  trace.SpanID{1, 2, 3, 4, 5, 6, 7, 8},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l.FromContext(ctx).LogInfo("booked")

	if !strings.Contains(buf.String(), "trace_id="+sc.TraceID().String()) {
		t.Errorf("record %q has no trace id", buf.String())
	}

	if got := l.FromContext(context.Background()); got != l {
		t.Error("FromContext() without span should return the same logger")
	}
}
