package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func attributesToMap(attrs []attribute.KeyValue) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}

func TestTaskRequestMetricsLogEmitsEventAndSpan(t *testing.T) {
	logger, hook := test.NewNullLogger()
	exporter := setupTestTracer(t)

	metrics, spanCtx := newTaskRequestMetrics(context.Background(), logger)
	if spanCtx == nil {
		t.Fatal("expected a span context")
	}
	metrics.start = metrics.start.Add(-50 * time.Millisecond)
	metrics.ObserveFetch(15 * time.Millisecond)
	metrics.ObserveEncode(5 * time.Millisecond)
	metrics.SetTasksReturned(3)

	metrics.Log(http.StatusOK, nil)

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry")
	}
	if entry.Message != "tasks.request.metrics" {
		t.Fatalf("unexpected message: %s", entry.Message)
	}
	if entry.Data["route"] != tasksRoute {
		t.Fatalf("unexpected route: %v", entry.Data["route"])
	}
	if entry.Data["status"] != http.StatusOK {
		t.Fatalf("unexpected status: %v", entry.Data["status"])
	}
	if entry.Data["tasks_returned"] != 3 {
		t.Fatalf("unexpected tasks_returned: %v", entry.Data["tasks_returned"])
	}
	if total, ok := entry.Data["total_ms"].(float64); !ok || total <= 0 {
		t.Fatalf("expected positive total_ms, got %#v", entry.Data["total_ms"])
	}
	if traceID, ok := entry.Data["trace_id"].(string); !ok || traceID == "" {
		t.Fatalf("expected trace_id, got %#v", entry.Data["trace_id"])
	}
	if _, exists := entry.Data["error_stage"]; exists {
		t.Fatalf("expected no error stage on success, got %v", entry.Data["error_stage"])
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != tasksSpanName {
		t.Fatalf("unexpected span name: %s", span.Name)
	}
	attrs := attributesToMap(span.Attributes)
	if attrs["http.route"] != tasksRoute {
		t.Fatalf("unexpected span route: %#v", attrs["http.route"])
	}
	if code, ok := attrs["http.status_code"].(int64); !ok || code != int64(http.StatusOK) {
		t.Fatalf("unexpected span status code: %#v", attrs["http.status_code"])
	}
	if span.Status.Code != codes.Ok {
		t.Fatalf("expected span status Ok, got %v", span.Status.Code)
	}
}

func TestTaskRequestMetricsLogRecordsFailureStage(t *testing.T) {
	logger, hook := test.NewNullLogger()
	exporter := setupTestTracer(t)

	metrics, _ := newTaskRequestMetrics(context.Background(), logger)
	metrics.SetErrorStage("storage")

	metrics.Log(http.StatusInternalServerError, errors.New("boom"))

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry")
	}
	if entry.Data["error_stage"] != "storage" {
		t.Fatalf("unexpected error stage: %v", entry.Data["error_stage"])
	}
	if entry.Data["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", entry.Data["error"])
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Fatalf("expected span status Error, got %v", spans[0].Status.Code)
	}
	attrs := attributesToMap(spans[0].Attributes)
	if attrs["tasks.error_stage"] != "storage" {
		t.Fatalf("unexpected span error stage: %#v", attrs["tasks.error_stage"])
	}
}
