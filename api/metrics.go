package api

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName    = "tasks-api/api"
	tasksSpanName = "tasks.list"
	tasksRoute    = "/api/tasks"
)

// taskRequestMetrics records stage timings for the list endpoint and emits
// them as a single structured log event plus a trace span when the request
// finishes.
type taskRequestMetrics struct {
	logger         *log.Logger
	span           trace.Span
	start          time.Time
	fetchDuration  time.Duration
	encodeDuration time.Duration
	tasksReturned  int
	errorStage     string
}

// newTaskRequestMetrics starts the request span and returns the recorder
// together with the span context the handler should continue with. With no
// tracer provider installed the span is a no-op.
func newTaskRequestMetrics(ctx context.Context, logger *log.Logger) (*taskRequestMetrics, context.Context) {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, tasksSpanName)
	return &taskRequestMetrics{
		logger: logger,
		span:   span,
		start:  time.Now(),
	}, spanCtx
}

func (m *taskRequestMetrics) ObserveFetch(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.fetchDuration = duration
}

func (m *taskRequestMetrics) ObserveEncode(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.encodeDuration = duration
}

func (m *taskRequestMetrics) SetTasksReturned(count int) {
	if count < 0 {
		count = 0
	}
	m.tasksReturned = count
}

func (m *taskRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

func (m *taskRequestMetrics) Log(status int, err error) {
	if m == nil {
		return
	}

	total := time.Since(m.start)

	if m.span != nil {
		m.span.SetAttributes(
			attribute.String("http.route", tasksRoute),
			attribute.Int("http.status_code", status),
			attribute.Int("tasks.returned", m.tasksReturned),
			attribute.Float64("tasks.total_ms", durationToMillis(total)),
		)
		if m.errorStage != "" {
			m.span.SetAttributes(attribute.String("tasks.error_stage", m.errorStage))
		}
		if err != nil {
			m.span.SetStatus(codes.Error, err.Error())
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
		m.span.End()
	}

	if m.logger == nil {
		return
	}

	fields := log.Fields{
		"route":          tasksRoute,
		"status":         status,
		"total_ms":       durationToMillis(total),
		"tasks_returned": m.tasksReturned,
	}
	if m.fetchDuration > 0 {
		fields["fetch_ms"] = durationToMillis(m.fetchDuration)
	}
	if m.encodeDuration > 0 {
		fields["encode_ms"] = durationToMillis(m.encodeDuration)
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	if m.span != nil {
		if sc := m.span.SpanContext(); sc.HasTraceID() {
			fields["trace_id"] = sc.TraceID().String()
		}
	}

	m.logger.WithFields(fields).Info("tasks.request.metrics")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
