package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/event"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxTracedCommandLength = 512

var commandWhitespaceRegex = regexp.MustCompile(`\s+`)

// Commands whose payload carries stored documents, device tokens included.
var unloggedCommandBodies = map[string]struct{}{
	"insert":        {},
	"update":        {},
	"findAndModify": {},
}

// commandTracer opens one client span per Mongo command, keyed by the
// driver request id so the finish events can close it.
type commandTracer struct {
	tracer trace.Tracer
	spans  sync.Map
}

func newCommandMonitor() *event.CommandMonitor {
	t := &commandTracer{tracer: otel.Tracer("findrival/internal/infrastructure/repository/mongodb")}
	return &event.CommandMonitor{
		Started:   t.started,
		Succeeded: t.succeeded,
		Failed:    t.failed,
	}
}

func (t *commandTracer) started(ctx context.Context, evt *event.CommandStartedEvent) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("db.system", "mongodb"),
		attribute.String("db.name", evt.DatabaseName),
		attribute.String("db.operation", evt.CommandName),
	}
	if collection, ok := evt.Command.Lookup(evt.CommandName).StringValueOK(); ok {
		attrs = append(attrs, attribute.String("db.mongodb.collection", collection))
	}
	if _, skip := unloggedCommandBodies[evt.CommandName]; !skip {
		attrs = append(attrs, attribute.String("db.statement", formatCommandForTrace(evt.Command.String())))
	}

	_, span := t.tracer.Start(ctx, "mongo."+evt.CommandName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	t.spans.Store(evt.RequestID, span)
}

func (t *commandTracer) succeeded(_ context.Context, evt *event.CommandSucceededEvent) {
	if span, ok := t.take(evt.RequestID); ok {
		span.End()
	}
}

func (t *commandTracer) failed(_ context.Context, evt *event.CommandFailedEvent) {
	span, ok := t.take(evt.RequestID)
	if !ok {
		return
	}
	msg := fmt.Sprint(evt.Failure)
	span.SetStatus(codes.Error, msg)
	span.SetAttributes(attribute.String("db.mongodb.failure", msg))
	span.End()
}

func (t *commandTracer) take(requestID int64) (trace.Span, bool) {
	value, ok := t.spans.LoadAndDelete(requestID)
	if !ok {
		return nil, false
	}
	span, ok := value.(trace.Span)
	return span, ok
}

func formatCommandForTrace(command string) string {
	command = strings.TrimSpace(command)
	if command == "" {
		return command
	}

	normalized := commandWhitespaceRegex.ReplaceAllString(command, " ")
	if len(normalized) <= maxTracedCommandLength {
		return normalized
	}

	return normalized[:maxTracedCommandLength] + "..."
}
