package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var handlerTracer = otel.Tracer("footmate/internal/interfaces/httpapi")

// handlerSpan opens a child span for a handler. Requests the router does not
// trace (health probes) carry no parent and get the no-op span from ctx.
func handlerSpan(r *http.Request, op string) (context.Context, trace.Span) {
	ctx := r.Context()
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}

	attrs := []attribute.KeyValue{attribute.String("http.route", r.Pattern)}
	if p, ok := principalFromContext(ctx); ok {
		attrs = append(attrs,
			attribute.String("enduser.id", p.UserID),
			attribute.String("enduser.role", string(p.Role)),
		)
	}
	return handlerTracer.Start(ctx, "httpapi.Handler."+op, trace.WithAttributes(attrs...))
}

func recordServerError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, "unmapped error")
}
