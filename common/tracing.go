package common

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for request tracing.
const tracerName = "github.com/kris48k/gcloud-node"

// Tracing returns an interceptor that wraps request dispatch in an
// OpenTelemetry span. If no TracerProvider is configured globally, the
// default noop tracer is used and this interceptor becomes a pass-through
// with zero overhead.
//
// Span attributes include: http.request.method, url.path, and, on success,
// http.response.status_code. On error, the span status is set to
// codes.Error with the error message.
func Tracing() Interceptor {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Interceptor {
	return func(ctx context.Context, req *Request, next Handler) (*APIResponse, error) {
		ctx, span := tracer.Start(ctx, "gcloud.request",
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.path", req.Path),
			),
			trace.WithSpanKind(trace.SpanKindClient),
		)
		defer span.End()

		resp, err := next(ctx, req)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
			span.SetStatus(codes.Ok, "")
		}

		return resp, err
	}
}
