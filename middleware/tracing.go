package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/platform"
)

// tracerName is the instrumentation scope name for trawl tracing.
const tracerName = "github.com/xraph/trawl"

// Tracing returns middleware that wraps platform calls in OpenTelemetry
// spans. If no TracerProvider is configured globally, the default noop
// tracer is used and this middleware becomes a pass-through with zero
// overhead.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided
// tracer. This variant allows injecting a specific TracerProvider for
// testing or when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(next platform.Client) platform.Client {
		return &tracingClient{wrapped: wrapped{next: next}, tracer: tracer}
	}
}

type tracingClient struct {
	wrapped
	tracer trace.Tracer
}

func (c *tracingClient) Submit(ctx context.Context, spider string, req platform.SubmitRequest) (platform.Handle, error) {
	ctx, span := c.tracer.Start(ctx, "trawl.platform.submit",
		trace.WithAttributes(
			attribute.String("trawl.spider", spider),
			attribute.Int("trawl.units", req.Units),
			attribute.StringSlice("trawl.tags", req.Tags),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	h, err := c.next.Submit(ctx, spider, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return h, err
	}
	span.SetAttributes(attribute.String("trawl.handle", h.String()))
	return h, nil
}

func (c *tracingClient) Outcome(ctx context.Context, h platform.Handle) (trawl.Outcome, bool, error) {
	ctx, span := c.tracer.Start(ctx, "trawl.platform.outcome",
		trace.WithAttributes(attribute.String("trawl.handle", h.String())),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	outcome, done, err := c.next.Outcome(ctx, h)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return outcome, done, err
	}
	span.SetAttributes(
		attribute.Bool("trawl.finished", done),
		attribute.String("trawl.outcome", string(outcome)),
	)
	return outcome, done, nil
}
