package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/platform"
)

// meterName is the instrumentation scope name for trawl metrics.
const meterName = "github.com/xraph/trawl"

// Metrics returns middleware that records platform-call metrics using
// the global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - trawl.platform.request.duration (Float64Histogram): platform call
//     time in seconds, with attributes: op ("submit" or "outcome"),
//     status ("ok", "declined" or "error")
//   - trawl.jobs.submitted (Int64Counter): accepted submissions, with
//     attribute: spider
//   - trawl.jobs.finished (Int64Counter): observed terminal outcomes,
//     with attribute: outcome
func Metrics() Middleware {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter(meter metric.Meter) Middleware {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"trawl.platform.request.duration",
		metric.WithDescription("Duration of platform API calls in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	submitted, sErr := meter.Int64Counter(
		"trawl.jobs.submitted",
		metric.WithDescription("Total jobs accepted by the platform"),
		metric.WithUnit("{job}"),
	)
	_ = sErr // noop fallback guaranteed by OTel API contract

	finished, fErr := meter.Int64Counter(
		"trawl.jobs.finished",
		metric.WithDescription("Total terminal outcomes observed"),
		metric.WithUnit("{job}"),
	)
	_ = fErr // noop fallback guaranteed by OTel API contract

	return func(next platform.Client) platform.Client {
		return &metricsClient{
			wrapped:   wrapped{next: next},
			duration:  duration,
			submitted: submitted,
			finished:  finished,
		}
	}
}

type metricsClient struct {
	wrapped
	duration  metric.Float64Histogram
	submitted metric.Int64Counter
	finished  metric.Int64Counter
}

func (c *metricsClient) Submit(ctx context.Context, spider string, req platform.SubmitRequest) (platform.Handle, error) {
	start := time.Now()
	h, err := c.next.Submit(ctx, spider, req)
	elapsed := time.Since(start).Seconds()

	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case h == "":
		status = "declined"
	default:
		c.submitted.Add(ctx, 1, metric.WithAttributes(attribute.String("spider", spider)))
	}
	c.duration.Record(ctx, elapsed, metric.WithAttributes(
		attribute.String("op", "submit"),
		attribute.String("status", status),
	))
	return h, err
}

func (c *metricsClient) Outcome(ctx context.Context, h platform.Handle) (trawl.Outcome, bool, error) {
	start := time.Now()
	outcome, done, err := c.next.Outcome(ctx, h)
	elapsed := time.Since(start).Seconds()

	status := "ok"
	if err != nil {
		status = "error"
	}
	c.duration.Record(ctx, elapsed, metric.WithAttributes(
		attribute.String("op", "outcome"),
		attribute.String("status", status),
	))
	if err == nil && done {
		c.finished.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))
	}
	return outcome, done, err
}
