package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Latency buckets in milliseconds. Sleeper calls run up to the 30s client timeout, and the
// player directory alone routinely takes seconds.
var (
	requestBucketsMs = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}
	sleeperBucketsMs = []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 20000, 30000}
	retryBucketsMs   = []float64{250, 1000, 5000, 15000, 60000}
)

type otelInstruments struct {
	ctx            context.Context
	requests       metric.Int64Counter
	requestLatency metric.Float64Histogram
	calls          metric.Int64Counter
	callErrors     metric.Int64Counter
	callLatency    metric.Float64Histogram
	rateLimitHits  metric.Int64Counter
	retryAfter     metric.Float64Histogram
	playersDecoded metric.Int64Counter
}

// instrumentBuilder collects the first creation error so the constructor reads as a list.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) counter(name, unit, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithUnit(unit), metric.WithDescription(desc))
	if err != nil && b.err == nil {
		b.err = err
	}
	return c
}

func (b *instrumentBuilder) histogram(name, desc string, buckets []float64) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name,
		metric.WithUnit("ms"),
		metric.WithDescription(desc),
		metric.WithExplicitBucketBoundaries(buckets...),
	)
	if err != nil && b.err == nil {
		b.err = err
	}
	return h
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	b := &instrumentBuilder{meter: provider.Meter(defaultServiceName)}
	inst := &otelInstruments{
		ctx:            context.Background(),
		requests:       b.counter("http_requests_total", "{request}", "API requests by method, route pattern and status."),
		requestLatency: b.histogram("http_request_duration_ms", "API request latency.", requestBucketsMs),
		calls:          b.counter("sleeper_calls_total", "{call}", "Sleeper calls by operation."),
		callErrors:     b.counter("sleeper_call_errors_total", "{call}", "Failed Sleeper calls by operation and error code."),
		callLatency:    b.histogram("sleeper_call_duration_ms", "Sleeper call latency including decoding.", sleeperBucketsMs),
		rateLimitHits:  b.counter("sleeper_rate_limited_total", "{response}", "HTTP 429 responses from Sleeper."),
		retryAfter:     b.histogram("sleeper_retry_after_ms", "Retry-After hints sent with 429 responses.", retryBucketsMs),
		playersDecoded: b.counter("players_decoded_total", "{player}", "Player records decoded from directory downloads."),
	}
	if b.err != nil {
		return nil, b.err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, route string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, route),
		attribute.Int(AttrStatus, status),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatency.Record(o.ctx, millis(duration), attrs)
}

func (o *otelInstruments) recordProviderAttempt(operation string, duration time.Duration, err error, code string) {
	if o == nil {
		return
	}
	op := attribute.String(AttrOperation, operation)
	o.calls.Add(o.ctx, 1, metric.WithAttributes(op))
	o.callLatency.Record(o.ctx, millis(duration), metric.WithAttributes(op))
	if err != nil {
		o.callErrors.Add(o.ctx, 1, metric.WithAttributes(op, attribute.String(AttrErrorCode, code)))
	}
}

func (o *otelInstruments) recordRateLimit(operation string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	op := metric.WithAttributes(attribute.String(AttrOperation, operation))
	o.rateLimitHits.Add(o.ctx, 1, op)
	if retryAfter > 0 {
		o.retryAfter.Record(o.ctx, millis(retryAfter), op)
	}
}

func (o *otelInstruments) recordPlayersDecoded(sport string, count int) {
	if o == nil || count <= 0 {
		return
	}
	o.playersDecoded.Add(o.ctx, int64(count), metric.WithAttributes(attribute.String(AttrSport, sport)))
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
