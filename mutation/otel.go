package mutation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures an Applier.
type Option func(*Applier)

// WithMeterProvider enables metric recording for applied batches.
// Instrument creation failures are logged and instrumentation is disabled
// rather than failing the applier.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(a *Applier) {
		if mp == nil {
			return
		}
		obs := a.ensureObserver()
		obs.meter = mp.Meter("github.com/archsketch-ai/engine/mutation")
		if err := obs.initInstruments(); err != nil {
			slog.Warn("disabling mutation metrics", "error", err)
			obs.meter = nil
		}
	}
}

// WithTracerProvider enables a span per applied batch.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *Applier) {
		if tp == nil {
			return
		}
		obs := a.ensureObserver()
		obs.tracer = tp.Tracer("github.com/archsketch-ai/engine/mutation")
	}
}

func (a *Applier) ensureObserver() *observer {
	if a.obs == nil {
		a.obs = &observer{}
	}
	return a.obs
}

// observer holds the OpenTelemetry instruments for the applier. These are
// created once during option application and reused for every batch.
type observer struct {
	meter  metric.Meter
	tracer trace.Tracer

	// appliedCounter increments per successfully applied operation
	appliedCounter metric.Int64Counter

	// failedCounter increments per failing operation
	failedCounter metric.Int64Counter

	// durationHistogram records batch application duration in milliseconds
	durationHistogram metric.Float64Histogram
}

func (o *observer) initInstruments() error {
	var err error

	o.appliedCounter, err = o.meter.Int64Counter(
		"mutation.operations.applied",
		metric.WithDescription("Number of graph-mutation operations applied"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	o.failedCounter, err = o.meter.Int64Counter(
		"mutation.operations.failed",
		metric.WithDescription("Number of graph-mutation operations that failed to apply"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	o.durationHistogram, err = o.meter.Float64Histogram(
		"mutation.batch.duration",
		metric.WithDescription("Batch application duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	return err
}

// record captures one batch outcome. It returns silently when telemetry is
// not configured; recording must never affect application results.
func (o *observer) record(ctx context.Context, batchSize int, result Result, elapsed time.Duration) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Int("batch.size", batchSize),
		attribute.Bool("batch.success", result.Success),
	}

	if o.tracer != nil {
		_, span := o.tracer.Start(ctx, "mutation.apply")
		span.SetAttributes(attrs...)
		span.SetAttributes(attribute.Int("batch.applied", result.Applied))
		if result.Success {
			span.SetStatus(codes.Ok, "")
		} else {
			span.SetStatus(codes.Error, result.Err.Error())
			span.SetAttributes(attribute.Int("batch.failed_index", result.FailedIndex))
		}
		span.End()
	}

	if o.meter == nil {
		return
	}

	o.appliedCounter.Add(ctx, int64(result.Applied), metric.WithAttributes(attrs...))
	if !result.Success {
		o.failedCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	o.durationHistogram.Record(ctx, float64(elapsed.Microseconds())/1000.0, metric.WithAttributes(attrs...))
}
