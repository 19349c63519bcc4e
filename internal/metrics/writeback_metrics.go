package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/agentic-research/spyglass/internal/writeback"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("spyglass")

// WriteMetrics counts write-back outcomes and frame timings.
type WriteMetrics struct {
	appliedCounter  metric.Int64Counter
	failedCounter   metric.Int64Counter
	framesCounter   metric.Int64Counter
	frameDurationMs metric.Float64Histogram
}

// NewWriteMetrics registers the instruments on the global meter provider.
func NewWriteMetrics() (*WriteMetrics, error) {
	appliedCounter, err := meter.Int64Counter(
		"spyglass.writeback.applied",
		metric.WithDescription("Number of field edits written back"),
		metric.WithUnit("{edit}"),
	)
	if err != nil {
		return nil, err
	}

	failedCounter, err := meter.Int64Counter(
		"spyglass.writeback.failed",
		metric.WithDescription("Number of field edits dropped because the locator did not resolve"),
		metric.WithUnit("{edit}"),
	)
	if err != nil {
		return nil, err
	}

	framesCounter, err := meter.Int64Counter(
		"spyglass.frames",
		metric.WithDescription("Number of inspector update cycles run"),
		metric.WithUnit("{frame}"),
	)
	if err != nil {
		return nil, err
	}

	frameDurationMs, err := meter.Float64Histogram(
		"spyglass.frame.duration",
		metric.WithDescription("Duration of one inspector update cycle"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &WriteMetrics{
		appliedCounter:  appliedCounter,
		failedCounter:   failedCounter,
		framesCounter:   framesCounter,
		frameDurationMs: frameDurationMs,
	}, nil
}

// RecordResults counts one batch of write-back results.
func (m *WriteMetrics) RecordResults(ctx context.Context, results []writeback.Result) {
	for _, r := range results {
		attrs := metric.WithAttributes(attribute.String("component", r.Change.Locator.Component.Short()))
		if r.Err == nil {
			m.appliedCounter.Add(ctx, 1, attrs)
			continue
		}
		m.failedCounter.Add(ctx, 1, attrs, metric.WithAttributes(attribute.String("reason", failureReason(r.Err))))
	}
}

// RecordFrame records one update cycle.
func (m *WriteMetrics) RecordFrame(ctx context.Context, d time.Duration) {
	m.framesCounter.Add(ctx, 1)
	m.frameDurationMs.Record(ctx, float64(d.Microseconds())/1000)
}

func failureReason(err error) string {
	var we *writeback.Error
	if errors.As(err, &we) {
		return we.Kind.String()
	}
	return "unknown"
}
