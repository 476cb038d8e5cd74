package observe

import (
	"context"

	"github.com/on-the-ground/memoize_ive_go/pure"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metricsObserver counts memoized calls by outcome.
type metricsObserver struct {
	hits     metric.Int64Counter
	misses   metric.Int64Counter
	faults   metric.Int64Counter
	bypasses metric.Int64Counter
}

// NewMetricsObserver creates counters memo.hits, memo.misses, memo.faults and
// memo.bypasses on meter, each attributed with memo.table_id.
func NewMetricsObserver(meter metric.Meter) (pure.Observer, error) {
	hits, err := meter.Int64Counter(
		"memo.hits",
		metric.WithDescription("Memoized calls answered from the table"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"memo.misses",
		metric.WithDescription("Memoized calls that invoked the target and stored its result"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	faults, err := meter.Int64Counter(
		"memo.faults",
		metric.WithDescription("Memoized calls whose target returned an error or panicked"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	bypasses, err := meter.Int64Counter(
		"memo.bypasses",
		metric.WithDescription("Memoized calls whose arguments could not be keyed"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsObserver{
		hits:     hits,
		misses:   misses,
		faults:   faults,
		bypasses: bypasses,
	}, nil
}

func (m *metricsObserver) On(data pure.EventData) {
	opt := metric.WithAttributes(attribute.String("memo.table_id", data.TableID.String()))
	ctx := context.Background()

	switch data.Event {
	case pure.EventHit:
		m.hits.Add(ctx, 1, opt)
	case pure.EventMiss:
		m.misses.Add(ctx, 1, opt)
	case pure.EventFault:
		m.faults.Add(ctx, 1, opt)
	case pure.EventBypass:
		m.bypasses.Add(ctx, 1, opt)
	}
}
