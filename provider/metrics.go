package provider

import (
	"context"
	"time"

	"github.com/kbukum/consoleapi/observability"
)

// WithMetrics returns a Middleware that records call count, duration and
// errors on the given instruments.
func WithMetrics[I, O any](metrics *observability.ClientMetrics) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{inner: inner, metrics: metrics}
	}
}

type metricsRR[I, O any] struct {
	inner   RequestResponse[I, O]
	metrics *observability.ClientMetrics
}

func (m *metricsRR[I, O]) Name() string                         { return m.inner.Name() }
func (m *metricsRR[I, O]) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)
	duration := time.Since(start)

	status := statusOf(output, err)
	if err != nil {
		m.metrics.RecordError(ctx, m.inner.Name(), status)
	}
	m.metrics.RecordCall(ctx, m.inner.Name(), operationOf(input), status, duration)

	return output, err
}
