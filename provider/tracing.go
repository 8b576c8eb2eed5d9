package provider

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/consoleapi/observability"
)

// WithTracing returns a Middleware that wraps each Execute call in a client
// span named "{serviceName}.{providerName}".
func WithTracing[I, O any](serviceName string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &tracingRR[I, O]{inner: inner, serviceName: serviceName}
	}
}

type tracingRR[I, O any] struct {
	inner       RequestResponse[I, O]
	serviceName string
}

func (t *tracingRR[I, O]) Name() string                         { return t.inner.Name() }
func (t *tracingRR[I, O]) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

func (t *tracingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	ctx, span := observability.StartSpan(ctx, t.serviceName+"."+t.inner.Name())
	defer span.End()

	span.SetAttributes(
		attribute.String(observability.AttrProvider, t.inner.Name()),
		attribute.String(observability.AttrOperation, operationOf(input)),
	)

	output, err := t.inner.Execute(ctx, input)
	if status := statusOf(output, err); status != 0 {
		span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, status))
	}
	observability.RecordError(span, err)

	return output, err
}
