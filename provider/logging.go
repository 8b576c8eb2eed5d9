package provider

import (
	"context"
	"time"

	"github.com/kbukum/consoleapi/logger"
)

// WithLogging returns a Middleware that logs each Execute call: operation,
// status and duration at debug level on success, at error level on failure.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &loggingRR[I, O]{inner: inner, log: log}
	}
}

type loggingRR[I, O any] struct {
	inner RequestResponse[I, O]
	log   *logger.Logger
}

func (l *loggingRR[I, O]) Name() string                         { return l.inner.Name() }
func (l *loggingRR[I, O]) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }

func (l *loggingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := l.inner.Execute(ctx, input)
	duration := time.Since(start)

	fields := logger.DurationFields(operationOf(input), duration)
	fields[logger.FieldProvider] = l.inner.Name()
	if status := statusOf(output, err); status != 0 {
		fields[logger.FieldStatus] = status
	}

	if err != nil {
		fields[logger.FieldError] = err.Error()
		l.log.Error("call failed", fields)
	} else {
		l.log.Debug("call ok", fields)
	}

	return output, err
}
