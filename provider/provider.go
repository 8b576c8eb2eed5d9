package provider

import (
	"context"
	"errors"
)

// Provider is the base interface all providers implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// RequestResponse takes one input and returns one output.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// Closeable is implemented by providers that hold resources requiring
// explicit cleanup.
type Closeable interface {
	Close(ctx context.Context) error
}

// Operationer is optionally implemented by inputs to label logs, spans and
// metrics (e.g. "GET /api/v0/docs/").
type Operationer interface {
	Operation() string
}

// Statuser is optionally implemented by outputs and errors that carry a
// protocol status code.
type Statuser interface {
	Status() int
}

func operationOf(input any) string {
	if op, ok := input.(Operationer); ok {
		return op.Operation()
	}
	return "execute"
}

func statusOf(output any, err error) int {
	if err != nil {
		var s Statuser
		if errors.As(err, &s) {
			return s.Status()
		}
		return 0
	}
	if s, ok := output.(Statuser); ok {
		return s.Status()
	}
	return 0
}
