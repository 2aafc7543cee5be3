package contextx

import (
	"context"
	"fmt"

	"github.com/rs/xid"
)

type TraceID string

// NewTraceID mints a fresh trace id for requests that arrive without one.
func NewTraceID() TraceID {
	return TraceID(xid.New().String())
}

type contextKeyTraceID struct{}

func (t TraceID) String() string {
	return string(t)
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}
