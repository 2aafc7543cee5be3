package contextx

import (
	"context"
	"fmt"
)

// AttemptID correlates the independent REST calls of a single workflow
// attempt (negotiate, accept) in logs and in the attempt journal.
type AttemptID string

type contextKeyAttemptID struct{}

func (a AttemptID) String() string {
	return string(a)
}

func WithAttemptID(ctx context.Context, attemptID AttemptID) context.Context {
	return context.WithValue(ctx, contextKeyAttemptID{}, attemptID)
}

func AttemptIDFromContext(ctx context.Context) (AttemptID, error) {
	attemptID, ok := ctx.Value(contextKeyAttemptID{}).(AttemptID)
	if !ok {
		return "", fmt.Errorf("attempt id: %w", ErrNoValue)
	}

	return attemptID, nil
}
