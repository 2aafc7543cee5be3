package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"startupconnect/pkg/contextx"
)

func TestAttemptID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var testAttemptIDEmpty contextx.AttemptID

	testAttemptIDNotEmpty := contextx.AttemptID("test-attempt-id")

	attemptID, err := contextx.AttemptIDFromContext(ctx)
	rq.Equal(testAttemptIDEmpty, attemptID)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "attempt id: no value in context")

	ctx = contextx.WithAttemptID(ctx, testAttemptIDNotEmpty)

	attemptID, err = contextx.AttemptIDFromContext(ctx)
	rq.Equal(testAttemptIDNotEmpty, attemptID)
	rq.NoError(err)
	rq.Equal("test-attempt-id", attemptID.String())
}
