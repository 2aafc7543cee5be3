package logx

import (
	"log/slog"

	"github.com/lmittmann/tint"
)

var Error = tint.Err //nolint:gochecknoglobals

// AttemptID tags a record with the workflow attempt it belongs to.
func AttemptID(id string) slog.Attr {
	return slog.String(FieldAttemptID, id)
}

// PollKey tags a record with the poller that produced it.
func PollKey(key string) slog.Attr {
	return slog.String(FieldPollKey, key)
}
