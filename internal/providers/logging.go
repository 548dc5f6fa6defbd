package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/fantasy-data-service/internal/logging"
)

// logDecorator emits a decorator log line tagged with the wrapped provider and operation.
// A non-nil err adds its stable code, and its cause only at debug level so upstream detail
// stays out of warning streams.
func logDecorator(ctx context.Context, logger *slog.Logger, level slog.Level, provider, op, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	args = append(args,
		slog.String(logging.FieldProvider, provider),
		slog.String(logging.FieldOperation, op),
	)
	if err != nil {
		args = append(args, slog.String(logging.FieldErrorCode, CodeOf(err)))
		if logger.Enabled(ctx, slog.LevelDebug) {
			cause := err
			if pErr, ok := AsError(err); ok && pErr.Cause() != nil {
				cause = pErr.Cause()
			}
			args = append(args, slog.String("cause", cause.Error()))
		}
	}
	logger.Log(ctx, level, msg, args...)
}
