package logging

import (
	"errors"
	"log/slog"
)

// coded is satisfied by errors that carry a stable error code.
type coded interface {
	Code() string
}

// Debug logs a debug message when a logger is configured.
func Debug(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs an info message when a logger is configured.
func Info(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning when a logger is configured.
func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs err and, when err carries one, its error code.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, "error", err)
		var c coded
		if errors.As(err, &c) && c.Code() != "" {
			args = append(args, FieldErrorCode, c.Code())
		}
	}
	logger.Error(msg, args...)
}
