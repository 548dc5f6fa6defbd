package testutil

import (
	"bytes"
	"log/slog"

	"github.com/preston-bernstein/fantasy-data-service/internal/logging"
)

// NewBufferLogger returns the service's text logger at info level writing into a buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	return newBufferLogger("info")
}

// NewDebugBufferLogger is NewBufferLogger at debug level, for asserting on per-call upstream
// lines and decorator causes.
func NewDebugBufferLogger() (*slog.Logger, *bytes.Buffer) {
	return newBufferLogger("debug")
}

func newBufferLogger(level string) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: level, Format: "text", Output: &buf})
	return logger, &buf
}
