package providers

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Kind classifies failures surfaced by providers.
type Kind int

const (
	KindInvalidArgument Kind = iota + 1
	KindProviderUnavailable
	KindNotFound
)

// Stable error codes consumed by the HTTP and MCP boundaries.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	CodeNotFound            = "RESOURCE_NOT_FOUND"
	CodeInternal            = "INTERNAL_SERVER_ERROR"
)

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrNotFound            = errors.New("not found")
)

// Error is the only error type providers return. The transport or decoding cause is kept for
// logs and never unwrapped; callers match the kind with errors.Is.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	// Fields holds per-parameter messages for KindInvalidArgument.
	Fields map[string]string
	cause  error
}

// InvalidArgument reports parameters rejected before any request was sent.
func InvalidArgument(op string, fields map[string]string) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Op:      op,
		Message: invalidArgumentMessage(fields),
		Fields:  fields,
	}
}

// Unavailable wraps a transport or decoding failure.
func Unavailable(op string, cause error) *Error {
	return &Error{
		Kind:    KindProviderUnavailable,
		Op:      op,
		Message: "sleeper request failed",
		cause:   cause,
	}
}

// NotFound reports that the provider answered but had no entity for the request.
func NotFound(op, message string) *Error {
	if message == "" {
		message = "resource not found"
	}
	return &Error{
		Kind:    KindNotFound,
		Op:      op,
		Message: message,
	}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindInvalidArgument:
		return target == ErrInvalidArgument
	case KindNotFound:
		return target == ErrNotFound
	case KindProviderUnavailable:
		return target == ErrProviderUnavailable
	default:
		return false
	}
}

// Cause returns the underlying failure, if any. Intended for logs only.
func (e *Error) Cause() error {
	return e.cause
}

// Code returns the stable error code for the kind.
func (e *Error) Code() string {
	switch e.Kind {
	case KindInvalidArgument:
		return CodeValidation
	case KindNotFound:
		return CodeNotFound
	case KindProviderUnavailable:
		return CodeProviderUnavailable
	default:
		return CodeInternal
	}
}

// AsError unwraps err into a provider Error.
func AsError(err error) (*Error, bool) {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr, true
	}
	return nil, false
}

// CodeOf returns the error code for any error; foreign errors map to CodeInternal.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	if pErr, ok := AsError(err); ok {
		return pErr.Code()
	}
	return CodeInternal
}

func invalidArgumentMessage(fields map[string]string) string {
	if len(fields) == 0 {
		return "invalid argument"
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid argument: " + strings.Join(names, ", ")
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error, or a provider Error's cause, into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	if pErr, ok := AsError(err); ok && pErr.cause != nil && errors.As(pErr.cause, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
