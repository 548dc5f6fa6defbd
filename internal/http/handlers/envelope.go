package handlers

import (
	nethttp "net/http"

	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
)

// Codes produced only at the HTTP boundary.
const (
	CodeBusinessRule = "BUSINESS_RULE_VIOLATION"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRouteMissing = "ROUTE_NOT_FOUND"
	CodeBadMethod    = "METHOD_NOT_ALLOWED"
)

const (
	messageValidationFailed = "Validation failed for one or more fields"
	messageInternal         = "An unexpected error occurred. Please try again later."
)

// Envelope wraps every JSON response.
type Envelope struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message,omitempty"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	Timestamp string     `json:"timestamp"`
	RequestID string     `json:"requestId,omitempty"`
}

// ErrorBody is the error member of a failed Envelope.
type ErrorBody struct {
	Code             string            `json:"code"`
	Message          string            `json:"message"`
	Details          string            `json:"details,omitempty"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// StatusForCode maps an error code to its HTTP status.
func StatusForCode(code string) int {
	switch code {
	case providers.CodeNotFound, CodeRouteMissing:
		return nethttp.StatusNotFound
	case providers.CodeValidation, CodeBusinessRule:
		return nethttp.StatusBadRequest
	case CodeUnauthorized:
		return nethttp.StatusForbidden
	case providers.CodeProviderUnavailable:
		return nethttp.StatusBadGateway
	case CodeBadMethod:
		return nethttp.StatusMethodNotAllowed
	default:
		return nethttp.StatusInternalServerError
	}
}

// errorBodyFor converts err into the public error body. Causes and internal details never leave
// the process.
func errorBodyFor(err error) ErrorBody {
	pErr, ok := providers.AsError(err)
	if !ok {
		return ErrorBody{Code: providers.CodeInternal, Message: messageInternal}
	}
	body := ErrorBody{Code: pErr.Code(), Message: pErr.Message}
	switch pErr.Kind {
	case providers.KindInvalidArgument:
		body.Message = messageValidationFailed
		body.Details = pErr.Message
		body.ValidationErrors = pErr.Fields
	case providers.KindProviderUnavailable, providers.KindNotFound:
	default:
		body.Message = messageInternal
	}
	return body
}
