package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
)

const messageInternal = "An unexpected error occurred. Please try again later."

type errorPayload struct {
	Code             string            `json:"code"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// payloadFor mirrors the HTTP error body: causes stay in the logs.
func payloadFor(err error) errorPayload {
	pErr, ok := providers.AsError(err)
	if !ok {
		return errorPayload{Code: providers.CodeInternal, Message: messageInternal}
	}
	return errorPayload{Code: pErr.Code(), Message: pErr.Message, ValidationErrors: pErr.Fields}
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	body, err := jsonAPI.Marshal(data)
	if err != nil {
		return errorResult(errorPayload{Code: providers.CodeInternal, Message: messageInternal}), nil
	}
	return textResult(string(body), false), nil
}

func errorResult(payload errorPayload) *mcp.CallToolResult {
	body, err := jsonAPI.Marshal(payload)
	if err != nil {
		return textResult(payload.Code+": "+payload.Message, true)
	}
	return textResult(string(body), true)
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Type: "text", Text: text},
		},
		IsError: isError,
	}
}
