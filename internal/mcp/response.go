package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// createJSONResponse wraps data as a single JSON text content
func createJSONResponse(data any) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(content)},
		},
	}, nil
}

// createErrorResponse reports a tool failure inside the result with IsError
// set, so the calling model sees it and can correct the request.
func createErrorResponse(operation string, err error) (*mcp.CallToolResult, error) {
	response, marshalErr := createJSONResponse(map[string]any{
		"success":   false,
		"error":     err.Error(),
		"operation": operation,
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	response.IsError = true
	return response, nil
}
