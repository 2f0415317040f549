package mcptools

import (
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
)

// success renders {"success": true, key: data, "message": message}. An
// empty key omits the data member.
func success(key string, data any, message string) *mcp.CallToolResult {
	body := map[string]any{"success": true, "message": message}
	if key != "" {
		body[key] = data
	}
	return jsonResult(body)
}

// failure renders {"success": false, "error": ..., "status_code": ...}.
// status_code is null when no response was received.
func failure(err error) *mcp.CallToolResult {
	body := map[string]any{"success": false, "error": err.Error(), "status_code": nil}
	var apiErr *listmonk.APIError
	if errors.As(err, &apiErr) && apiErr.HasStatus() {
		body["status_code"] = apiErr.StatusCode
	}
	res := jsonResult(body)
	res.IsError = true
	return res
}

func jsonResult(body map[string]any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("encode result: " + err.Error())
	}
	return mcp.NewToolResultText(string(b))
}
