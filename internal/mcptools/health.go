package mcptools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
)

func (h *Handler) checkHealth() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("check_listmonk_health",
			mcp.WithDescription("Check if the listmonk server is healthy and accessible"),
		),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			c, err := h.provider.Client()
			if err != nil {
				return healthResult(map[string]any{"status": "error", "error": err.Error()}, true), nil
			}

			payload, err := c.HealthCheck(ctx)
			if err != nil {
				var apiErr *listmonk.APIError
				if errors.As(err, &apiErr) {
					body := map[string]any{"status": "unhealthy", "error": apiErr.Error(), "status_code": nil}
					if apiErr.HasStatus() {
						body["status_code"] = apiErr.StatusCode
					}
					return healthResult(body, true), nil
				}
				return healthResult(map[string]any{"status": "error", "error": err.Error()}, true), nil
			}

			return healthResult(map[string]any{
				"status":          "healthy",
				"listmonk_health": payload,
				"server_url":      c.Config().BaseURL(),
			}, false), nil
		},
	}
}

func healthResult(body map[string]any, isError bool) *mcp.CallToolResult {
	res := jsonResult(body)
	res.IsError = isError
	return res
}
