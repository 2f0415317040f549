package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
)

func (h *Handler) sendTransactionalEmail() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("send_transactional_email",
			mcp.WithDescription("Send a templated transactional message to one subscriber"),
			mcp.WithString("subscriber_email", mcp.Required(), mcp.Description("Recipient subscriber email")),
			mcp.WithNumber("template_id", mcp.Required(), mcp.Description("Transactional template ID")),
			mcp.WithObject("data", mcp.Description("Template variables, available as .Tx.Data")),
			mcp.WithString("content_type", mcp.Description("Message format, default html"), mcp.Enum(contentTypes...)),
		),
		Handler: h.call("send_transactional_email", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			email, err := a.requireString("subscriber_email")
			if err != nil {
				return nil, err
			}
			templateID, err := a.requireInt("template_id")
			if err != nil {
				return nil, err
			}
			data, err := a.object("data")
			if err != nil {
				return nil, err
			}
			contentType, err := a.stringOr("content_type", string(listmonk.ContentHTML))
			if err != nil {
				return nil, err
			}

			resp, err := c.SendTransactional(ctx, listmonk.TransactionalEmail{
				SubscriberEmail: email,
				TemplateID:      templateID,
				Data:            data,
				ContentType:     listmonk.ContentType(contentType),
			})
			if err != nil {
				return nil, err
			}
			return success("result", resp.Data(), fmt.Sprintf("Transactional email sent to %s", email)), nil
		}),
	}
}
