package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
)

var templateTypes = []string{string(listmonk.TemplateCampaign), string(listmonk.TemplateTx)}

func (h *Handler) createTemplate() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("create_template",
			mcp.WithDescription("Create an email template"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Template name")),
			mcp.WithString("body", mcp.Required(), mcp.Description("Template HTML; campaign templates must include {{ template \"content\" . }}")),
			mcp.WithString("type", mcp.Description("Template type, default campaign"), mcp.Enum(templateTypes...)),
			mcp.WithBoolean("is_default", mcp.Description("Make this the default template")),
		),
		Handler: h.call("create_template", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			name, err := a.requireString("name")
			if err != nil {
				return nil, err
			}
			body, err := a.requireString("body")
			if err != nil {
				return nil, err
			}
			templateType, err := a.stringOr("type", string(listmonk.TemplateCampaign))
			if err != nil {
				return nil, err
			}
			isDefault, err := a.boolOr("is_default", false)
			if err != nil {
				return nil, err
			}

			resp, err := c.CreateTemplate(ctx, listmonk.NewTemplate{
				Name:      name,
				Body:      body,
				Type:      listmonk.TemplateType(templateType),
				IsDefault: isDefault,
			})
			if err != nil {
				return nil, err
			}
			return success("template", resp.Data(), fmt.Sprintf("Template '%s' created successfully", name)), nil
		}),
	}
}

func (h *Handler) updateTemplate() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("update_template",
			mcp.WithDescription("Update a template; omitted fields are left unchanged"),
			mcp.WithNumber("template_id", mcp.Required(), mcp.Description("ID of the template to update")),
			mcp.WithString("name", mcp.Description("New name")),
			mcp.WithString("body", mcp.Description("New HTML body")),
			mcp.WithBoolean("is_default", mcp.Description("Make this the default template")),
		),
		Handler: h.call("update_template", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("template_id")
			if err != nil {
				return nil, err
			}

			var u listmonk.TemplateUpdate
			if s, ok, err := a.optString("name"); err != nil {
				return nil, err
			} else if ok {
				u.Name = &s
			}
			if s, ok, err := a.optString("body"); err != nil {
				return nil, err
			} else if ok {
				u.Body = &s
			}
			if u.IsDefault, err = a.optBool("is_default"); err != nil {
				return nil, err
			}

			resp, err := c.UpdateTemplate(ctx, id, u)
			if err != nil {
				return nil, err
			}
			return success("template", resp.Data(), fmt.Sprintf("Template %d updated successfully", id)), nil
		}),
	}
}

func (h *Handler) deleteTemplate() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("delete_template",
			mcp.WithDescription("Delete a template"),
			mcp.WithNumber("template_id", mcp.Required(), mcp.Description("ID of the template to delete")),
		),
		Handler: h.call("delete_template", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("template_id")
			if err != nil {
				return nil, err
			}
			if _, err := c.DeleteTemplate(ctx, id); err != nil {
				return nil, err
			}
			return success("", nil, fmt.Sprintf("Template %d deleted successfully", id)), nil
		}),
	}
}

func (h *Handler) getTemplates() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("get_templates",
			mcp.WithDescription("List all templates"),
		),
		Handler: h.call("get_templates", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			resp, err := c.GetTemplates(ctx)
			if err != nil {
				return nil, err
			}
			return success("templates", resp.Data(), "Templates retrieved successfully"), nil
		}),
	}
}
