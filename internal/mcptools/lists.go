package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
)

var (
	listTypes  = []string{string(listmonk.ListPublic), string(listmonk.ListPrivate)}
	optinTypes = []string{string(listmonk.OptinSingle), string(listmonk.OptinDouble)}
)

func (h *Handler) createMailingList() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("create_mailing_list",
			mcp.WithDescription("Create a new mailing list"),
			mcp.WithString("name", mcp.Required(), mcp.Description("List name")),
			mcp.WithString("type", mcp.Description("List type, default public"), mcp.Enum(listTypes...)),
			mcp.WithString("optin", mcp.Description("Opt-in type, default single"), mcp.Enum(optinTypes...)),
			mcp.WithArray("tags", mcp.Description("List tags"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithString("description", mcp.Description("List description")),
		),
		Handler: h.call("create_mailing_list", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			name, err := a.requireString("name")
			if err != nil {
				return nil, err
			}
			listType, err := a.stringOr("type", string(listmonk.ListPublic))
			if err != nil {
				return nil, err
			}
			optin, err := a.stringOr("optin", string(listmonk.OptinSingle))
			if err != nil {
				return nil, err
			}
			tags, err := a.strs("tags")
			if err != nil {
				return nil, err
			}
			description, err := a.stringOr("description", "")
			if err != nil {
				return nil, err
			}

			resp, err := c.CreateList(ctx, listmonk.NewList{
				Name:        name,
				Type:        listmonk.ListType(listType),
				Optin:       listmonk.OptinType(optin),
				Tags:        tags,
				Description: description,
			})
			if err != nil {
				return nil, err
			}
			return success("list", resp.Data(), fmt.Sprintf("Mailing list '%s' created successfully", name)), nil
		}),
	}
}

func (h *Handler) updateMailingList() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("update_mailing_list",
			mcp.WithDescription("Update a mailing list; omitted fields are left unchanged"),
			mcp.WithNumber("list_id", mcp.Required(), mcp.Description("ID of the list to update")),
			mcp.WithString("name", mcp.Description("New name")),
			mcp.WithString("type", mcp.Description("New list type"), mcp.Enum(listTypes...)),
			mcp.WithString("optin", mcp.Description("New opt-in type"), mcp.Enum(optinTypes...)),
			mcp.WithArray("tags", mcp.Description("New tags"), mcp.Items(map[string]any{"type": "string"})),
			mcp.WithString("description", mcp.Description("New description")),
		),
		Handler: h.call("update_mailing_list", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("list_id")
			if err != nil {
				return nil, err
			}

			var u listmonk.ListUpdate
			if s, ok, err := a.optString("name"); err != nil {
				return nil, err
			} else if ok {
				u.Name = &s
			}
			if s, ok, err := a.optString("type"); err != nil {
				return nil, err
			} else if ok {
				u.Type = listmonk.Ptr(listmonk.ListType(s))
			}
			if s, ok, err := a.optString("optin"); err != nil {
				return nil, err
			} else if ok {
				u.Optin = listmonk.Ptr(listmonk.OptinType(s))
			}
			if s, ok, err := a.optString("description"); err != nil {
				return nil, err
			} else if ok {
				u.Description = &s
			}
			if u.Tags, err = a.strs("tags"); err != nil {
				return nil, err
			}

			resp, err := c.UpdateList(ctx, id, u)
			if err != nil {
				return nil, err
			}
			return success("list", resp.Data(), fmt.Sprintf("Mailing list %d updated successfully", id)), nil
		}),
	}
}

func (h *Handler) deleteMailingList() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("delete_mailing_list",
			mcp.WithDescription("Delete a mailing list"),
			mcp.WithNumber("list_id", mcp.Required(), mcp.Description("ID of the list to delete")),
		),
		Handler: h.call("delete_mailing_list", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("list_id")
			if err != nil {
				return nil, err
			}
			if _, err := c.DeleteList(ctx, id); err != nil {
				return nil, err
			}
			return success("", nil, fmt.Sprintf("Mailing list %d deleted successfully", id)), nil
		}),
	}
}

func (h *Handler) getMailingLists() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("get_mailing_lists",
			mcp.WithDescription("List all mailing lists"),
		),
		Handler: h.call("get_mailing_lists", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			resp, err := c.GetLists(ctx)
			if err != nil {
				return nil, err
			}
			return success("lists", resp.Data(), "Mailing lists retrieved successfully"), nil
		}),
	}
}
