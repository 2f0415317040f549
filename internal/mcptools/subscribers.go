package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
)

var subscriberStatuses = []string{
	string(listmonk.SubscriberEnabled),
	string(listmonk.SubscriberDisabled),
	string(listmonk.SubscriberBlocklisted),
}

func (h *Handler) addSubscriber() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("add_subscriber",
			mcp.WithDescription("Add a new subscriber to listmonk"),
			mcp.WithString("email", mcp.Required(), mcp.Description("Subscriber email address")),
			mcp.WithString("name", mcp.Required(), mcp.Description("Subscriber name")),
			mcp.WithArray("lists", mcp.Required(),
				mcp.Description("Mailing list IDs to subscribe to"),
				mcp.Items(map[string]any{"type": "integer"})),
			mcp.WithString("status", mcp.Description("Subscriber status"), mcp.Enum(subscriberStatuses...)),
			mcp.WithObject("attributes", mcp.Description("Custom subscriber attributes")),
			mcp.WithBoolean("preconfirm", mcp.Description("Preconfirm double opt-in subscriptions")),
		),
		Handler: h.call("add_subscriber", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			email, err := a.requireString("email")
			if err != nil {
				return nil, err
			}
			name, err := a.requireString("name")
			if err != nil {
				return nil, err
			}
			lists, err := a.ints("lists")
			if err != nil {
				return nil, err
			}
			status, err := a.stringOr("status", string(listmonk.SubscriberEnabled))
			if err != nil {
				return nil, err
			}
			attribs, err := a.object("attributes")
			if err != nil {
				return nil, err
			}
			preconfirm, err := a.boolOr("preconfirm", false)
			if err != nil {
				return nil, err
			}

			resp, err := c.CreateSubscriber(ctx, listmonk.NewSubscriber{
				Email:                   email,
				Name:                    name,
				Status:                  listmonk.SubscriberStatus(status),
				Lists:                   lists,
				Attribs:                 attribs,
				PreconfirmSubscriptions: preconfirm,
			})
			if err != nil {
				return nil, err
			}
			return success("subscriber", resp.Data(), fmt.Sprintf("Subscriber %s added successfully", email)), nil
		}),
	}
}

func (h *Handler) updateSubscriber() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("update_subscriber",
			mcp.WithDescription("Update an existing subscriber; omitted fields are left unchanged"),
			mcp.WithNumber("subscriber_id", mcp.Required(), mcp.Description("ID of the subscriber to update")),
			mcp.WithString("email", mcp.Description("New email address")),
			mcp.WithString("name", mcp.Description("New name")),
			mcp.WithString("status", mcp.Description("New status"), mcp.Enum(subscriberStatuses...)),
			mcp.WithArray("lists", mcp.Description("New mailing list IDs"), mcp.Items(map[string]any{"type": "integer"})),
			mcp.WithObject("attributes", mcp.Description("New custom attributes")),
		),
		Handler: h.call("update_subscriber", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("subscriber_id")
			if err != nil {
				return nil, err
			}

			var u listmonk.SubscriberUpdate
			if s, ok, err := a.optString("email"); err != nil {
				return nil, err
			} else if ok {
				u.Email = &s
			}
			if s, ok, err := a.optString("name"); err != nil {
				return nil, err
			} else if ok {
				u.Name = &s
			}
			if s, ok, err := a.optString("status"); err != nil {
				return nil, err
			} else if ok {
				u.Status = listmonk.Ptr(listmonk.SubscriberStatus(s))
			}
			if u.Lists, err = a.ints("lists"); err != nil {
				return nil, err
			}
			if u.Attribs, err = a.object("attributes"); err != nil {
				return nil, err
			}

			resp, err := c.UpdateSubscriber(ctx, id, u)
			if err != nil {
				return nil, err
			}
			return success("subscriber", resp.Data(), fmt.Sprintf("Subscriber %d updated successfully", id)), nil
		}),
	}
}

func (h *Handler) removeSubscriber() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("remove_subscriber",
			mcp.WithDescription("Remove a subscriber from listmonk"),
			mcp.WithNumber("subscriber_id", mcp.Required(), mcp.Description("ID of the subscriber to remove")),
		),
		Handler: h.call("remove_subscriber", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("subscriber_id")
			if err != nil {
				return nil, err
			}
			if _, err := c.DeleteSubscriber(ctx, id); err != nil {
				return nil, err
			}
			return success("", nil, fmt.Sprintf("Subscriber %d removed successfully", id)), nil
		}),
	}
}

func (h *Handler) changeSubscriberStatus() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("change_subscriber_status",
			mcp.WithDescription("Change a subscriber's status"),
			mcp.WithNumber("subscriber_id", mcp.Required(), mcp.Description("ID of the subscriber")),
			mcp.WithString("status", mcp.Required(), mcp.Description("New status"), mcp.Enum(subscriberStatuses...)),
		),
		Handler: h.call("change_subscriber_status", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("subscriber_id")
			if err != nil {
				return nil, err
			}
			status, err := a.requireString("status")
			if err != nil {
				return nil, err
			}

			resp, err := c.SetSubscriberStatus(ctx, id, listmonk.SubscriberStatus(status))
			if err != nil {
				return nil, err
			}
			return success("subscriber", resp.Data(), fmt.Sprintf("Subscriber %d status changed to %s", id, status)), nil
		}),
	}
}

func (h *Handler) getSubscribers() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("get_subscribers",
			mcp.WithDescription("List subscribers with pagination and an optional listmonk query expression"),
			mcp.WithNumber("page", mcp.Description("Page number, default 1")),
			mcp.WithNumber("per_page", mcp.Description("Results per page, default 20")),
			mcp.WithString("query", mcp.Description("SQL expression, e.g. subscribers.name LIKE 'john%'")),
		),
		Handler: h.call("get_subscribers", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			page, err := a.intOr("page", 1)
			if err != nil {
				return nil, err
			}
			perPage, err := a.intOr("per_page", 20)
			if err != nil {
				return nil, err
			}
			query, err := a.stringOr("query", "")
			if err != nil {
				return nil, err
			}

			resp, err := c.GetSubscribers(ctx, listmonk.SubscriberQuery{Page: page, PerPage: perPage, Query: query})
			if err != nil {
				return nil, err
			}
			return success("subscribers", resp.Data(), "Subscribers retrieved successfully"), nil
		}),
	}
}
