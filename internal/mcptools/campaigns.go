package mcptools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
)

var (
	campaignTypes = []string{string(listmonk.CampaignRegular), string(listmonk.CampaignOptin)}
	contentTypes  = []string{
		string(listmonk.ContentRichtext),
		string(listmonk.ContentHTML),
		string(listmonk.ContentMarkdown),
		string(listmonk.ContentPlain),
	}
	campaignStatuses = []string{
		string(listmonk.CampaignDraft),
		string(listmonk.CampaignScheduled),
		string(listmonk.CampaignRunning),
		string(listmonk.CampaignPaused),
		string(listmonk.CampaignFinished),
		string(listmonk.CampaignCancelled),
	}
)

func (h *Handler) createCampaign() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("create_campaign",
			mcp.WithDescription("Create a draft email campaign"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Campaign name")),
			mcp.WithString("subject", mcp.Required(), mcp.Description("Email subject line")),
			mcp.WithArray("lists", mcp.Required(),
				mcp.Description("Mailing list IDs to send to"),
				mcp.Items(map[string]any{"type": "integer"})),
			mcp.WithString("type", mcp.Description("Campaign type, default regular"), mcp.Enum(campaignTypes...)),
			mcp.WithString("content_type", mcp.Description("Body format, default richtext"), mcp.Enum(contentTypes...)),
			mcp.WithString("body", mcp.Description("Campaign body")),
			mcp.WithNumber("template_id", mcp.Description("Template ID")),
			mcp.WithArray("tags", mcp.Description("Campaign tags"), mcp.Items(map[string]any{"type": "string"})),
		),
		Handler: h.call("create_campaign", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			var n listmonk.NewCampaign
			var err error
			if n.Name, err = a.requireString("name"); err != nil {
				return nil, err
			}
			if n.Subject, err = a.requireString("subject"); err != nil {
				return nil, err
			}
			if n.Lists, err = a.ints("lists"); err != nil {
				return nil, err
			}
			campaignType, err := a.stringOr("type", string(listmonk.CampaignRegular))
			if err != nil {
				return nil, err
			}
			contentType, err := a.stringOr("content_type", string(listmonk.ContentRichtext))
			if err != nil {
				return nil, err
			}
			n.Type = listmonk.CampaignType(campaignType)
			n.ContentType = listmonk.ContentType(contentType)
			if n.Body, err = a.stringOr("body", ""); err != nil {
				return nil, err
			}
			if n.TemplateID, err = a.intOr("template_id", 0); err != nil {
				return nil, err
			}
			if n.Tags, err = a.strs("tags"); err != nil {
				return nil, err
			}

			resp, err := c.CreateCampaign(ctx, n)
			if err != nil {
				return nil, err
			}
			return success("campaign", resp.Data(), fmt.Sprintf("Campaign '%s' created successfully", n.Name)), nil
		}),
	}
}

func (h *Handler) updateCampaign() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("update_campaign",
			mcp.WithDescription("Update a campaign; omitted fields are left unchanged"),
			mcp.WithNumber("campaign_id", mcp.Required(), mcp.Description("ID of the campaign to update")),
			mcp.WithString("name", mcp.Description("New name")),
			mcp.WithString("subject", mcp.Description("New subject line")),
			mcp.WithArray("lists", mcp.Description("New mailing list IDs"), mcp.Items(map[string]any{"type": "integer"})),
			mcp.WithString("body", mcp.Description("New body")),
			mcp.WithArray("tags", mcp.Description("New tags"), mcp.Items(map[string]any{"type": "string"})),
		),
		Handler: h.call("update_campaign", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("campaign_id")
			if err != nil {
				return nil, err
			}

			var u listmonk.CampaignUpdate
			if s, ok, err := a.optString("name"); err != nil {
				return nil, err
			} else if ok {
				u.Name = &s
			}
			if s, ok, err := a.optString("subject"); err != nil {
				return nil, err
			} else if ok {
				u.Subject = &s
			}
			if s, ok, err := a.optString("body"); err != nil {
				return nil, err
			} else if ok {
				u.Body = &s
			}
			if u.Lists, err = a.ints("lists"); err != nil {
				return nil, err
			}
			if u.Tags, err = a.strs("tags"); err != nil {
				return nil, err
			}

			resp, err := c.UpdateCampaign(ctx, id, u)
			if err != nil {
				return nil, err
			}
			return success("campaign", resp.Data(), fmt.Sprintf("Campaign %d updated successfully", id)), nil
		}),
	}
}

func (h *Handler) deleteCampaign() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("delete_campaign",
			mcp.WithDescription("Delete a campaign"),
			mcp.WithNumber("campaign_id", mcp.Required(), mcp.Description("ID of the campaign to delete")),
		),
		Handler: h.call("delete_campaign", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("campaign_id")
			if err != nil {
				return nil, err
			}
			if _, err := c.DeleteCampaign(ctx, id); err != nil {
				return nil, err
			}
			return success("", nil, fmt.Sprintf("Campaign %d deleted successfully", id)), nil
		}),
	}
}

func (h *Handler) sendCampaign() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("send_campaign",
			mcp.WithDescription("Start sending a campaign immediately"),
			mcp.WithNumber("campaign_id", mcp.Required(), mcp.Description("ID of the campaign to send")),
		),
		Handler: h.call("send_campaign", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("campaign_id")
			if err != nil {
				return nil, err
			}
			resp, err := c.SendCampaign(ctx, id)
			if err != nil {
				return nil, err
			}
			return success("campaign", resp.Data(), fmt.Sprintf("Campaign %d is now sending", id)), nil
		}),
	}
}

func (h *Handler) scheduleCampaign() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("schedule_campaign",
			mcp.WithDescription("Schedule a campaign for later delivery"),
			mcp.WithNumber("campaign_id", mcp.Required(), mcp.Description("ID of the campaign to schedule")),
			mcp.WithString("send_at", mcp.Required(), mcp.Description("Delivery time as RFC 3339, e.g. 2025-01-31T09:00:00Z")),
		),
		Handler: h.call("schedule_campaign", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("campaign_id")
			if err != nil {
				return nil, err
			}
			sendAt, err := a.requireTime("send_at")
			if err != nil {
				return nil, err
			}
			resp, err := c.ScheduleCampaign(ctx, id, sendAt)
			if err != nil {
				return nil, err
			}
			return success("campaign", resp.Data(),
				fmt.Sprintf("Campaign %d scheduled for %s", id, sendAt.Format(time.RFC3339))), nil
		}),
	}
}

func (h *Handler) getCampaigns() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("get_campaigns",
			mcp.WithDescription("List campaigns with pagination and an optional status filter"),
			mcp.WithNumber("page", mcp.Description("Page number, default 1")),
			mcp.WithNumber("per_page", mcp.Description("Results per page, default 20")),
			mcp.WithString("status", mcp.Description("Only campaigns in this status"), mcp.Enum(campaignStatuses...)),
		),
		Handler: h.call("get_campaigns", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			page, err := a.intOr("page", 1)
			if err != nil {
				return nil, err
			}
			perPage, err := a.intOr("per_page", 20)
			if err != nil {
				return nil, err
			}
			status, err := a.stringOr("status", "")
			if err != nil {
				return nil, err
			}

			resp, err := c.GetCampaigns(ctx, listmonk.CampaignQuery{
				Page:    page,
				PerPage: perPage,
				Status:  listmonk.CampaignStatus(status),
			})
			if err != nil {
				return nil, err
			}
			return success("campaigns", resp.Data(), "Campaigns retrieved successfully"), nil
		}),
	}
}

func (h *Handler) getCampaignPreview() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool("get_campaign_preview",
			mcp.WithDescription("Render the body of a campaign"),
			mcp.WithNumber("campaign_id", mcp.Required(), mcp.Description("ID of the campaign")),
		),
		Handler: h.call("get_campaign_preview", func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error) {
			id, err := a.requireInt("campaign_id")
			if err != nil {
				return nil, err
			}
			resp, err := c.GetCampaignPreview(ctx, id)
			if err != nil {
				return nil, err
			}
			preview, ok := resp[listmonk.FallbackTextKey]
			if !ok {
				preview = resp.Data()
			}
			return success("preview", preview, fmt.Sprintf("Preview of campaign %d", id)), nil
		}),
	}
}
