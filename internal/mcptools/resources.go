package mcptools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
	"github.com/bft-labs/listmonk-mcp/pkg/log"
)

const (
	markdownMIME = "text/markdown"

	subscriberURIPrefix      = "listmonk://subscriber/"
	subscriberEmailURIPrefix = "listmonk://subscriber/email/"
)

// Resource pairs a static resource with its handler.
type Resource struct {
	Resource mcp.Resource
	Handler  server.ResourceHandlerFunc
}

// ResourceTemplate pairs a URI template with its handler.
type ResourceTemplate struct {
	Template mcp.ResourceTemplate
	Handler  server.ResourceTemplateHandlerFunc
}

// renderFunc fetches and renders one resource.
type renderFunc func(ctx context.Context, c *listmonk.Client, uri string) (string, error)

// Resources returns the static resources.
func (h *Handler) Resources() []Resource {
	return []Resource{
		{
			Resource: mcp.NewResource("listmonk://subscribers", "Subscribers",
				mcp.WithResourceDescription("The 50 most recent subscribers"),
				mcp.WithMIMEType(markdownMIME)),
			Handler: h.read("subscribers", func(ctx context.Context, c *listmonk.Client, _ string) (string, error) {
				resp, err := c.GetSubscribers(ctx, listmonk.SubscriberQuery{PerPage: 50})
				if err != nil {
					return "", err
				}
				return subscribersMarkdown(resp.Data()), nil
			}),
		},
		{
			Resource: mcp.NewResource("listmonk://lists", "Mailing lists",
				mcp.WithResourceDescription("All mailing lists"),
				mcp.WithMIMEType(markdownMIME)),
			Handler: h.read("lists", func(ctx context.Context, c *listmonk.Client, _ string) (string, error) {
				resp, err := c.GetLists(ctx)
				if err != nil {
					return "", err
				}
				return listsMarkdown(resp.Data()), nil
			}),
		},
		{
			Resource: mcp.NewResource("listmonk://campaigns", "Campaigns",
				mcp.WithResourceDescription("The most recent campaigns"),
				mcp.WithMIMEType(markdownMIME)),
			Handler: h.read("campaigns", func(ctx context.Context, c *listmonk.Client, _ string) (string, error) {
				resp, err := c.GetCampaigns(ctx, listmonk.CampaignQuery{PerPage: 50})
				if err != nil {
					return "", err
				}
				return campaignsMarkdown(resp.Data()), nil
			}),
		},
		{
			Resource: mcp.NewResource("listmonk://templates", "Templates",
				mcp.WithResourceDescription("All email templates"),
				mcp.WithMIMEType(markdownMIME)),
			Handler: h.read("templates", func(ctx context.Context, c *listmonk.Client, _ string) (string, error) {
				resp, err := c.GetTemplates(ctx)
				if err != nil {
					return "", err
				}
				return templatesMarkdown(resp.Data()), nil
			}),
		},
	}
}

// ResourceTemplates returns the parameterized resources.
func (h *Handler) ResourceTemplates() []ResourceTemplate {
	return []ResourceTemplate{
		{
			Template: mcp.NewResourceTemplate(subscriberURIPrefix+"{id}", "Subscriber by ID",
				mcp.WithTemplateDescription("Subscriber details by ID"),
				mcp.WithTemplateMIMEType(markdownMIME)),
			Handler: h.read("subscriber", func(ctx context.Context, c *listmonk.Client, uri string) (string, error) {
				raw := strings.TrimPrefix(uri, subscriberURIPrefix)
				id, err := strconv.Atoi(raw)
				if err != nil {
					return "", fmt.Errorf("subscriber id %q is not numeric", raw)
				}
				resp, err := c.GetSubscriber(ctx, id)
				if err != nil {
					return "", err
				}
				return subscriberMarkdown(resp.DataMap()), nil
			}),
		},
		{
			Template: mcp.NewResourceTemplate(subscriberEmailURIPrefix+"{email}", "Subscriber by email",
				mcp.WithTemplateDescription("Subscriber details by email address"),
				mcp.WithTemplateMIMEType(markdownMIME)),
			Handler: h.read("subscriber_email", func(ctx context.Context, c *listmonk.Client, uri string) (string, error) {
				email := strings.TrimPrefix(uri, subscriberEmailURIPrefix)
				if unescaped, err := url.PathUnescape(email); err == nil {
					email = unescaped
				}
				resp, err := c.GetSubscriberByEmail(ctx, email)
				if err != nil {
					return "", err
				}
				return subscriberMarkdown(resp.DataMap()), nil
			}),
		},
	}
}

// read adapts render to a resource handler. Failures are rendered into the
// document as "Error retrieving <resource>: <reason>" rather than failing
// the read.
func (h *Handler) read(name string, render renderFunc) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := req.Params.URI

		var body string
		c, err := h.provider.Client()
		if err == nil {
			body, err = render(ctx, c, uri)
		}
		if err != nil {
			h.logger.Warn("resource read failed",
				log.String("resource", name),
				log.String("uri", uri),
				log.Err(err))
			body = fmt.Sprintf("Error retrieving %s: %v", strings.TrimPrefix(uri, "listmonk://"), err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: markdownMIME,
				Text:     body,
			},
		}, nil
	}
}
