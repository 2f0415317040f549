package mcptools

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
	"github.com/bft-labs/listmonk-mcp/pkg/log"
)

// Provider supplies the connected listmonk client for each call.
type Provider interface {
	Client() (*listmonk.Client, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() (*listmonk.Client, error)

// Client calls f.
func (f ProviderFunc) Client() (*listmonk.Client, error) { return f() }

// Handler builds the MCP tools and resources backed by a Provider.
type Handler struct {
	provider Provider
	logger   log.Logger
}

// New creates a Handler. A nil logger discards output.
func New(provider Provider, logger log.Logger) *Handler {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Handler{provider: provider, logger: logger}
}

// Register adds every tool, resource and resource template to s.
func (h *Handler) Register(s *server.MCPServer) {
	s.AddTools(h.Tools()...)
	for _, r := range h.Resources() {
		s.AddResource(r.Resource, r.Handler)
	}
	for _, r := range h.ResourceTemplates() {
		s.AddResourceTemplate(r.Template, r.Handler)
	}
}

// Tools returns all tools in registration order.
func (h *Handler) Tools() []server.ServerTool {
	return []server.ServerTool{
		h.checkHealth(),

		h.addSubscriber(),
		h.updateSubscriber(),
		h.removeSubscriber(),
		h.changeSubscriberStatus(),
		h.getSubscribers(),

		h.createMailingList(),
		h.updateMailingList(),
		h.deleteMailingList(),
		h.getMailingLists(),

		h.createCampaign(),
		h.updateCampaign(),
		h.deleteCampaign(),
		h.sendCampaign(),
		h.scheduleCampaign(),
		h.getCampaigns(),
		h.getCampaignPreview(),

		h.createTemplate(),
		h.updateTemplate(),
		h.deleteTemplate(),
		h.getTemplates(),

		h.sendTransactionalEmail(),
	}
}

// toolFunc is the body of a tool once arguments are decoded and a client
// is available.
type toolFunc func(ctx context.Context, c *listmonk.Client, a args) (*mcp.CallToolResult, error)

// call wraps fn with argument decoding, client lookup, logging and error
// rendering. Domain errors become error results, never protocol errors.
func (h *Handler) call(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		a := args(req.GetArguments())

		c, err := h.provider.Client()
		if err != nil {
			h.logger.Error("tool call without session", log.String("tool", name), log.Err(err))
			return failure(err), nil
		}

		result, err := fn(ctx, c, a)
		if err != nil {
			h.logToolError(name, err, time.Since(start))
			return failure(err), nil
		}

		h.logger.Debug("tool call completed",
			log.String("tool", name),
			log.Duration("elapsed", time.Since(start)))
		return result, nil
	}
}

func (h *Handler) logToolError(name string, err error, elapsed time.Duration) {
	var apiErr *listmonk.APIError
	var argErr *argError
	switch {
	case errors.As(err, &argErr):
		h.logger.Warn("tool call rejected", log.String("tool", name), log.Err(err))
	case errors.As(err, &apiErr):
		h.logger.Warn("tool call failed",
			log.String("tool", name),
			log.String("kind", apiErr.Kind.String()),
			log.Int("status", apiErr.StatusCode),
			log.Duration("elapsed", elapsed),
			log.Err(err))
	default:
		h.logger.Error("tool call failed", log.String("tool", name), log.Err(err))
	}
}
