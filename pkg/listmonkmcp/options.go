package listmonkmcp

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
	"github.com/bft-labs/listmonk-mcp/pkg/log"
)

// ConfigLoader produces a fresh client configuration for Reload.
type ConfigLoader func(ctx context.Context) (*listmonk.Config, error)

// Option configures optional behavior of a Server.
type Option func(*options)

type options struct {
	logger       log.Logger
	httpClient   listmonk.HTTPClient
	metrics      *listmonk.Metrics
	gatherer     prometheus.Gatherer
	eventHandler EventHandler
	plugins      []Plugin
	loader       ConfigLoader
}

// WithLogger sets the logger shared by the server, its sessions and plugins.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient makes every session use client instead of a pooled
// transport built from the configuration.
func WithHTTPClient(client listmonk.HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithMetrics records request metrics for every session.
func WithMetrics(m *listmonk.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithGatherer exposes a metrics registry to plugins.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(o *options) {
		o.gatherer = g
	}
}

// WithEventHandler sets a handler for state change and reload events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the server starts.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithConfigLoader enables Reload.
func WithConfigLoader(loader ConfigLoader) Option {
	return func(o *options) {
		o.loader = loader
	}
}
