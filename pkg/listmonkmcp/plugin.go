package listmonkmcp

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/listmonk-mcp/pkg/log"
)

// Plugin extends a Server with optional behavior. Plugins are initialized
// in registration order during Start and shut down in reverse order during
// Stop. An Initialize error aborts Start.
type Plugin interface {
	Name() string
	Initialize(ctx context.Context, cfg PluginConfig) error
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to each plugin on Initialize.
type PluginConfig struct {
	ServerName string

	// WatchPaths are the configuration files the session was built from.
	WatchPaths []string

	Logger log.Logger

	// Reload rebuilds the listmonk session from the configured loader.
	Reload func(ctx context.Context) error

	// Gatherer exposes the metrics registry, if one was configured.
	Gatherer prometheus.Gatherer
}

// BasePlugin provides no-op Initialize and Shutdown.
type BasePlugin struct {
	PluginName string
}

func (p BasePlugin) Name() string                                 { return p.PluginName }
func (BasePlugin) Initialize(context.Context, PluginConfig) error { return nil }
func (BasePlugin) Shutdown(context.Context) error                 { return nil }
