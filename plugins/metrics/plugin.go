// Package metrics serves the server's Prometheus registry over HTTP.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonkmcp"
	"github.com/bft-labs/listmonk-mcp/pkg/log"
)

// Path is where metrics are exposed.
const Path = "/metrics"

const shutdownTimeout = 5 * time.Second

// Plugin exposes PluginConfig.Gatherer (or the default registry) at Path.
type Plugin struct {
	addr string

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	logger log.Logger
	done   chan struct{}
}

// New creates a metrics plugin listening on addr, e.g. "127.0.0.1:9090".
func New(addr string) *Plugin {
	return &Plugin{addr: addr}
}

// WithMetricsServer returns a listmonkmcp Option serving metrics on addr.
func WithMetricsServer(addr string) listmonkmcp.Option {
	return listmonkmcp.WithPlugin(New(addr))
}

func (p *Plugin) Name() string { return "metrics" }

// Initialize binds the listener so address errors fail Start.
func (p *Plugin) Initialize(ctx context.Context, cfg listmonkmcp.PluginConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	ln, err := net.Listen("tcp", p.addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(Path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	p.mu.Lock()
	p.srv, p.ln, p.logger = srv, ln, logger
	p.done = make(chan struct{})
	p.mu.Unlock()

	go func() {
		defer close(p.done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", log.Err(err))
		}
	}()

	logger.Info("metrics server listening",
		log.String("addr", ln.Addr().String()),
		log.String("path", Path))
	return nil
}

// Addr returns the bound address, or "" before Initialize.
func (p *Plugin) Addr() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ln == nil {
		return ""
	}
	return p.ln.Addr().String()
}

// Shutdown stops the HTTP server.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	srv, done := p.srv, p.done
	p.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(ctx)
	<-done
	return err
}

var _ listmonkmcp.Plugin = (*Plugin)(nil)
