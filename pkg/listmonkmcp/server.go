package listmonkmcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bft-labs/listmonk-mcp/internal/app"
	"github.com/bft-labs/listmonk-mcp/internal/domain"
	"github.com/bft-labs/listmonk-mcp/internal/mcptools"
	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
	"github.com/bft-labs/listmonk-mcp/pkg/log"
)

// DefaultServerName is announced to MCP clients when Config.ServerName is empty.
const DefaultServerName = "Listmonk MCP Server"

// Lifecycle errors, re-exported for errors.Is checks.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrNoConfigLoader  = domain.ErrNoConfigLoader
)

// Config holds the configuration for a Server.
type Config struct {
	// Listmonk is the connection configuration of the initial session.
	Listmonk *listmonk.Config

	// ServerName is announced to MCP clients.
	ServerName string

	// WatchPaths lists the files Listmonk was loaded from. Plugins such as
	// the config watcher use them to trigger Reload.
	WatchPaths []string
}

// Server is an MCP server exposing listmonk operations as tools and
// resources. It owns exactly one listmonk session at a time.
type Server struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	emitter   *emitter
	logger    log.Logger
	mcp       *server.MCPServer

	mu     sync.RWMutex
	client *listmonk.Client
	runCtx context.Context

	// reloadMu serializes Reload calls without blocking Client().
	reloadMu sync.Mutex
}

// New creates a Server in StateStopped. Call Start to open the listmonk
// session, then Serve to speak MCP.
func New(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Listmonk == nil {
		return nil, fmt.Errorf("%w: listmonk configuration is required", ErrInvalidConfig)
	}
	if cfg.ServerName == "" {
		cfg.ServerName = DefaultServerName
	}

	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}

	em := &emitter{handler: o.eventHandler}
	s := &Server{
		config:    cfg,
		opts:      o,
		lifecycle: app.NewLifecycle(o.logger, em),
		emitter:   em,
		logger:    o.logger,
	}

	s.mcp = server.NewMCPServer(cfg.ServerName, Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)
	mcptools.New(s, o.logger).Register(s.mcp)

	return s, nil
}

// MCPServer returns the underlying MCP server, for hosting it on a
// transport other than stdio.
func (s *Server) MCPServer() *server.MCPServer { return s.mcp }

// Client returns the current listmonk session. Tool and resource handlers
// call it once per request, so a Reload takes effect on the next call.
func (s *Server) Client() (*listmonk.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.client == nil {
		return nil, listmonk.ErrNotConnected
	}
	return s.client, nil
}

// Start connects the listmonk session and initializes plugins. It returns
// once the server is Running; the context bounds the lifetime of plugins.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}
	if err := s.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.runCtx = runCtx
	s.lifecycle.SetCancel(cancel)

	client, err := s.connect(runCtx, s.config.Listmonk)
	if err != nil {
		cancel()
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "connect failed")
		return err
	}
	s.client = client

	pluginCfg := PluginConfig{
		ServerName: s.config.ServerName,
		WatchPaths: s.config.WatchPaths,
		Logger:     s.logger,
		Reload:     s.Reload,
		Gatherer:   s.opts.gatherer,
	}
	for i, p := range s.opts.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			s.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			cancel()
			s.shutdownPlugins(s.opts.plugins[:i])
			_ = s.client.Close()
			s.client = nil
			_ = s.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		s.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	return s.lifecycle.TransitionTo(app.StateRunning, "session connected")
}

// Serve speaks MCP over the given streams until ctx is canceled, the input
// is exhausted, or Stop is called. The server must be Running.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if s.lifecycle.State() != app.StateRunning {
		return ErrNotRunning
	}

	release := s.lifecycle.Track()
	defer release()

	s.mu.RLock()
	runCtx := s.runCtx
	s.mu.RUnlock()

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(runCtx, cancel)
	defer stop()

	s.logger.Info("serving MCP over stdio", log.String("server", s.config.ServerName))
	err := server.NewStdioServer(s.mcp).Listen(serveCtx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("stdio server stopped", log.Err(err))
		return err
	}
	return nil
}

// Stop cancels serving loops, waits for them to return, shuts plugins down
// in reverse order and closes the listmonk session. Returns
// ErrShutdownTimeout if serving loops outlive ShutdownTimeout.
func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.lifecycle.CanStop() {
		s.mu.Unlock()
		return ErrNotRunning
	}
	if err := s.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		s.mu.Unlock()
		return err
	}
	s.lifecycle.Cancel()
	s.mu.Unlock()

	err := s.lifecycle.Drain(app.ShutdownTimeout)

	s.shutdownPlugins(s.opts.plugins)

	s.mu.Lock()
	if s.client != nil {
		_ = s.client.Close()
		s.client = nil
	}
	s.mu.Unlock()

	if err != nil {
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
		return err
	}
	return s.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
}

func (s *Server) shutdownPlugins(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			s.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			continue
		}
		s.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
	}
}

// Status returns the current lifecycle state.
func (s *Server) Status() State {
	return convertState(s.lifecycle.State())
}

// Reload loads a new configuration, connects a new session and swaps it in
// before closing the old one. If any step fails the old session stays in
// place and the error is returned.
func (s *Server) Reload(ctx context.Context) error {
	if s.opts.loader == nil {
		return ErrNoConfigLoader
	}
	if s.lifecycle.State() != app.StateRunning {
		return ErrNotRunning
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	cfg, err := s.opts.loader(ctx)
	if err != nil {
		err = fmt.Errorf("load config: %w", err)
		s.logger.Warn("reload failed, keeping current session", log.Err(err))
		s.emitter.onReload("", err)
		return err
	}

	next, err := s.connect(ctx, cfg)
	if err != nil {
		s.logger.Warn("reload failed, keeping current session",
			log.String("url", cfg.BaseURL()),
			log.Err(err))
		s.emitter.onReload(cfg.BaseURL(), err)
		return err
	}

	s.mu.Lock()
	if s.lifecycle.State() != app.StateRunning {
		s.mu.Unlock()
		_ = next.Close()
		s.logger.Warn("reload abandoned, server stopped", log.String("url", cfg.BaseURL()))
		s.emitter.onReload(cfg.BaseURL(), ErrNotRunning)
		return ErrNotRunning
	}
	prev := s.client
	s.client = next
	s.mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
	s.logger.Info("listmonk session reloaded", log.String("url", cfg.BaseURL()))
	s.emitter.onReload(cfg.BaseURL(), nil)
	return nil
}

func (s *Server) connect(ctx context.Context, cfg *listmonk.Config) (*listmonk.Client, error) {
	opts := []listmonk.Option{listmonk.WithLogger(s.logger)}
	if s.opts.httpClient != nil {
		opts = append(opts, listmonk.WithHTTPClient(s.opts.httpClient))
	}
	if s.opts.metrics != nil {
		opts = append(opts, listmonk.WithMetrics(s.opts.metrics))
	}

	client, err := listmonk.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// validateModuleVersions checks that all module versions are compatible.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"listmonk": {listmonk.Version, listmonk.MinCompatibleVersion},
		"log":      {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible reports whether version >= minVersion, both in
// "major.minor.patch" form.
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
