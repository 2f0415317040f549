package listmonk

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/bft-labs/listmonk-mcp/pkg/log"
)

const (
	healthPath = "/api/health"

	maxConnsPerHost     = 10
	maxIdleConnsPerHost = 5
)

// HTTPClient abstracts HTTP request execution for testing and custom transports.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// State is the lifecycle state of a Client's session.
type State int

const (
	StateUnconnected State = iota
	StateConnecting
	StateConnected
	StateClosed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "Unconnected"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Client is a listmonk API client bound to one Config. It owns a single
// pooled transport that is safe for concurrent requests once connected.
type Client struct {
	cfg       *Config
	base      *url.URL
	logger    log.Logger
	metrics   *Metrics
	userAgent string

	httpClient HTTPClient
	baseDelay  time.Duration
	newTimer   func() backoff.Timer

	mu    sync.RWMutex
	state State
	sess  *session
}

// session is the transport established by Connect.
type session struct {
	client    HTTPClient
	headers   http.Header
	closeIdle func()
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the pooled transport Connect would build. The
// client's own timeout and pool settings are used as-is.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithMetrics records request outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates an unconnected client. Call Connect before issuing requests.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, &ConfigError{Err: fmt.Errorf("config is required")}
	}
	base, err := directoryURL(cfg.baseURL)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	c := &Client{
		cfg:       cfg,
		base:      base,
		logger:    log.NewNoopLogger(),
		userAgent: UserAgent,
		baseDelay: time.Second,
		state:     StateUnconnected,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the client's configuration.
func (c *Client) Config() *Config { return c.cfg }

// State returns the current session state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Connect establishes the transport and verifies it with one health check.
// If the health check fails the transport is released and the client returns
// to its previous state. Connect on a connected client returns
// ErrAlreadyConnected; Connect after Close opens a fresh session.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateConnected || c.state == StateConnecting {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	prev := c.state
	c.state = StateConnecting
	c.mu.Unlock()

	s := c.dial()
	if _, err := c.execute(ctx, s, Request{Method: http.MethodGet, Path: healthPath}); err != nil {
		s.closeIdle()
		c.mu.Lock()
		c.state = prev
		c.mu.Unlock()
		c.logger.Error("listmonk connect failed",
			log.String("url", c.cfg.baseURL),
			log.Err(err))
		return fmt.Errorf("listmonk: health check: %w", err)
	}

	c.mu.Lock()
	c.sess = s
	c.state = StateConnected
	c.mu.Unlock()

	c.logger.Info("connected to listmonk", log.String("url", c.cfg.baseURL))
	return nil
}

// Close releases the transport. It is a no-op unless the client is connected.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConnected {
		return nil
	}
	c.sess.closeIdle()
	c.sess = nil
	c.state = StateClosed
	c.logger.Info("listmonk client closed", log.String("url", c.cfg.baseURL))
	return nil
}

// current returns the connected session or ErrNotConnected.
func (c *Client) current() (*session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != StateConnected {
		return nil, ErrNotConnected
	}
	return c.sess, nil
}

func (c *Client) dial() *session {
	headers := http.Header{}
	headers.Set("User-Agent", c.userAgent)
	headers.Set("Accept", "application/json")
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", c.cfg.authorization())

	if c.httpClient != nil {
		s := &session{client: c.httpClient, headers: headers, closeIdle: func() {}}
		if ic, ok := c.httpClient.(interface{ CloseIdleConnections() }); ok {
			s.closeIdle = ic.CloseIdleConnections
		}
		return s
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   c.cfg.timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        maxIdleConnsPerHost,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &session{
		client:    &http.Client{Transport: transport, Timeout: c.cfg.timeout},
		headers:   headers,
		closeIdle: transport.CloseIdleConnections,
	}
}

// HealthCheck reports whether the server is reachable and healthy.
func (c *Client) HealthCheck(ctx context.Context) (Payload, error) {
	return c.Execute(ctx, Request{Method: http.MethodGet, Path: healthPath})
}
