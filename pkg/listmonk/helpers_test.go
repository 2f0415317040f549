package listmonk

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
)

// fakeTimer fires immediately and records every requested delay.
type fakeTimer struct {
	rec *delayRecorder
	c   chan time.Time
}

func (t *fakeTimer) Start(d time.Duration) {
	t.rec.add(d)
	t.c <- time.Now()
}

func (t *fakeTimer) Stop() {}

func (t *fakeTimer) C() <-chan time.Time { return t.c }

type delayRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *delayRecorder) add(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
}

func (r *delayRecorder) all() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

func (r *delayRecorder) newTimer() backoff.Timer {
	return &fakeTimer{rec: r, c: make(chan time.Time, 1)}
}

// doFunc adapts a function to HTTPClient.
type doFunc func(*http.Request) (*http.Response, error)

func (f doFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func testConfig(t *testing.T, url string, maxRetries int) *Config {
	t.Helper()
	cfg, err := NewConfig(Params{
		URL:        url,
		Username:   "api",
		Password:   "secret",
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
	})
	require.NoError(t, err)
	return cfg
}

// newTestClient builds a client with instant backoff. The session is
// installed directly so tests do not depend on a health endpoint.
func newTestClient(t *testing.T, url string, maxRetries int, opts ...Option) (*Client, *delayRecorder) {
	t.Helper()
	c, err := New(testConfig(t, url, maxRetries), opts...)
	require.NoError(t, err)

	rec := &delayRecorder{}
	c.newTimer = rec.newTimer
	c.sess = c.dial()
	c.state = StateConnected
	t.Cleanup(func() { _ = c.Close() })
	return c, rec
}

// newStub starts an httptest server serving handler.
func newStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func jsonReader(s string) io.Reader { return strings.NewReader(s) }
