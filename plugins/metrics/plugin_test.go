package metrics

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonkmcp"
)

func TestPlugin_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "listmonk_mcp_test_total",
		Help: "test counter",
	})
	reg.MustRegister(counter)
	counter.Add(3)

	p := New("127.0.0.1:0")
	require.NoError(t, p.Initialize(context.Background(), listmonkmcp.PluginConfig{Gatherer: reg}))
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	resp, err := http.Get("http://" + p.Addr() + Path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "listmonk_mcp_test_total 3")
}

func TestPlugin_BadAddress(t *testing.T) {
	p := New("256.0.0.1:bad")
	err := p.Initialize(context.Background(), listmonkmcp.PluginConfig{})
	require.Error(t, err)
	assert.Empty(t, p.Addr())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestPlugin_ShutdownClosesListener(t *testing.T) {
	p := New("127.0.0.1:0")
	require.NoError(t, p.Initialize(context.Background(), listmonkmcp.PluginConfig{}))
	addr := p.Addr()

	require.NoError(t, p.Shutdown(context.Background()))

	_, err := http.Get("http://" + addr + Path)
	assert.Error(t, err)
}

func TestPlugin_Name(t *testing.T) {
	assert.Equal(t, "metrics", New(":0").Name())
}
