package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
)

type stubCall struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// listmonkStub answers listmonk API routes with canned JSON.
type listmonkStub struct {
	mu     sync.Mutex
	calls  []stubCall
	routes map[string]stubReply
}

type stubReply struct {
	status int
	body   string
}

func newListmonkStub(t *testing.T, routes map[string]stubReply) (*listmonkStub, *listmonk.Client) {
	t.Helper()
	stub := &listmonkStub{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(stub.serve))
	t.Cleanup(srv.Close)

	cfg, err := listmonk.NewConfig(listmonk.Params{
		URL:      srv.URL,
		Username: "api",
		Password: "secret",
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	c, err := listmonk.New(cfg)
	require.NoError(t, err)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Close() })

	stub.reset()
	return stub, c
}

func (s *listmonkStub) serve(w http.ResponseWriter, r *http.Request) {
	call := stubCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &call.Body)
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	reply, ok := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	switch {
	case ok:
	case r.URL.Path == "/api/health":
		reply = stubReply{body: `{"data":true}`}
	default:
		reply = stubReply{status: http.StatusNotFound, body: `{"message":"Not found"}`}
	}
	if reply.status != 0 {
		w.WriteHeader(reply.status)
	}
	_, _ = io.WriteString(w, reply.body)
}

func (s *listmonkStub) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *listmonkStub) recorded() []stubCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]stubCall(nil), s.calls...)
}

func provide(c *listmonk.Client) Provider {
	return ProviderFunc(func() (*listmonk.Client, error) { return c, nil })
}

func findTool(t *testing.T, h *Handler, name string) server.ServerTool {
	t.Helper()
	for _, tool := range h.Tools() {
		if tool.Tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not registered", name)
	return server.ServerTool{}
}

func callTool(t *testing.T, h *Handler, name string, arguments map[string]any) (*mcp.CallToolResult, map[string]any) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = arguments

	res, err := findTool(t, h, name).Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)

	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &body))
	return res, body
}

func TestHandler_Tools(t *testing.T) {
	h := New(ProviderFunc(func() (*listmonk.Client, error) { return nil, listmonk.ErrNotConnected }), nil)

	want := []string{
		"check_listmonk_health",
		"add_subscriber", "update_subscriber", "remove_subscriber", "change_subscriber_status", "get_subscribers",
		"create_mailing_list", "update_mailing_list", "delete_mailing_list", "get_mailing_lists",
		"create_campaign", "update_campaign", "delete_campaign", "send_campaign", "schedule_campaign",
		"get_campaigns", "get_campaign_preview",
		"create_template", "update_template", "delete_template", "get_templates",
		"send_transactional_email",
	}

	var got []string
	for _, tool := range h.Tools() {
		got = append(got, tool.Tool.Name)
		assert.NotEmpty(t, tool.Tool.Description, tool.Tool.Name)
		assert.NotNil(t, tool.Handler, tool.Tool.Name)
	}
	assert.Equal(t, want, got)
}

func TestHandler_Register(t *testing.T) {
	h := New(ProviderFunc(func() (*listmonk.Client, error) { return nil, listmonk.ErrNotConnected }), nil)
	s := server.NewMCPServer("test", "0.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false))

	assert.NotPanics(t, func() { h.Register(s) })
}

func TestAddSubscriber(t *testing.T) {
	stub, c := newListmonkStub(t, map[string]stubReply{
		"POST /api/subscribers": {body: `{"data":{"id":11,"email":"a@b.com"}}`},
	})
	h := New(provide(c), nil)

	res, body := callTool(t, h, "add_subscriber", map[string]any{
		"email": "a@b.com",
		"name":  "A",
		"lists": []any{float64(1), float64(2)},
	})

	assert.False(t, res.IsError)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Subscriber a@b.com added successfully", body["message"])
	assert.Equal(t, float64(11), body["subscriber"].(map[string]any)["id"])

	calls := stub.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{
		"email":                    "a@b.com",
		"name":                     "A",
		"status":                   "enabled",
		"lists":                    []any{float64(1), float64(2)},
		"attribs":                  map[string]any{},
		"preconfirm_subscriptions": false,
	}, calls[0].Body)
}

func TestAddSubscriber_MissingArgument(t *testing.T) {
	stub, c := newListmonkStub(t, nil)
	h := New(provide(c), nil)

	res, body := callTool(t, h, "add_subscriber", map[string]any{"name": "A", "lists": []any{}})

	assert.True(t, res.IsError)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], `"email"`)
	assert.Nil(t, body["status_code"])
	assert.Empty(t, stub.recorded())
}

func TestRemoveSubscriber_NotFound(t *testing.T) {
	_, c := newListmonkStub(t, map[string]stubReply{
		"DELETE /api/subscribers/99": {status: http.StatusNotFound, body: `{"message":"Subscriber not found"}`},
	})
	h := New(provide(c), nil)

	res, body := callTool(t, h, "remove_subscriber", map[string]any{"subscriber_id": float64(99)})

	assert.True(t, res.IsError)
	assert.Equal(t, "Subscriber not found", body["error"])
	assert.Equal(t, float64(404), body["status_code"])
}

func TestUpdateSubscriber_SendsOnlyGivenFields(t *testing.T) {
	stub, c := newListmonkStub(t, map[string]stubReply{
		"PUT /api/subscribers/3": {body: `{"data":{"id":3}}`},
	})
	h := New(provide(c), nil)

	res, _ := callTool(t, h, "update_subscriber", map[string]any{
		"subscriber_id": float64(3),
		"status":        "disabled",
	})
	require.False(t, res.IsError)

	calls := stub.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{"status": "disabled"}, calls[0].Body)
}

func TestScheduleCampaign(t *testing.T) {
	stub, c := newListmonkStub(t, map[string]stubReply{
		"PUT /api/campaigns/4/status": {body: `{"data":{"id":4,"status":"scheduled"}}`},
	})
	h := New(provide(c), nil)

	res, body := callTool(t, h, "schedule_campaign", map[string]any{
		"campaign_id": float64(4),
		"send_at":     "2026-01-31T09:00:00+01:00",
	})
	require.False(t, res.IsError)
	assert.Equal(t, "Campaign 4 scheduled for 2026-01-31T09:00:00+01:00", body["message"])

	calls := stub.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "scheduled", calls[0].Body["status"])
	assert.Equal(t, "2026-01-31T09:00:00+01:00", calls[0].Body["send_at"])

	res, body = callTool(t, h, "schedule_campaign", map[string]any{
		"campaign_id": float64(4),
		"send_at":     "tomorrow",
	})
	assert.True(t, res.IsError)
	assert.Contains(t, body["error"], "RFC 3339")

	res, _ = callTool(t, h, "schedule_campaign", map[string]any{
		"campaign_id": float64(4),
		"send_at":     "2026-01-31 09:00:00",
	})
	require.False(t, res.IsError)
	calls = stub.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, "2026-01-31T09:00:00Z", calls[1].Body["send_at"])
}

func TestGetCampaignPreview_Text(t *testing.T) {
	_, c := newListmonkStub(t, map[string]stubReply{
		"GET /api/campaigns/4/preview": {body: `<h1>Hello</h1>`},
	})
	h := New(provide(c), nil)

	res, body := callTool(t, h, "get_campaign_preview", map[string]any{"campaign_id": float64(4)})
	require.False(t, res.IsError)
	assert.Equal(t, "<h1>Hello</h1>", body["preview"])
}

func TestSendTransactionalEmail(t *testing.T) {
	stub, c := newListmonkStub(t, map[string]stubReply{
		"POST /api/tx": {body: `{"data":true}`},
	})
	h := New(provide(c), nil)

	res, _ := callTool(t, h, "send_transactional_email", map[string]any{
		"subscriber_email": "a@b.com",
		"template_id":      float64(2),
		"data":             map[string]any{"order": "A-1"},
	})
	require.False(t, res.IsError)

	calls := stub.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{
		"subscriber_email": "a@b.com",
		"template_id":      float64(2),
		"data":             map[string]any{"order": "A-1"},
		"content_type":     "html",
	}, calls[0].Body)
}

func TestCheckHealth(t *testing.T) {
	_, c := newListmonkStub(t, nil)
	h := New(provide(c), nil)

	res, body := callTool(t, h, "check_listmonk_health", nil)
	assert.False(t, res.IsError)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, c.Config().BaseURL(), body["server_url"])
	assert.Equal(t, map[string]any{"data": true}, body["listmonk_health"])
}

func TestCheckHealth_Unhealthy(t *testing.T) {
	_, c := newListmonkStub(t, map[string]stubReply{
		"GET /api/health": {body: `{"data":true}`},
	})
	h := New(provide(c), nil)
	require.NoError(t, c.Close())

	res, body := callTool(t, h, "check_listmonk_health", nil)
	assert.True(t, res.IsError)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["error"], "not connected")
}

func TestTool_ProviderError(t *testing.T) {
	h := New(ProviderFunc(func() (*listmonk.Client, error) {
		return nil, errors.New("server is reloading")
	}), nil)

	res, body := callTool(t, h, "get_mailing_lists", nil)
	assert.True(t, res.IsError)
	assert.Equal(t, "server is reloading", body["error"])
}

func TestArgs(t *testing.T) {
	a := args{
		"id":    float64(3),
		"frac":  1.5,
		"ids":   []any{float64(1), "2"},
		"bad":   []any{"x"},
		"tags":  []any{"a", "b"},
		"flag":  true,
		"name":  "n",
		"empty": nil,
	}

	id, err := a.requireInt("id")
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	_, err = a.requireInt("frac")
	assert.Error(t, err)

	ids, err := a.ints("ids")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids)

	_, err = a.ints("bad")
	assert.Error(t, err)

	tags, err := a.strs("tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tags)

	none, err := a.ints("missing")
	require.NoError(t, err)
	assert.Nil(t, none)

	flag, err := a.optBool("flag")
	require.NoError(t, err)
	require.NotNil(t, flag)
	assert.True(t, *flag)

	def, err := a.stringOr("empty", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", def)

	_, err = a.requireString("id")
	var argErr *argError
	assert.True(t, errors.As(err, &argErr))
	assert.True(t, strings.Contains(err.Error(), "must be a string"))
}
