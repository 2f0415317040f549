package mcptools

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readResource(t *testing.T, h *Handler, uri string) string {
	t.Helper()
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri

	for _, r := range h.Resources() {
		if r.Resource.URI == uri {
			return resourceText(t, r.Handler, req)
		}
	}
	name := "Subscriber by ID"
	if strings.HasPrefix(uri, subscriberEmailURIPrefix) {
		name = "Subscriber by email"
	}
	for _, r := range h.ResourceTemplates() {
		if r.Template.Name == name {
			return resourceText(t, r.Handler, req)
		}
	}
	t.Fatalf("no resource for %s", uri)
	return ""
}

func resourceText(t *testing.T, handler func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error), req mcp.ReadResourceRequest) string {
	t.Helper()
	contents, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "contents is %T", contents[0])
	assert.Equal(t, req.Params.URI, tc.URI)
	assert.Equal(t, markdownMIME, tc.MIMEType)
	return tc.Text
}

func TestResource_Subscriber(t *testing.T) {
	_, c := newListmonkStub(t, map[string]stubReply{
		"GET /api/subscribers/5": {body: `{"data":{
			"id": 5, "email": "a@b.com", "name": "Ada", "status": "enabled",
			"lists": [{"id": 1, "name": "News"}],
			"attribs": {"city": "Berlin", "age": 36}
		}}`},
	})
	h := New(provide(c), nil)

	text := readResource(t, h, "listmonk://subscriber/5")
	assert.Contains(t, text, "# Subscriber Details")
	assert.Contains(t, text, "**ID:** 5")
	assert.Contains(t, text, "**Email:** a@b.com")
	assert.Contains(t, text, "- News (ID: 1)")
	assert.Contains(t, text, "- **age:** 36\n- **city:** Berlin")
}

func TestResource_SubscriberByEmail_NotFound(t *testing.T) {
	_, c := newListmonkStub(t, map[string]stubReply{
		"GET /api/subscribers": {body: `{"data":{"results":[],"total":0}}`},
	})
	h := New(provide(c), nil)

	text := readResource(t, h, "listmonk://subscriber/email/ghost%40example.com")
	assert.Equal(t,
		"Error retrieving subscriber/email/ghost%40example.com: Subscriber with email ghost@example.com not found",
		text)
}

func TestResource_Subscribers(t *testing.T) {
	stub, c := newListmonkStub(t, map[string]stubReply{
		"GET /api/subscribers": {body: `{"data":{"results":[
			{"name": "Ada", "email": "a@b.com", "status": "enabled", "lists": [{"name": "News"}, {"name": "Beta"}]}
		],"total":120}}`},
	})
	h := New(provide(c), nil)

	text := readResource(t, h, "listmonk://subscribers")
	assert.Contains(t, text, "**Total Subscribers:** 120")
	assert.Contains(t, text, "**Showing:** 1 subscribers")
	assert.Contains(t, text, "- **Ada** (a@b.com) - Status: enabled - Lists: News, Beta")

	calls := stub.recorded()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Query, "per_page=50")
}

func TestResource_ListsCampaignsTemplates(t *testing.T) {
	_, c := newListmonkStub(t, map[string]stubReply{
		"GET /api/lists":     {body: `{"data":{"results":[{"id":1,"name":"News","type":"public","optin":"single","subscriber_count":10}],"total":1}}`},
		"GET /api/campaigns": {body: `{"data":{"results":[{"id":2,"name":"Launch","status":"draft","subject":"Hi","sent":0,"to_send":10}],"total":1}}`},
		"GET /api/templates": {body: `{"data":[{"id":3,"name":"Base","type":"campaign","is_default":true}]}`},
	})
	h := New(provide(c), nil)

	assert.Contains(t, readResource(t, h, "listmonk://lists"),
		"- **News** (ID: 1) - Type: public - Opt-in: single - Subscribers: 10")
	assert.Contains(t, readResource(t, h, "listmonk://campaigns"),
		"- **Launch** (ID: 2) - Status: draft - Subject: Hi - Sent: 0/10")
	assert.Contains(t, readResource(t, h, "listmonk://templates"),
		"- **Base** (ID: 3) - Type: campaign (default)")
}

func TestResource_ServerError(t *testing.T) {
	_, c := newListmonkStub(t, map[string]stubReply{
		"GET /api/lists": {status: http.StatusInternalServerError, body: `{"message":"database down"}`},
	})
	h := New(provide(c), nil)

	assert.Equal(t, "Error retrieving lists: database down", readResource(t, h, "listmonk://lists"))
}
