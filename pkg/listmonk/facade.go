package listmonk

import (
	"context"
	"net/http"
)

func (c *Client) get(ctx context.Context, path string, query map[string]any) (Payload, error) {
	return c.Execute(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *Client) post(ctx context.Context, path string, body map[string]any) (Payload, error) {
	return c.Execute(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *Client) put(ctx context.Context, path string, body map[string]any) (Payload, error) {
	return c.Execute(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *Client) delete(ctx context.Context, path string) (Payload, error) {
	return c.Execute(ctx, Request{Method: http.MethodDelete, Path: path})
}

// orEmpty replaces a nil slice so it encodes as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// orEmptyMap replaces a nil map so it encodes as {} rather than null.
func orEmptyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func pageOr(page, def int) int {
	if page <= 0 {
		return def
	}
	return page
}
