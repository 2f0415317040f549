package listmonk

import (
	"context"
	"fmt"
)

// NewList is the shape sent by CreateList.
type NewList struct {
	Name        string
	Type        ListType  // default public
	Optin       OptinType // default single
	Tags        []string
	Description string // omitted when empty
}

// ListUpdate carries the fields to change. Nil fields are omitted.
type ListUpdate struct {
	Name        *string
	Type        *ListType
	Optin       *OptinType
	Tags        []string
	Description *string
}

// GetLists returns all mailing lists.
func (c *Client) GetLists(ctx context.Context) (Payload, error) {
	return c.get(ctx, "/api/lists", nil)
}

// GetList fetches one mailing list.
func (c *Client) GetList(ctx context.Context, id int) (Payload, error) {
	if err := checkID("list_id", id); err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/api/lists/%d", id), nil)
}

// CreateList creates a mailing list.
func (c *Client) CreateList(ctx context.Context, l NewList) (Payload, error) {
	listType := l.Type
	if listType == "" {
		listType = ListPublic
	}
	optin := l.Optin
	if optin == "" {
		optin = OptinSingle
	}

	body := map[string]any{
		"name":  l.Name,
		"type":  listType,
		"optin": optin,
		"tags":  orEmpty(l.Tags),
	}
	if l.Description != "" {
		body["description"] = l.Description
	}
	return c.post(ctx, "/api/lists", body)
}

// UpdateList modifies a mailing list.
func (c *Client) UpdateList(ctx context.Context, id int, u ListUpdate) (Payload, error) {
	if err := checkID("list_id", id); err != nil {
		return nil, err
	}

	body := map[string]any{}
	if u.Name != nil {
		body["name"] = *u.Name
	}
	if u.Type != nil {
		body["type"] = *u.Type
	}
	if u.Optin != nil {
		body["optin"] = *u.Optin
	}
	if u.Tags != nil {
		body["tags"] = u.Tags
	}
	if u.Description != nil {
		body["description"] = *u.Description
	}
	return c.put(ctx, fmt.Sprintf("/api/lists/%d", id), body)
}

// DeleteList removes a mailing list.
func (c *Client) DeleteList(ctx context.Context, id int) (Payload, error) {
	if err := checkID("list_id", id); err != nil {
		return nil, err
	}
	return c.delete(ctx, fmt.Sprintf("/api/lists/%d", id))
}

// GetListSubscribers pages through the subscribers of one list.
// Non-positive page and perPage fall back to 1 and 20.
func (c *Client) GetListSubscribers(ctx context.Context, id, page, perPage int) (Payload, error) {
	if err := checkID("list_id", id); err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/api/lists/%d/subscribers", id), map[string]any{
		"page":     pageOr(page, 1),
		"per_page": pageOr(perPage, 20),
	})
}
