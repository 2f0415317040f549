package listmonk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// SubscriberQuery filters and paginates GetSubscribers.
type SubscriberQuery struct {
	Page    int    // default 1
	PerPage int    // default 20
	OrderBy string // default "created_at"
	Order   string // default "desc"

	// Query is a listmonk SQL expression, e.g. subscribers.name LIKE 'a%'.
	Query string
}

// NewSubscriber is the shape sent by CreateSubscriber.
type NewSubscriber struct {
	Email                   string
	Name                    string
	Status                  SubscriberStatus // default enabled
	Lists                   []int
	Attribs                 map[string]any
	PreconfirmSubscriptions bool
}

// SubscriberUpdate carries the fields to change. Nil fields are omitted.
type SubscriberUpdate struct {
	Email   *string
	Name    *string
	Status  *SubscriberStatus
	Lists   []int
	Attribs map[string]any
}

// GetSubscribers lists subscribers.
func (c *Client) GetSubscribers(ctx context.Context, q SubscriberQuery) (Payload, error) {
	params := map[string]any{
		"page":     pageOr(q.Page, 1),
		"per_page": pageOr(q.PerPage, 20),
		"order_by": "created_at",
		"order":    "desc",
	}
	if q.OrderBy != "" {
		params["order_by"] = q.OrderBy
	}
	if q.Order != "" {
		params["order"] = q.Order
	}
	if q.Query != "" {
		params["query"] = q.Query
	}
	return c.get(ctx, "/api/subscribers", params)
}

// GetSubscriber fetches one subscriber by id.
func (c *Client) GetSubscriber(ctx context.Context, id int) (Payload, error) {
	if err := checkID("subscriber_id", id); err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/api/subscribers/%d", id), nil)
}

// GetSubscriberByEmail looks a subscriber up by exact email address and
// returns {"data": <subscriber>}. An empty result set is reported as an
// *APIError with status 404 and KindNotFound, so callers can tell "no such
// subscriber" apart from transport failures.
func (c *Client) GetSubscriberByEmail(ctx context.Context, email string) (Payload, error) {
	query := fmt.Sprintf("subscribers.email = '%s'", strings.ReplaceAll(email, "'", "''"))
	resp, err := c.get(ctx, "/api/subscribers", map[string]any{"query": query})
	if err != nil {
		return nil, err
	}

	results, _ := resp.DataMap()["results"].([]any)
	if len(results) == 0 {
		return nil, &APIError{
			Message:    fmt.Sprintf("Subscriber with email %s not found", email),
			StatusCode: http.StatusNotFound,
			Kind:       KindNotFound,
		}
	}
	return Payload{"data": results[0]}, nil
}

// CreateSubscriber adds a subscriber.
func (c *Client) CreateSubscriber(ctx context.Context, s NewSubscriber) (Payload, error) {
	if err := checkListIDs(s.Lists); err != nil {
		return nil, err
	}
	status := s.Status
	if status == "" {
		status = SubscriberEnabled
	}
	return c.post(ctx, "/api/subscribers", map[string]any{
		"email":                    s.Email,
		"name":                     s.Name,
		"status":                   status,
		"lists":                    orEmpty(s.Lists),
		"attribs":                  orEmptyMap(s.Attribs),
		"preconfirm_subscriptions": s.PreconfirmSubscriptions,
	})
}

// UpdateSubscriber modifies a subscriber, sending only the fields set in u.
func (c *Client) UpdateSubscriber(ctx context.Context, id int, u SubscriberUpdate) (Payload, error) {
	if err := checkID("subscriber_id", id); err != nil {
		return nil, err
	}
	if err := checkListIDs(u.Lists); err != nil {
		return nil, err
	}

	body := map[string]any{}
	if u.Email != nil {
		body["email"] = *u.Email
	}
	if u.Name != nil {
		body["name"] = *u.Name
	}
	if u.Status != nil {
		body["status"] = *u.Status
	}
	if u.Lists != nil {
		body["lists"] = u.Lists
	}
	if u.Attribs != nil {
		body["attribs"] = u.Attribs
	}
	return c.put(ctx, fmt.Sprintf("/api/subscribers/%d", id), body)
}

// DeleteSubscriber removes a subscriber.
func (c *Client) DeleteSubscriber(ctx context.Context, id int) (Payload, error) {
	if err := checkID("subscriber_id", id); err != nil {
		return nil, err
	}
	return c.delete(ctx, fmt.Sprintf("/api/subscribers/%d", id))
}

// SetSubscriberStatus changes only the status of a subscriber.
func (c *Client) SetSubscriberStatus(ctx context.Context, id int, status SubscriberStatus) (Payload, error) {
	if err := checkID("subscriber_id", id); err != nil {
		return nil, err
	}
	return c.put(ctx, fmt.Sprintf("/api/subscribers/%d", id), map[string]any{"status": status})
}
