package listmonk

import "context"

// TransactionalEmail is the shape sent by SendTransactional.
type TransactionalEmail struct {
	SubscriberEmail string
	TemplateID      int
	Data            map[string]any
	ContentType     ContentType // default html
}

// SendTransactional sends one templated message to a subscriber.
func (c *Client) SendTransactional(ctx context.Context, m TransactionalEmail) (Payload, error) {
	if err := checkID("template_id", m.TemplateID); err != nil {
		return nil, err
	}
	contentType := m.ContentType
	if contentType == "" {
		contentType = ContentHTML
	}
	return c.post(ctx, "/api/tx", map[string]any{
		"subscriber_email": m.SubscriberEmail,
		"template_id":      m.TemplateID,
		"data":             orEmptyMap(m.Data),
		"content_type":     contentType,
	})
}
