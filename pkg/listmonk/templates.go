package listmonk

import (
	"context"
	"fmt"
)

// NewTemplate is the shape sent by CreateTemplate.
type NewTemplate struct {
	Name      string
	Body      string
	Type      TemplateType // default campaign
	IsDefault bool
}

// TemplateUpdate carries the fields to change. Nil fields are omitted.
type TemplateUpdate struct {
	Name      *string
	Body      *string
	IsDefault *bool
}

// GetTemplates returns all templates.
func (c *Client) GetTemplates(ctx context.Context) (Payload, error) {
	return c.get(ctx, "/api/templates", nil)
}

// GetTemplate fetches one template.
func (c *Client) GetTemplate(ctx context.Context, id int) (Payload, error) {
	if err := checkID("template_id", id); err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/api/templates/%d", id), nil)
}

// CreateTemplate creates a template.
func (c *Client) CreateTemplate(ctx context.Context, t NewTemplate) (Payload, error) {
	templateType := t.Type
	if templateType == "" {
		templateType = TemplateCampaign
	}
	return c.post(ctx, "/api/templates", map[string]any{
		"name":       t.Name,
		"body":       t.Body,
		"type":       templateType,
		"is_default": t.IsDefault,
	})
}

// UpdateTemplate modifies a template.
func (c *Client) UpdateTemplate(ctx context.Context, id int, u TemplateUpdate) (Payload, error) {
	if err := checkID("template_id", id); err != nil {
		return nil, err
	}

	body := map[string]any{}
	if u.Name != nil {
		body["name"] = *u.Name
	}
	if u.Body != nil {
		body["body"] = *u.Body
	}
	if u.IsDefault != nil {
		body["is_default"] = *u.IsDefault
	}
	return c.put(ctx, fmt.Sprintf("/api/templates/%d", id), body)
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, id int) (Payload, error) {
	if err := checkID("template_id", id); err != nil {
		return nil, err
	}
	return c.delete(ctx, fmt.Sprintf("/api/templates/%d", id))
}
