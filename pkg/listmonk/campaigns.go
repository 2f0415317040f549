package listmonk

import (
	"context"
	"fmt"
	"time"
)

// CampaignQuery filters and paginates GetCampaigns.
type CampaignQuery struct {
	Page    int // default 1
	PerPage int // default 20
	Status  CampaignStatus
}

// NewCampaign is the shape sent by CreateCampaign.
type NewCampaign struct {
	Name        string
	Subject     string
	Lists       []int
	Type        CampaignType // default regular
	ContentType ContentType  // default richtext
	Body        string       // omitted when empty
	TemplateID  int          // omitted when zero
	Tags        []string
}

// CampaignUpdate carries the fields to change. Nil fields are omitted.
type CampaignUpdate struct {
	Name    *string
	Subject *string
	Lists   []int
	Body    *string
	Tags    []string
}

// GetCampaigns lists campaigns.
func (c *Client) GetCampaigns(ctx context.Context, q CampaignQuery) (Payload, error) {
	params := map[string]any{
		"page":     pageOr(q.Page, 1),
		"per_page": pageOr(q.PerPage, 20),
	}
	if q.Status != "" {
		params["status"] = q.Status
	}
	return c.get(ctx, "/api/campaigns", params)
}

// GetCampaign fetches one campaign.
func (c *Client) GetCampaign(ctx context.Context, id int) (Payload, error) {
	if err := checkID("campaign_id", id); err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/api/campaigns/%d", id), nil)
}

// CreateCampaign creates a draft campaign.
func (c *Client) CreateCampaign(ctx context.Context, n NewCampaign) (Payload, error) {
	if err := checkListIDs(n.Lists); err != nil {
		return nil, err
	}
	campaignType := n.Type
	if campaignType == "" {
		campaignType = CampaignRegular
	}
	contentType := n.ContentType
	if contentType == "" {
		contentType = ContentRichtext
	}

	body := map[string]any{
		"name":         n.Name,
		"subject":      n.Subject,
		"lists":        orEmpty(n.Lists),
		"type":         campaignType,
		"content_type": contentType,
		"tags":         orEmpty(n.Tags),
	}
	if n.Body != "" {
		body["body"] = n.Body
	}
	if n.TemplateID != 0 {
		if err := checkID("template_id", n.TemplateID); err != nil {
			return nil, err
		}
		body["template_id"] = n.TemplateID
	}
	return c.post(ctx, "/api/campaigns", body)
}

// UpdateCampaign modifies a campaign.
func (c *Client) UpdateCampaign(ctx context.Context, id int, u CampaignUpdate) (Payload, error) {
	if err := checkID("campaign_id", id); err != nil {
		return nil, err
	}
	if err := checkListIDs(u.Lists); err != nil {
		return nil, err
	}

	body := map[string]any{}
	if u.Name != nil {
		body["name"] = *u.Name
	}
	if u.Subject != nil {
		body["subject"] = *u.Subject
	}
	if u.Lists != nil {
		body["lists"] = u.Lists
	}
	if u.Body != nil {
		body["body"] = *u.Body
	}
	if u.Tags != nil {
		body["tags"] = u.Tags
	}
	return c.put(ctx, fmt.Sprintf("/api/campaigns/%d", id), body)
}

// DeleteCampaign removes a campaign.
func (c *Client) DeleteCampaign(ctx context.Context, id int) (Payload, error) {
	if err := checkID("campaign_id", id); err != nil {
		return nil, err
	}
	return c.delete(ctx, fmt.Sprintf("/api/campaigns/%d", id))
}

// SendCampaign starts delivery immediately.
func (c *Client) SendCampaign(ctx context.Context, id int) (Payload, error) {
	if err := checkID("campaign_id", id); err != nil {
		return nil, err
	}
	return c.put(ctx, fmt.Sprintf("/api/campaigns/%d/status", id), map[string]any{
		"status": CampaignRunning,
	})
}

// ScheduleCampaign schedules delivery at sendAt.
func (c *Client) ScheduleCampaign(ctx context.Context, id int, sendAt time.Time) (Payload, error) {
	if err := checkID("campaign_id", id); err != nil {
		return nil, err
	}
	return c.put(ctx, fmt.Sprintf("/api/campaigns/%d/status", id), map[string]any{
		"status":  CampaignScheduled,
		"send_at": sendAt.Format(time.RFC3339),
	})
}

// GetCampaignPreview returns the rendered campaign body.
func (c *Client) GetCampaignPreview(ctx context.Context, id int) (Payload, error) {
	if err := checkID("campaign_id", id); err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/api/campaigns/%d/preview", id), nil)
}
