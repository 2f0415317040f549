package listmonk

// SubscriberStatus is a subscriber's account status.
type SubscriberStatus string

const (
	SubscriberEnabled     SubscriberStatus = "enabled"
	SubscriberDisabled    SubscriberStatus = "disabled"
	SubscriberBlocklisted SubscriberStatus = "blocklisted"
)

// CampaignStatus is the delivery state of a campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignRunning   CampaignStatus = "running"
	CampaignPaused    CampaignStatus = "paused"
	CampaignFinished  CampaignStatus = "finished"
	CampaignCancelled CampaignStatus = "cancelled"
)

// CampaignType distinguishes regular sends from opt-in confirmation campaigns.
type CampaignType string

const (
	CampaignRegular CampaignType = "regular"
	CampaignOptin   CampaignType = "optin"
)

// ContentType is the body format of a campaign or transactional message.
type ContentType string

const (
	ContentRichtext ContentType = "richtext"
	ContentHTML     ContentType = "html"
	ContentMarkdown ContentType = "markdown"
	ContentPlain    ContentType = "plain"
)

// ListType is the visibility of a mailing list.
type ListType string

const (
	ListPublic  ListType = "public"
	ListPrivate ListType = "private"
)

// OptinType is the subscription confirmation mode of a list.
type OptinType string

const (
	OptinSingle OptinType = "single"
	OptinDouble OptinType = "double"
)

// TemplateType is what a template is used for.
type TemplateType string

const (
	TemplateCampaign TemplateType = "campaign"
	TemplateTx       TemplateType = "tx"
)

// Ptr returns a pointer to v, for the optional fields of update shapes.
func Ptr[T any](v T) *T {
	return &v
}
