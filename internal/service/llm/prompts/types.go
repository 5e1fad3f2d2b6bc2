package prompts

// Defaults substituted for omitted optional fields
const (
	DefaultAudience   = "general"
	DefaultTone       = "professional"
	DefaultService    = "our services"
	DefaultChannel    = "email"
	DefaultTheme      = "general promotion"
	DefaultUrgency    = "normal"
	DefaultLanguage   = "English"
	DefaultBrandName  = "Our Company"
	DefaultBrandColor = "#2563eb"
)

// PromoRequest is the body of generate-promo
type PromoRequest struct {
	PromoCode   string `json:"promoCode,omitempty"`
	Audience    string `json:"audience,omitempty"`
	Service     string `json:"service,omitempty"`
	ChannelType string `json:"channelType,omitempty"`
	Theme       string `json:"theme,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
}

// WithDefaults returns a copy with every empty optional field filled in
func (r PromoRequest) WithDefaults() PromoRequest {
	r.Audience = orDefault(r.Audience, DefaultAudience)
	r.Service = orDefault(r.Service, DefaultService)
	r.ChannelType = orDefault(r.ChannelType, DefaultChannel)
	r.Theme = orDefault(r.Theme, DefaultTheme)
	r.Urgency = orDefault(r.Urgency, DefaultUrgency)
	return r
}

// TemplateType identifies an email template family
type TemplateType string

const (
	TemplateWelcome      TemplateType = "welcome"
	TemplateNewsletter   TemplateType = "newsletter"
	TemplatePromotion    TemplateType = "promotion"
	TemplateNotification TemplateType = "notification"
	TemplateFollowUp     TemplateType = "follow-up"
	TemplateCustom       TemplateType = "custom"
)

var templateGuidance = map[TemplateType]string{
	TemplateWelcome:      "Warmly greet a new customer, explain what they can expect and point them to a first step.",
	TemplateNewsletter:   "Present several short news items with headings, suitable for a recurring newsletter.",
	TemplatePromotion:    "Highlight a limited offer with a prominent call-to-action button and a sense of urgency.",
	TemplateNotification: "Deliver a concise, factual notification with one clear action if needed.",
	TemplateFollowUp:     "Follow up on a previous conversation or purchase politely and invite a reply.",
	TemplateCustom:       "Follow the supplied content closely; keep the layout simple and professional.",
}

// Valid reports whether t is a known template type
func (t TemplateType) Valid() bool {
	_, ok := templateGuidance[t]
	return ok
}

// EmailContent carries the optional fields of an email template request
type EmailContent struct {
	Subject        string                 `json:"subject,omitempty"`
	Title          string                 `json:"title,omitempty"`
	Message        string                 `json:"message,omitempty"`
	CTAText        string                 `json:"ctaText,omitempty"`
	CTALink        string                 `json:"ctaLink,omitempty"`
	BrandName      string                 `json:"brandName,omitempty"`
	BrandColor     string                 `json:"brandColor,omitempty"`
	RecipientName  string                 `json:"recipientName,omitempty"`
	AdditionalInfo string                 `json:"additionalInfo,omitempty"`
	CustomFields   map[string]interface{} `json:"customFields,omitempty"`
}

// EmailTemplateRequest is the body of generate-email-template
type EmailTemplateRequest struct {
	Type     TemplateType `json:"type"`
	Content  EmailContent `json:"content"`
	Provider string       `json:"provider,omitempty"`
}

// WithDefaults returns a copy with the template type and brand fields filled in
func (r EmailTemplateRequest) WithDefaults() EmailTemplateRequest {
	if r.Type == "" {
		r.Type = TemplateCustom
	}
	r.Content.BrandName = orDefault(r.Content.BrandName, DefaultBrandName)
	r.Content.BrandColor = orDefault(r.Content.BrandColor, DefaultBrandColor)
	return r
}

// TextRequest is the body of generate-text
type TextRequest struct {
	Prompt      string   `json:"prompt"`
	Provider    string   `json:"provider,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"maxTokens,omitempty"`
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
