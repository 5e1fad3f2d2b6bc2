package generator

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"unicode"

	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/prompts"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/structure"
)

// FallbackProvider is reported when the canned content was used
const FallbackProvider = "fallback"

// CannedPromo builds promotional content from the request alone
func CannedPromo(request prompts.PromoRequest) structure.StructuredContent {
	request = request.WithDefaults()

	var body strings.Builder
	body.WriteString(fmt.Sprintf("Discover how %s can help %s audiences get more done.", request.Service, request.Audience))
	if request.PromoCode != "" {
		body.WriteString(fmt.Sprintf(" Use code %s to claim your discount.", request.PromoCode))
	}
	if request.Urgency == "high" {
		body.WriteString(" This offer ends soon, so act now.")
	}

	cta := structure.DefaultCTA
	short := fmt.Sprintf("Special offer on %s", request.Service)
	if request.PromoCode != "" {
		cta = fmt.Sprintf("Redeem %s now", request.PromoCode)
		short += fmt.Sprintf(" with code %s", request.PromoCode)
	}

	return structure.StructuredContent{
		Title:        fmt.Sprintf("Special Offer: %s", request.Service),
		Body:         body.String(),
		CTA:          cta,
		ShortVersion: short + ".",
		Tags:         hashtags(request.Service, request.Theme, "offer"),
	}
}

func hashtags(words ...string) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, w := range words {
		tag := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return unicode.ToLower(r)
			}
			return -1
		}, w)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, "#"+tag)
	}
	return tags
}

var cannedTitles = map[prompts.TemplateType]string{
	prompts.TemplateWelcome:      "Welcome to %s",
	prompts.TemplateNewsletter:   "%s Newsletter",
	prompts.TemplatePromotion:    "A special offer from %s",
	prompts.TemplateNotification: "An update from %s",
	prompts.TemplateFollowUp:     "Following up from %s",
	prompts.TemplateCustom:       "A message from %s",
}

var cannedMessages = map[prompts.TemplateType]string{
	prompts.TemplateWelcome:      "We're glad to have you with us. Here is everything you need to get started.",
	prompts.TemplateNewsletter:   "Here is the latest news from our team.",
	prompts.TemplatePromotion:    "Don't miss our latest offer, available for a limited time.",
	prompts.TemplateNotification: "We have an update regarding your account.",
	prompts.TemplateFollowUp:     "We wanted to follow up on our recent conversation. Let us know if you have any questions.",
	prompts.TemplateCustom:       "Thank you for being with us.",
}

type cannedField struct {
	Name  string
	Value string
}

type cannedEmailData struct {
	Subject        string
	Title          string
	Greeting       string
	Message        string
	AdditionalInfo string
	CTAText        string
	CTALink        string
	BrandName      string
	BrandColor     string
	CustomFields   []cannedField
}

var cannedEmailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Subject}}</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f4f5;font-family:Arial,Helvetica,sans-serif;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0">
<tr><td align="center" style="padding:24px;">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="max-width:600px;width:100%;background-color:#ffffff;border-radius:8px;">
<tr><td style="background-color:{{.BrandColor}};padding:24px;color:#ffffff;font-size:22px;font-weight:bold;">{{.BrandName}}</td></tr>
<tr><td style="padding:32px 24px;color:#111827;font-size:16px;line-height:1.5;">
<h1 style="font-size:24px;margin:0 0 16px;">{{.Title}}</h1>
<p style="margin:0 0 16px;">{{.Greeting}}</p>
<p style="margin:0 0 16px;">{{.Message}}</p>
{{- if .AdditionalInfo}}
<p style="margin:0 0 16px;color:#4b5563;">{{.AdditionalInfo}}</p>
{{- end}}
{{- if .CustomFields}}
<ul style="margin:0 0 16px;padding-left:20px;">
{{- range .CustomFields}}
<li><strong>{{.Name}}:</strong> {{.Value}}</li>
{{- end}}
</ul>
{{- end}}
{{- if .CTALink}}
<p style="margin:24px 0;"><a href="{{.CTALink}}" style="background-color:{{.BrandColor}};color:#ffffff;padding:12px 24px;border-radius:6px;text-decoration:none;display:inline-block;">{{.CTAText}}</a></p>
{{- end}}
</td></tr>
<tr><td style="padding:16px 24px;color:#9ca3af;font-size:12px;">&copy; {{.BrandName}}</td></tr>
</table>
</td></tr>
</table>
</body>
</html>
`))

// CannedEmailTemplate renders a static HTML email from the request alone
func CannedEmailTemplate(request prompts.EmailTemplateRequest) string {
	request = request.WithDefaults()
	content := request.Content

	templateType := request.Type
	if !templateType.Valid() {
		templateType = prompts.TemplateCustom
	}

	data := cannedEmailData{
		Title:          content.Title,
		Message:        content.Message,
		AdditionalInfo: content.AdditionalInfo,
		CTAText:        content.CTAText,
		CTALink:        content.CTALink,
		BrandName:      content.BrandName,
		BrandColor:     content.BrandColor,
		Greeting:       "Hello,",
	}
	if data.Title == "" {
		data.Title = fmt.Sprintf(cannedTitles[templateType], content.BrandName)
	}
	if data.Message == "" {
		data.Message = cannedMessages[templateType]
	}
	if data.CTALink != "" && data.CTAText == "" {
		data.CTAText = "Learn more"
	}
	if content.RecipientName != "" {
		data.Greeting = fmt.Sprintf("Hello %s,", content.RecipientName)
	}
	data.Subject = content.Subject
	if data.Subject == "" {
		data.Subject = data.Title
	}

	keys := make([]string, 0, len(content.CustomFields))
	for k := range content.CustomFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		data.CustomFields = append(data.CustomFields, cannedField{Name: k, Value: fmt.Sprint(content.CustomFields[k])})
	}

	var buf bytes.Buffer
	if err := cannedEmailTemplate.Execute(&buf, data); err != nil {
		// Only reachable on a writer failure, which bytes.Buffer never reports
		return fmt.Sprintf("%s\n<html><body><h1>%s</h1><p>%s</p></body></html>",
			doctype, template.HTMLEscapeString(data.Title), template.HTMLEscapeString(data.Message))
	}
	return buf.String()
}
