package prompts

import (
	"fmt"
	"sort"
	"strings"
)

// System instructions shared by the gateway endpoints
const (
	MarketingSystem = "You are an expert marketing copywriter for a business-services company."
	EmailSystem     = "You are an expert email designer who writes clean, responsive HTML emails."
)

// Generator renders requests into prompt strings.
// Output depends only on the request, so identical requests give identical prompts.
type Generator struct{}

// NewGenerator creates a new prompt generator
func NewGenerator() *Generator {
	return &Generator{}
}

// PromoPrompt creates the prompt for promotional content
func (g *Generator) PromoPrompt(request PromoRequest) string {
	request = request.WithDefaults()

	var sb strings.Builder

	sb.WriteString("Create promotional marketing content with the following parameters:\n\n")
	if request.PromoCode != "" {
		sb.WriteString(fmt.Sprintf("Promo Code: %s\n", request.PromoCode))
	}
	sb.WriteString(fmt.Sprintf("Target Audience: %s\n", request.Audience))
	sb.WriteString(fmt.Sprintf("Service: %s\n", request.Service))
	sb.WriteString(fmt.Sprintf("Channel: %s\n", request.ChannelType))
	sb.WriteString(fmt.Sprintf("Theme: %s\n", request.Theme))
	sb.WriteString(fmt.Sprintf("Urgency: %s\n\n", request.Urgency))

	sb.WriteString(channelGuidance(request.ChannelType))
	sb.WriteString("\n")
	if request.Urgency == "high" {
		sb.WriteString("Convey that the offer is time-limited.\n")
	}
	if request.PromoCode != "" {
		sb.WriteString("Mention the promo code exactly as written.\n")
	}

	sb.WriteString("\nRespond using exactly these labeled lines:\n")
	sb.WriteString("Title: <headline>\n")
	sb.WriteString("Body: <main text, may span several lines>\n")
	sb.WriteString("Call-to-Action: <button or closing line>\n")
	sb.WriteString("Short Version: <one sentence for SMS or push>\n")
	sb.WriteString("Tags: <comma separated hashtags>\n")
	sb.WriteString("Do not include any explanations.")

	return sb.String()
}

func channelGuidance(channel string) string {
	switch strings.ToLower(channel) {
	case "sms":
		return "Keep the body under 160 characters."
	case "social":
		return "Write a short, engaging post suitable for social media."
	case "web", "website":
		return "Write copy for a website banner and landing section."
	default:
		return "Write copy suitable for an email campaign."
	}
}

// EmailTemplatePrompt creates the prompt for a complete HTML email template
func (g *Generator) EmailTemplatePrompt(request EmailTemplateRequest) string {
	request = request.WithDefaults()
	content := request.Content

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Create a complete HTML email template of type \"%s\".\n", request.Type))
	if guidance, ok := templateGuidance[request.Type]; ok {
		sb.WriteString(guidance)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	writeField(&sb, "Subject", content.Subject)
	writeField(&sb, "Title", content.Title)
	writeField(&sb, "Message", content.Message)
	writeField(&sb, "CTA Text", content.CTAText)
	writeField(&sb, "CTA Link", content.CTALink)
	writeField(&sb, "Brand Name", content.BrandName)
	writeField(&sb, "Brand Color", content.BrandColor)
	writeField(&sb, "Recipient Name", content.RecipientName)
	writeField(&sb, "Additional Info", content.AdditionalInfo)

	if len(content.CustomFields) > 0 {
		sb.WriteString("Custom Fields:\n")
		keys := make([]string, 0, len(content.CustomFields))
		for k := range content.CustomFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("- %s: %v\n", k, content.CustomFields[k]))
		}
	}

	sb.WriteString("\nRequirements:\n")
	sb.WriteString("- Use inline CSS and table-based layout for email client compatibility\n")
	sb.WriteString(fmt.Sprintf("- Use %s as the primary brand color\n", content.BrandColor))
	sb.WriteString("- Make the layout responsive with a maximum width of 600px\n")
	sb.WriteString("- Do not use JavaScript\n")
	if content.CTALink != "" {
		sb.WriteString("- Render the call-to-action as a button linking to the CTA Link\n")
	}
	sb.WriteString("\nReturn only the HTML document starting with <!DOCTYPE html>. Do not include explanations.")

	return sb.String()
}

func writeField(sb *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", name, value))
}
