package prompts

import (
	"fmt"
	"strings"
)

// AgentPrompt creates the prompt for a multi-agent request
func (g *Generator) AgentPrompt(request AgentRequest) string {
	var sb strings.Builder

	switch p := request.Params.(type) {
	case TranslateParams:
		g.translatePrompt(&sb, request, p)
	case EnhanceParams:
		g.enhancePrompt(&sb, p)
	case SummarizeParams:
		g.summarizePrompt(&sb, p)
	case SEOParams:
		g.seoPrompt(&sb, p)
	case SocialParams:
		g.socialPrompt(&sb, p)
	case EmailParams:
		g.emailPrompt(&sb, p)
	default:
		sb.WriteString("Improve the following content.\n")
	}

	if request.Domain != "" {
		sb.WriteString(fmt.Sprintf("Domain: %s\n", request.Domain))
	}
	if request.TargetLanguage != "" && request.Params != nil && request.Params.AgentType() != AgentTranslate {
		sb.WriteString(fmt.Sprintf("Respond in %s.\n", request.TargetLanguage))
	}

	sb.WriteString("\nContent:\n")
	sb.WriteString(request.Content)
	sb.WriteString("\n\nReturn only the resulting text without explanations.")

	return sb.String()
}

func (g *Generator) translatePrompt(sb *strings.Builder, request AgentRequest, p TranslateParams) {
	target := orDefault(request.TargetLanguage, DefaultLanguage)

	sb.WriteString("You are a professional translator of marketing content.\n")
	if p.SourceLanguage != "" {
		sb.WriteString(fmt.Sprintf("Translate the content from %s to %s.\n", p.SourceLanguage, target))
	} else {
		sb.WriteString(fmt.Sprintf("Translate the content to %s.\n", target))
	}
	if p.Formality != "" {
		sb.WriteString(fmt.Sprintf("Formality: %s\n", p.Formality))
	}
	sb.WriteString("Preserve formatting, links and placeholders exactly.\n")
}

func (g *Generator) enhancePrompt(sb *strings.Builder, p EnhanceParams) {
	sb.WriteString("You are an expert editor. Improve the clarity, flow and persuasiveness of the content.\n")
	sb.WriteString(fmt.Sprintf("Tone: %s\n", orDefault(p.Tone, DefaultTone)))
	switch p.Length {
	case "shorter":
		sb.WriteString("Make it noticeably shorter.\n")
	case "longer":
		sb.WriteString("Expand it with relevant detail.\n")
	default:
		sb.WriteString("Keep roughly the same length.\n")
	}
	if p.Goal != "" {
		sb.WriteString(fmt.Sprintf("Goal: %s\n", p.Goal))
	}
}

func (g *Generator) summarizePrompt(sb *strings.Builder, p SummarizeParams) {
	sb.WriteString("Summarize the content for a busy business reader.\n")
	if p.MaxWords > 0 {
		sb.WriteString(fmt.Sprintf("Use at most %d words.\n", p.MaxWords))
	}
	if p.Bullets {
		sb.WriteString("Format the summary as bullet points.\n")
	}
}

func (g *Generator) seoPrompt(sb *strings.Builder, p SEOParams) {
	sb.WriteString("You are an SEO specialist. Rewrite the content to rank well in search engines while staying natural.\n")
	if len(p.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("Keywords: %s\n", strings.Join(p.Keywords, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Target Audience: %s\n", orDefault(p.Audience, DefaultAudience)))
	sb.WriteString("Include a meta description of at most 160 characters on the first line.\n")
}

func (g *Generator) socialPrompt(sb *strings.Builder, p SocialParams) {
	platform := orDefault(p.Platform, "social media")
	sb.WriteString(fmt.Sprintf("Turn the content into an engaging %s post.\n", platform))
	sb.WriteString(fmt.Sprintf("Tone: %s\n", orDefault(p.Tone, DefaultTone)))
	if p.Hashtags {
		sb.WriteString("End with a line of relevant hashtags.\n")
	}
}

func (g *Generator) emailPrompt(sb *strings.Builder, p EmailParams) {
	sb.WriteString("Rewrite the content as a marketing email.\n")
	sb.WriteString(fmt.Sprintf("Tone: %s\n", orDefault(p.Tone, DefaultTone)))
	if p.RecipientName != "" {
		sb.WriteString(fmt.Sprintf("Recipient Name: %s\n", p.RecipientName))
	}
	if p.SenderName != "" {
		sb.WriteString(fmt.Sprintf("Sender Name: %s\n", p.SenderName))
	}
	sb.WriteString("Start with a \"Subject:\" line.\n")
}
