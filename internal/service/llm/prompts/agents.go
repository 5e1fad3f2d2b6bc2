package prompts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownAgentType is returned for an agentType outside the supported set
var ErrUnknownAgentType = errors.New("unknown agent type")

// AgentType selects the multi-agent transformation
type AgentType string

const (
	AgentTranslate AgentType = "translate"
	AgentEnhance   AgentType = "enhance"
	AgentSummarize AgentType = "summarize"
	AgentSEO       AgentType = "seo"
	AgentSocial    AgentType = "social"
	AgentEmail     AgentType = "email"
)

// AgentTypes lists the supported agents in a stable order
var AgentTypes = []AgentType{AgentTranslate, AgentEnhance, AgentSummarize, AgentSEO, AgentSocial, AgentEmail}

// Temperature is the sampling temperature used for the agent
func (a AgentType) Temperature() float32 {
	switch a {
	case AgentTranslate:
		return 0.3
	case AgentSummarize, AgentSEO:
		return 0.4
	default:
		return 0.7
	}
}

// Delivery holds the optional chained email send shared by every agent
type Delivery struct {
	SendEmail bool   `json:"sendEmail,omitempty"`
	To        string `json:"to,omitempty"`
	Subject   string `json:"subject,omitempty"`
}

// AgentParams is implemented by one struct per agent type
type AgentParams interface {
	AgentType() AgentType
	DeliveryOptions() Delivery
}

func (d Delivery) DeliveryOptions() Delivery { return d }

type TranslateParams struct {
	Delivery
	SourceLanguage string `json:"sourceLanguage,omitempty"`
	Formality      string `json:"formality,omitempty"`
}

type EnhanceParams struct {
	Delivery
	Tone   string `json:"tone,omitempty"`
	Length string `json:"length,omitempty"` // shorter, same, longer
	Goal   string `json:"goal,omitempty"`
}

type SummarizeParams struct {
	Delivery
	MaxWords int  `json:"maxWords,omitempty"`
	Bullets  bool `json:"bullets,omitempty"`
}

type SEOParams struct {
	Delivery
	Keywords []string `json:"keywords,omitempty"`
	Audience string   `json:"audience,omitempty"`
}

type SocialParams struct {
	Delivery
	Platform string `json:"platform,omitempty"`
	Hashtags bool   `json:"hashtags,omitempty"`
	Tone     string `json:"tone,omitempty"`
}

type EmailParams struct {
	Delivery
	Tone          string `json:"tone,omitempty"`
	RecipientName string `json:"recipientName,omitempty"`
	SenderName    string `json:"senderName,omitempty"`
}

func (TranslateParams) AgentType() AgentType { return AgentTranslate }
func (EnhanceParams) AgentType() AgentType   { return AgentEnhance }
func (SummarizeParams) AgentType() AgentType { return AgentSummarize }
func (SEOParams) AgentType() AgentType       { return AgentSEO }
func (SocialParams) AgentType() AgentType    { return AgentSocial }
func (EmailParams) AgentType() AgentType     { return AgentEmail }

// DecodeAgentParams decodes the raw parameters object into the variant for agentType.
// Empty or null parameters give the zero variant.
func DecodeAgentParams(agentType AgentType, raw json.RawMessage) (AgentParams, error) {
	var target AgentParams
	switch agentType {
	case AgentTranslate:
		target = &TranslateParams{}
	case AgentEnhance:
		target = &EnhanceParams{}
	case AgentSummarize:
		target = &SummarizeParams{}
	case AgentSEO:
		target = &SEOParams{}
	case AgentSocial:
		target = &SocialParams{}
	case AgentEmail:
		target = &EmailParams{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgentType, agentType)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, target); err != nil {
			return nil, fmt.Errorf("invalid parameters for %s agent: %w", agentType, err)
		}
	}

	return deref(target), nil
}

func deref(p AgentParams) AgentParams {
	switch v := p.(type) {
	case *TranslateParams:
		return *v
	case *EnhanceParams:
		return *v
	case *SummarizeParams:
		return *v
	case *SEOParams:
		return *v
	case *SocialParams:
		return *v
	case *EmailParams:
		return *v
	}
	return p
}

// AgentRequest is a decoded multi-agent-generate request
type AgentRequest struct {
	Content        string
	Params         AgentParams
	TargetLanguage string
	Domain         string
}
