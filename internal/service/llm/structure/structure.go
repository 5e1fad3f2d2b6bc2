// Package structure recovers named marketing fields from free-form model output.
//
// The scan is a best-effort heuristic over labeled lines. It is good enough for
// cosmetic marketing copy and nothing else; callers that need guarantees should
// ask the provider for JSON instead and swap the Structurer implementation.
package structure

import (
	"strings"
	"unicode"
)

// DefaultCTA is used when the text carries no labels at all
const DefaultCTA = "Contact us today!"

// StructuredContent is the decomposition of provider text into named fields.
// Any field may be empty when the scan finds no matching line.
type StructuredContent struct {
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	CTA          string   `json:"cta"`
	ShortVersion string   `json:"shortVersion,omitempty"`
	Tags         []string `json:"recommendedTags,omitempty"`
}

// Structurer turns provider text into StructuredContent
type Structurer interface {
	Parse(text string) StructuredContent
}

type field int

const (
	fieldNone field = iota
	fieldTitle
	fieldCTA
	fieldShort
	fieldTags
)

type label struct {
	prefix string
	field  field
}

// Case-sensitive, matched against the trimmed line
var labels = []label{
	{"Title:", fieldTitle},
	{"Subject:", fieldTitle},
	{"Call-to-Action:", fieldCTA},
	{"CTA:", fieldCTA},
	{"Short Version:", fieldShort},
	{"Tags:", fieldTags},
	{"Hashtags:", fieldTags},
}

const bodyLabel = "Body:"

// LabelStructurer scans for "Title:", "CTA:" style label lines
type LabelStructurer struct{}

// Parse implements Structurer
func (LabelStructurer) Parse(text string) StructuredContent {
	lines := strings.Split(text, "\n")

	found := make(map[field]int)
	values := make(map[field]string)
	for i, line := range lines {
		f, value := matchLabel(line)
		if f == fieldNone {
			continue
		}
		if _, ok := found[f]; ok {
			continue
		}
		found[f] = i
		values[f] = value
	}

	if len(found) == 0 {
		title, _, _ := strings.Cut(text, "\n")
		return StructuredContent{
			Title: strings.TrimRight(title, "\r"),
			Body:  text,
			CTA:   DefaultCTA,
		}
	}

	start := 0
	if i, ok := found[fieldTitle]; ok {
		start = i + 1
	}
	end := len(lines)
	if i, ok := found[fieldCTA]; ok && i >= start {
		end = i
	}

	var body []string
	for _, line := range lines[start:end] {
		if f, _ := matchLabel(line); f != fieldNone {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, bodyLabel) {
			line = strings.TrimSpace(strings.TrimPrefix(trimmed, bodyLabel))
		}
		body = append(body, strings.TrimRight(line, "\r"))
	}

	return StructuredContent{
		Title:        values[fieldTitle],
		Body:         strings.TrimSpace(strings.Join(body, "\n")),
		CTA:          values[fieldCTA],
		ShortVersion: values[fieldShort],
		Tags:         SplitTags(values[fieldTags]),
	}
}

func matchLabel(line string) (field, string) {
	trimmed := strings.TrimSpace(line)
	for _, l := range labels {
		if strings.HasPrefix(trimmed, l.prefix) {
			return l.field, strings.TrimSpace(trimmed[len(l.prefix):])
		}
	}
	return fieldNone, ""
}

// SplitTags splits a tag line on any run of whitespace or commas
func SplitTags(raw string) []string {
	tags := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(tags) == 0 {
		return nil
	}
	return tags
}

var defaultStructurer Structurer = LabelStructurer{}

// Parse runs the default structurer
func Parse(text string) StructuredContent {
	return defaultStructurer.Parse(text)
}
