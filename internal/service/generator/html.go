package generator

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/chynybekuuludastan/content_gateway/internal/service/llm"
)

const doctype = "<!DOCTYPE html>"

// Elements never allowed in an email body
const strippedElements = "script, iframe, object, embed, form"

// SanitizeEmailHTML turns provider output into a complete HTML document:
// markdown fences removed, active content and inline event handlers dropped,
// doctype prepended.
func SanitizeEmailHTML(raw string) (string, error) {
	cleaned := llm.CleanCodeBlocks(raw)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleaned))
	if err != nil {
		return "", fmt.Errorf("failed to parse email HTML: %w", err)
	}

	doc.Find(strippedElements).Remove()

	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		node := s.Get(0)
		var unsafe []string
		for _, attr := range node.Attr {
			key := strings.ToLower(attr.Key)
			value := strings.ToLower(strings.TrimSpace(attr.Val))
			if strings.HasPrefix(key, "on") || strings.HasPrefix(value, "javascript:") {
				unsafe = append(unsafe, attr.Key)
			}
		}
		for _, key := range unsafe {
			s.RemoveAttr(key)
		}
	})

	html, err := goquery.OuterHtml(doc.Find("html").First())
	if err != nil {
		return "", fmt.Errorf("failed to render email HTML: %w", err)
	}

	return doctype + "\n" + html, nil
}
