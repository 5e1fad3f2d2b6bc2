package llm

import (
	"regexp"
	"strings"
)

var codeBlocksRegex = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.+?)```")

// CleanCodeBlocks removes markdown code block markers from text
func CleanCodeBlocks(text string) string {
	if matches := codeBlocksRegex.FindStringSubmatch(text); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// If no code blocks found, return the original text
	return strings.TrimSpace(text)
}
