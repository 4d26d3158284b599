package agent

import (
	"regexp"
	"strings"
)

var thinkingRe = regexp.MustCompile(`(?s)<thinking>(.*?)</thinking>`)

// splitThinking separates a private <thinking> block from the visible
// response. When an oracle wraps its whole answer in thinking tags, the
// thinking text stands in for the response rather than losing it entirely.
func splitThinking(response string) (thinking, clean string) {
	matches := thinkingRe.FindStringSubmatch(response)
	if matches != nil {
		thinking = matches[1]
	}

	clean = strings.TrimSpace(thinkingRe.ReplaceAllString(response, ""))
	if clean == "" && thinking != "" {
		clean = strings.TrimSpace(thinking)
	}
	return thinking, clean
}
