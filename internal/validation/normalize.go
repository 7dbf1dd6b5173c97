package validation

import (
	"regexp"
	"strings"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	blankRunPattern     = regexp.MustCompile(`\n{3,}`)
)

// CleanCompletion normalizes raw model output into plain text: literal
// escape sequences become real characters, code fences and markdown links
// are removed, placeholder lines are dropped, and blank runs collapse.
// It runs before validation so guardrails see the text that would be
// persisted.
func CleanCompletion(text string) string {
	if text == "" {
		return ""
	}

	s := text
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\r`, "\r")
	s = strings.ReplaceAll(s, `\t`, "\t")
	s = strings.ReplaceAll(s, `\u0022`, `"`)
	s = strings.ReplaceAll(s, "```", "")
	s = markdownLinkPattern.ReplaceAllString(s, "$1")

	var kept []string
	for _, line := range strings.Split(s, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "...") {
			continue
		}
		if strings.Contains(strings.ToLower(stripped), "continued") && strings.Contains(stripped, "...") {
			continue
		}
		kept = append(kept, line)
	}
	s = strings.Join(kept, "\n")

	s = blankRunPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
