package validation

import (
	"fmt"
	"regexp"
)

// metaMentionPatterns match references to the model, AI, or generation
// tooling. A match is always Rejected, never silently stripped, so a
// systemic prompt failure stays visible.
var metaMentionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bas an ai\b`),
	regexp.MustCompile(`(?i)\bai (?:language )?model\b`),
	regexp.MustCompile(`(?i)\blanguage model\b`),
	regexp.MustCompile(`(?i)\bai assistant\b`),
	regexp.MustCompile(`(?i)\bchat\s?gpt\b`),
	regexp.MustCompile(`(?i)\bgenerated by ai\b`),
	regexp.MustCompile(`(?i)\bai[- ]generated\b`),
	regexp.MustCompile(`(?i)\bi am an ai\b`),
	regexp.MustCompile(`(?i)\blarge language\b`),
}

// MetaMentions returns one reason per meta-mention pattern found in text.
func MetaMentions(text string) []string {
	var reasons []string
	for _, pattern := range metaMentionPatterns {
		if match := pattern.FindString(text); match != "" {
			reasons = append(reasons, fmt.Sprintf("text mentions generation tooling: %q", match))
		}
	}
	return reasons
}
