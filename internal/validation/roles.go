package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// yearRangePattern detects a role by its employment date range, e.g.
// "2018-2023", "2018 – 2023", "2019 to present".
var yearRangePattern = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:-|–|—|to)\s*((?:19|20)\d{2}|present|current|now)\b`)

// SourceRoles returns the normalized role date ranges found in the source
// resume, in order of appearance, without duplicates.
func SourceRoles(resumeText string) []string {
	return roleRanges(resumeText)
}

// MissingRoles returns one reason per source role whose date range does
// not appear in the generated text. Roles may be compressed but never
// dropped.
func MissingRoles(text, resumeText string) []string {
	present := make(map[string]bool)
	for _, r := range roleRanges(text) {
		present[r] = true
	}

	var reasons []string
	for _, r := range roleRanges(resumeText) {
		if !present[r] {
			reasons = append(reasons, fmt.Sprintf("role with dates %s from the source resume is missing", r))
		}
	}
	return reasons
}

func roleRanges(text string) []string {
	matches := yearRangePattern.FindAllStringSubmatch(text, -1)
	var ranges []string
	seen := make(map[string]bool)
	for _, m := range matches {
		normalized := m[1] + "-" + normalizeRangeEnd(m[2])
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		ranges = append(ranges, normalized)
	}
	return ranges
}

func normalizeRangeEnd(end string) string {
	switch strings.ToLower(end) {
	case "present", "current", "now":
		return "present"
	default:
		return end
	}
}
