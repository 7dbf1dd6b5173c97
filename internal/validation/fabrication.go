package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// numberPattern matches numeric claims: plain numbers, comma-grouped
// numbers, decimals, and percentages.
var numberPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?%?`)

// numberTokens extracts the normalized numeric tokens from text.
func numberTokens(text string) []string {
	raw := numberPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		tokens = append(tokens, normalizeNumber(tok))
	}
	return tokens
}

func normalizeNumber(tok string) string {
	tok = strings.ReplaceAll(tok, ",", "")
	tok = strings.TrimSuffix(tok, "%")
	return tok
}

// FabricatedNumbers returns one reason per distinct numeric claim in text
// that cannot be grounded in the source material. This is the best-effort
// fabrication filter: spelled-out numbers and non-numeric claims are out
// of its reach.
func FabricatedNumbers(text string, src Source) []string {
	grounded := make(map[string]bool)
	for _, tok := range numberTokens(src.ResumeText) {
		grounded[tok] = true
	}
	for _, tok := range numberTokens(src.JobDescription) {
		grounded[tok] = true
	}

	var reasons []string
	seen := make(map[string]bool)
	for _, tok := range numberTokens(text) {
		if grounded[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		reasons = append(reasons, fmt.Sprintf("numeric claim %q does not appear in the source resume or job description", tok))
	}
	return reasons
}

// isFabricationReason reports whether a validation reason came from the
// fabrication check. Used to escalate repeated fabrication to Rejected.
func isFabricationReason(reason string) bool {
	return strings.HasPrefix(reason, "numeric claim ")
}
