package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobkit/internal/types"
)

// Source is the ground-truth material a completion must be consistent with.
type Source struct {
	ResumeText     string
	JobDescription string
}

// Validate checks a completion against its constraint profile and
// classifies it as Accepted, Repairable, or Rejected. The attempt history
// is consulted only to escalate repeated fabrication; Validate itself is a
// pure function of its inputs.
func Validate(profile ConstraintProfile, text string, src Source, history []types.GenerationAttempt) types.ValidationResult {
	var rejected, repairable []string

	// Meta-mentions are terminal: stripping them would mask a systemic
	// prompt failure.
	rejected = append(rejected, MetaMentions(text)...)

	words := WordCount(text)
	switch {
	case words >= profile.MinWords && words <= profile.MaxWords:
		// in band
	case words < profile.HardMinWords():
		rejected = append(rejected, fmt.Sprintf("text is %d words, far below the minimum of %d", words, profile.MinWords))
	case words > profile.HardMaxWords():
		rejected = append(rejected, fmt.Sprintf("text is %d words, far above the maximum of %d", words, profile.MaxWords))
	case words < profile.MinWords:
		repairable = append(repairable, fmt.Sprintf("text is %d words, below the minimum of %d; expand within the facts available", words, profile.MinWords))
	default:
		repairable = append(repairable, fmt.Sprintf("text is %d words, above the maximum of %d; compress wording without dropping roles", words, profile.MaxWords))
	}

	if fabricated := FabricatedNumbers(text, src); len(fabricated) > 0 {
		if fabricationSeenBefore(history) {
			rejected = append(rejected, fabricated...)
		} else {
			repairable = append(repairable, fabricated...)
		}
	}

	if profile.CheckRoleCoverage {
		repairable = append(repairable, MissingRoles(text, src.ResumeText)...)
	}

	if len(rejected) > 0 {
		return types.ValidationResult{
			Verdict: types.VerdictRejected,
			Reasons: append(rejected, repairable...),
		}
	}
	if len(repairable) > 0 {
		return types.ValidationResult{
			Verdict: types.VerdictRepairable,
			Reasons: repairable,
		}
	}
	return types.ValidationResult{Verdict: types.VerdictAccepted}
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// fabricationSeenBefore reports whether any prior attempt already failed
// the fabrication check. A repair attempt that fabricates again is
// Rejected rather than Repairable.
func fabricationSeenBefore(history []types.GenerationAttempt) bool {
	for _, attempt := range history {
		for _, reason := range attempt.Result.Reasons {
			if isFabricationReason(reason) {
				return true
			}
		}
	}
	return false
}
