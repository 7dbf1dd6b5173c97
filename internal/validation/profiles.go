// Package validation checks generated artifact text against per-kind guardrails.
// All checks are pure text analysis; the package performs no I/O.
package validation

import "github.com/jonathan/jobkit/internal/types"

// ConstraintProfile holds the guardrail configuration for one artifact
// kind. Profiles are data: adding a new artifact kind means supplying a
// new profile, not new code paths.
type ConstraintProfile struct {
	Kind types.ArtifactKind

	// Word-count band. Outside the band but within Tolerance of the band
	// edge is Repairable; further out is Rejected.
	MinWords  int
	MaxWords  int
	Tolerance float64 // fraction of the band edge, e.g. 0.5 = half again

	// CheckRoleCoverage requires the output to retain every role date
	// range found in the source resume.
	CheckRoleCoverage bool
}

// HardMinWords returns the word count below which the text is Rejected
// rather than Repairable.
func (p ConstraintProfile) HardMinWords() int {
	return int(float64(p.MinWords) * (1 - p.Tolerance))
}

// HardMaxWords returns the word count above which the text is Rejected
// rather than Repairable.
func (p ConstraintProfile) HardMaxWords() int {
	return int(float64(p.MaxWords) * (1 + p.Tolerance))
}

var profiles = map[types.ArtifactKind]ConstraintProfile{
	types.ArtifactResume: {
		Kind:              types.ArtifactResume,
		MinWords:          900,
		MaxWords:          1100,
		Tolerance:         0.5,
		CheckRoleCoverage: true,
	},
	types.ArtifactCoverLetter: {
		Kind:      types.ArtifactCoverLetter,
		MinWords:  150,
		MaxWords:  450,
		Tolerance: 0.5,
	},
	types.ArtifactShortAnswers: {
		Kind:      types.ArtifactShortAnswers,
		MinWords:  90,
		MaxWords:  450,
		Tolerance: 0.6,
	},
}

// ProfileFor returns the constraint profile for an artifact kind.
func ProfileFor(kind types.ArtifactKind) (ConstraintProfile, bool) {
	p, ok := profiles[kind]
	return p, ok
}
