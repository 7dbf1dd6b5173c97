//nolint:revive // types is a standard Go package name pattern
package types

// ArtifactKind identifies one generated document within a job package.
type ArtifactKind string

// The three artifact kinds produced for every package.
const (
	ArtifactResume       ArtifactKind = "resume"
	ArtifactCoverLetter  ArtifactKind = "cover_letter"
	ArtifactShortAnswers ArtifactKind = "short_answers"
)

// AllArtifactKinds returns the artifact kinds in generation order.
func AllArtifactKinds() []ArtifactKind {
	return []ArtifactKind{ArtifactResume, ArtifactCoverLetter, ArtifactShortAnswers}
}

// Verdict classifies a completion against its constraint profile.
type Verdict string

// Verdict values.
const (
	VerdictAccepted   Verdict = "accepted"
	VerdictRepairable Verdict = "repairable"
	VerdictRejected   Verdict = "rejected"
)

// ValidationResult is the outcome of validating one completion.
type ValidationResult struct {
	Verdict Verdict  `json:"verdict"`
	Reasons []string `json:"reasons,omitempty"`
}

// GenerationAttempt records one model call for one artifact. Attempts are
// append-only within a run and never mutated after creation.
type GenerationAttempt struct {
	Kind   ArtifactKind     `json:"kind"`
	Number int              `json:"number"`
	Text   string           `json:"text"`
	Result ValidationResult `json:"result"`
}
