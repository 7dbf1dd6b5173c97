//nolint:revive // types is a standard Go package name pattern
package types

// Fit labels, ordered from weakest to strongest band.
const (
	FitLabelLow      = "Low fit"
	FitLabelModerate = "Moderate fit"
	FitLabelGood     = "Good fit"
	FitLabelStrong   = "Strong fit"
)

// FitAssessment captures how well the resume matches the job description.
// It is computed once per run.
type FitAssessment struct {
	Score       float64 `json:"score"`
	Label       string  `json:"label"`
	Explanation string  `json:"explanation"`
}

// LabelForScore maps a 0-100 fit score onto its band label.
func LabelForScore(score float64) string {
	switch {
	case score >= 85:
		return FitLabelStrong
	case score >= 70:
		return FitLabelGood
	case score >= 55:
		return FitLabelModerate
	default:
		return FitLabelLow
	}
}
