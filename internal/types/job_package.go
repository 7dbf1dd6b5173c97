//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// PackageMetadata is the metadata record written as meta.json. Its presence
// in a package directory is the signal that the package is complete.
type PackageMetadata struct {
	ID             string               `json:"id"`
	RunID          string               `json:"run_id"`
	Company        string               `json:"company"`
	Title          string               `json:"title"`
	Location       string               `json:"location,omitempty"`
	SeniorityHint  string               `json:"seniority_hint,omitempty"`
	Model          string               `json:"model"`
	InputSummary   string               `json:"input_summary"`
	FitScore       float64              `json:"fit_score"`
	FitLabel       string               `json:"fit_label"`
	FitExplanation string               `json:"fit_explanation"`
	AttemptCounts  map[ArtifactKind]int `json:"attempt_counts"`
	CreatedAt      time.Time            `json:"created_at"`
}

// JobPackage is the unit of persistence: the three final artifact texts,
// the fit assessment, and the metadata record. A JobPackage is created
// exactly once per successful run and is immutable after being written.
type JobPackage struct {
	ID        string                  `json:"id"`
	Artifacts map[ArtifactKind]string `json:"artifacts"`
	Fit       FitAssessment           `json:"fit"`
	Meta      PackageMetadata         `json:"meta"`
	Path      string                  `json:"path,omitempty"`
}
